package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/avelichko/gallery-market/internal/config"
	"github.com/avelichko/gallery-market/internal/handler"
	appmw "github.com/avelichko/gallery-market/internal/middleware"
	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"github.com/avelichko/gallery-market/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo

	Artworks      service.ArtworkService
	Cart          service.CartService
	Verifications service.VerificationService
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			return u.Scheme == "http" || u.Scheme == "https", nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	artworkRepo := repository.NewArtworkRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	authMw := appmw.NewAuthMiddleware(cfg.JWTSecret, cfg.TokenLifetime())

	artworkSvc := service.NewArtworkService(artworkRepo)
	cartSvc := service.NewCartService(orderRepo, artworkRepo, cfg.MinOrderAmount())
	orderSvc := service.NewOrderService(orderRepo, artworkRepo, paymentRepo)
	authSvc := service.NewAuthService(userRepo, verificationRepo, authMw)
	reviewSvc := service.NewReviewService(reviewRepo, orderRepo, artworkRepo, userRepo)
	verificationSvc := service.NewVerificationService(verificationRepo, userRepo)
	adminSvc := service.NewAdminService(userRepo, artworkRepo, orderRepo, verificationRepo)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, artworkRepo)
	artistSvc := service.NewArtistService(artistRepo, artworkRepo)
	categorySvc := service.NewCategoryService(categoryRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	artworkHandler := handler.NewArtworkHandler(artworkSvc)
	cartHandler := handler.NewCartHandler(cartSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	verificationHandler := handler.NewVerificationHandler(verificationSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, artworkSvc)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)
	artistHandler := handler.NewArtistHandler(artistSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/get-token", authHandler.GetToken)
	api.GET("/me", authHandler.Profile, authMw.RequireAuth)
	api.PUT("/me", authHandler.UpdateProfile, authMw.RequireAuth)

	api.GET("/artworks", artworkHandler.List)
	api.GET("/artworks/:id", artworkHandler.Get)
	api.POST("/artworks", artworkHandler.Create, authMw.RequireAuth, authMw.RequireRole(model.RoleSeller))
	api.PUT("/artworks/:id", artworkHandler.Update, authMw.RequireAuth, authMw.RequireRole(model.RoleSeller))
	api.GET("/me/artworks", artworkHandler.ListMine, authMw.RequireAuth, authMw.RequireRole(model.RoleSeller))

	api.POST("/artworks/:id/cart", cartHandler.Add, authMw.RequireAuth)
	api.GET("/cart", cartHandler.List, authMw.RequireAuth)
	api.DELETE("/cart/:id", cartHandler.Remove, authMw.RequireAuth)
	api.POST("/cart/checkout", cartHandler.Checkout, authMw.RequireAuth)
	api.POST("/cart/confirm", cartHandler.Confirm, authMw.RequireAuth)

	api.GET("/orders/:id", orderHandler.Get, authMw.RequireAuth)
	api.GET("/me/orders", orderHandler.ListMine, authMw.RequireAuth)
	api.GET("/me/sales", orderHandler.ListSales, authMw.RequireAuth, authMw.RequireRole(model.RoleSeller))
	api.POST("/orders/:id/ship", orderHandler.Ship, authMw.RequireAuth, authMw.RequireRole(model.RoleSeller))
	api.POST("/orders/:id/deliver", orderHandler.Deliver, authMw.RequireAuth)
	api.POST("/orders/:id/complete", orderHandler.Complete, authMw.RequireAuth)
	api.POST("/orders/:id/cancel", orderHandler.Cancel, authMw.RequireAuth)
	api.POST("/orders/:id/dispute", orderHandler.Dispute, authMw.RequireAuth)
	api.POST("/orders/:id/payment/complete", orderHandler.CompletePayment, authMw.RequireAuth)

	api.POST("/reviews", reviewHandler.Create, authMw.RequireAuth)
	api.GET("/reviews", reviewHandler.ListApproved)
	api.GET("/sellers/:id/reviews", reviewHandler.ListBySeller)

	api.POST("/artworks/:id/favorite", favoriteHandler.Toggle, authMw.RequireAuth)
	api.GET("/me/favorites", favoriteHandler.List, authMw.RequireAuth)

	api.POST("/verification", verificationHandler.Submit, authMw.RequireAuth)
	api.GET("/me/verification", verificationHandler.GetMine, authMw.RequireAuth)

	api.GET("/artists", artistHandler.List)
	api.GET("/artists/:id", artistHandler.Get)
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:id", categoryHandler.Get)

	mod := api.Group("/moderation", authMw.RequireAuth, authMw.RequireRole(model.RoleModerator))
	mod.POST("/reviews/:id/approve", reviewHandler.Approve)
	mod.POST("/verifications/:id/review", verificationHandler.Review)

	admin := api.Group("/admin", authMw.RequireAuth, authMw.RequireRole(model.RoleAdmin))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.PUT("/artworks/:id/status", adminHandler.OverrideStatus)
	admin.DELETE("/artworks/:id", adminHandler.DeleteArtwork)
	admin.POST("/artists", artistHandler.Create)
	admin.PUT("/artists/:id", artistHandler.Update)
	admin.DELETE("/artists/:id", artistHandler.Delete)
	admin.POST("/categories", categoryHandler.Create)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)

	return &Server{
		e:             e,
		Artworks:      artworkSvc,
		Cart:          cartSvc,
		Verifications: verificationSvc,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
