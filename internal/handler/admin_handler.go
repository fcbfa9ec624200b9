package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	admin    service.AdminService
	artworks service.ArtworkService
}

func NewAdminHandler(admin service.AdminService, artworks service.ArtworkService) *AdminHandler {
	return &AdminHandler{admin: admin, artworks: artworks}
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardResponse struct {
	TotalArtworks        int64                 `json:"totalArtworks"`
	TotalOrders          int64                 `json:"totalOrders"`
	TotalUsers           int64                 `json:"totalUsers"`
	PendingVerifications int64                 `json:"pendingVerifications"`
	RecentOrders         []OrderResponse       `json:"recentOrders"`
	OrdersByStatus       []StatusCountResponse `json:"ordersByStatus"`
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build dashboard"))
	}
	now := time.Now()
	resp := DashboardResponse{
		TotalArtworks:        stats.TotalArtworks,
		TotalOrders:          stats.TotalOrders,
		TotalUsers:           stats.TotalUsers,
		PendingVerifications: stats.PendingVerifications,
		RecentOrders:         make([]OrderResponse, 0, len(stats.RecentOrders)),
		OrdersByStatus:       make([]StatusCountResponse, 0, len(stats.OrdersByStatus)),
	}
	for i := range stats.RecentOrders {
		resp.RecentOrders = append(resp.RecentOrders, toOrderResponse(&stats.RecentOrders[i], now))
	}
	for _, sc := range stats.OrdersByStatus {
		resp.OrdersByStatus = append(resp.OrdersByStatus, StatusCountResponse{
			Status: string(sc.Status),
			Count:  sc.Count,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	users, total, err := h.admin.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch users"))
	}
	resp := UserListResponse{Users: make([]UserResponse, 0, len(users)), Total: total}
	for i := range users {
		resp.Users = append(resp.Users, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type AdminCreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req AdminCreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	u, err := h.admin.CreateUser(c.Request().Context(), service.AdminUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

type AdminUpdateUserRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
	IsStaff  *bool   `json:"isStaff"`
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	var req AdminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in := service.AdminUserUpdate{
		IsActive: req.IsActive,
		IsStaff:  req.IsStaff,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		in.Role = &role
	}
	u, err := h.admin.UpdateUser(c.Request().Context(), userID, in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

type OverrideStatusRequest struct {
	Status string `json:"status"`
}

// OverrideStatus is the back-office escape hatch for artwork state, e.g.
// relisting a sold piece after a cancelled deal.
func (h *AdminHandler) OverrideStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid artwork id"))
	}
	var req OverrideStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	a, err := h.artworks.OverrideStatus(c.Request().Context(), id, model.ArtworkStatus(req.Status))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toArtworkResponse(a, time.Now()))
}

func (h *AdminHandler) DeleteArtwork(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid artwork id"))
	}
	if err := h.artworks.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
