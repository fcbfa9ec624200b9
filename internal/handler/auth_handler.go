package handler

import (
	"net/http"
	"time"

	appmw "github.com/avelichko/gallery-market/internal/middleware"
	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        uint64  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FirstName string  `json:"firstName,omitempty"`
	LastName  string  `json:"lastName,omitempty"`
	Role      string  `json:"role"`
	Balance   string  `json:"balance"`
	Rating    string  `json:"rating"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	IsActive  bool    `json:"isActive"`
	CreatedAt string  `json:"createdAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Balance:   u.Balance.StringFixed(2),
		Rating:    u.Rating.StringFixed(2),
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, token, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.Role(req.Role),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, token, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
}

// GetToken keeps the legacy token endpoint shape: {token, user_id, email}.
func (h *AuthHandler) GetToken(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "please provide both username and password"))
	}
	res, err := h.svc.Token(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":   res.Token,
		"user_id": res.UserID,
		"email":   res.Email,
	})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := h.svc.Profile(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

type UpdateProfileRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	AvatarURL *string `json:"avatarUrl"`
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, err := h.svc.UpdateProfile(c.Request().Context(), appmw.UserID(c), service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
