package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// errorEnvelope mirrors the handler package's error shape so clients see one
// format whether a request dies at the gate or inside a handler.
type errorEnvelope struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorJSON(code, message string) errorEnvelope {
	return errorEnvelope{Error: errorPayload{Code: code, Message: message}}
}

type AuthMiddleware struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthMiddleware(secret string, ttl time.Duration) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs an HS256 access token carrying the user id and role.
func (m *AuthMiddleware) IssueToken(u *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"exp":     time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *AuthMiddleware) parse(tokenStr string) (uint64, model.Role, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, "", fmt.Errorf("invalid token claims")
	}
	role, _ := claims["role"].(string)
	return uint64(userID), model.Role(role), nil
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "missing bearer token"))
		}
		userID, role, err := m.parse(strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorJSON("invalid_token", "invalid or expired token"))
		}
		c.Set("user_id", userID)
		c.Set("role", role)
		return next(c)
	}
}

// RequireRole gates a route to the given roles; admins always pass.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(model.Role)
			if role == model.RoleAdmin {
				return next(c)
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorJSON("forbidden", "not allowed"))
		}
	}
}

// UserID pulls the authenticated user from the request context; zero means the
// route was not behind RequireAuth.
func UserID(c echo.Context) uint64 {
	id, _ := c.Get("user_id").(uint64)
	return id
}

func RoleOf(c echo.Context) model.Role {
	role, _ := c.Get("role").(model.Role)
	return role
}
