package handler

import (
	"errors"
	"net/http"

	"github.com/avelichko/gallery-market/internal/repository"
	"github.com/avelichko/gallery-market/internal/service"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// serviceError maps the service error taxonomy onto HTTP responses. Anything the
// switch does not recognize is a request-scoped validation failure.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrSelfPurchase),
		errors.Is(err, service.ErrArtworkReserved),
		errors.Is(err, service.ErrReviewExists):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	case errors.Is(err, service.ErrArtworkUnavailable):
		return c.JSON(http.StatusConflict, NewErrorResponse("item_unavailable", err.Error()))
	case errors.Is(err, service.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("empty_cart", err.Error()))
	case errors.Is(err, service.ErrBelowMinimum):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("below_minimum", err.Error()))
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, NewErrorResponse("invalid_transition", err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("invalid_credentials", "invalid credentials"))
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	case errors.Is(err, repository.ErrStaleState):
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("persistence_error", "could not commit order"))
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
}
