package handler

import (
	"net/http"
	"strconv"
	"time"

	appmw "github.com/avelichko/gallery-market/internal/middleware"
	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/service"
	"github.com/labstack/echo/v4"
)

type VerificationHandler struct {
	svc service.VerificationService
}

func NewVerificationHandler(svc service.VerificationService) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

type SubmitVerificationRequest struct {
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
}

type VerificationResponse struct {
	UserID       uint64  `json:"userId"`
	DocumentType string  `json:"documentType"`
	Status       string  `json:"status"`
	ReviewedBy   *uint64 `json:"reviewedBy,omitempty"`
	VerifiedAt   *string `json:"verifiedAt,omitempty"`
	Comment      *string `json:"comment,omitempty"`
	AgeDays      *int    `json:"ageDays,omitempty"`
	IsCurrent    bool    `json:"isCurrent"`
	CreatedAt    string  `json:"createdAt"`
}

func toVerificationResponse(v *model.Verification, now time.Time) VerificationResponse {
	resp := VerificationResponse{
		UserID:       v.UserID,
		DocumentType: string(v.DocumentType),
		Status:       string(v.Status),
		ReviewedBy:   v.ReviewedBy,
		Comment:      v.Comment,
		AgeDays:      v.AgeDays(now),
		IsCurrent:    v.IsCurrent(now),
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
	if v.VerifiedAt != nil {
		s := v.VerifiedAt.Format(time.RFC3339)
		resp.VerifiedAt = &s
	}
	return resp
}

func (h *VerificationHandler) Submit(c echo.Context) error {
	var req SubmitVerificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	v, err := h.svc.Submit(c.Request().Context(), appmw.UserID(c), model.DocumentType(req.DocumentType), req.DocumentNumber)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toVerificationResponse(v, time.Now()))
}

func (h *VerificationHandler) GetMine(c echo.Context) error {
	v, err := h.svc.Get(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toVerificationResponse(v, time.Now()))
}

type ReviewVerificationRequest struct {
	Approve bool    `json:"approve"`
	Comment *string `json:"comment"`
}

func (h *VerificationHandler) Review(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	var req ReviewVerificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	v, err := h.svc.Review(c.Request().Context(), userID, appmw.UserID(c), req.Approve, req.Comment)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toVerificationResponse(v, time.Now()))
}
