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

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type CreateReviewRequest struct {
	OrderID uint64  `json:"orderId"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

type ReviewResponse struct {
	ID         uint64  `json:"id"`
	OrderID    uint64  `json:"orderId"`
	BuyerID    uint64  `json:"buyerId"`
	SellerID   uint64  `json:"sellerId"`
	ArtworkID  uint64  `json:"artworkId"`
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment,omitempty"`
	IsApproved bool    `json:"isApproved"`
	CreatedAt  string  `json:"createdAt"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

func toReviewResponse(r *model.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		BuyerID:    r.BuyerID,
		SellerID:   r.SellerID,
		ArtworkID:  r.ArtworkID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

func toReviewListResponse(reviews []model.Review) ReviewListResponse {
	resp := ReviewListResponse{Reviews: make([]ReviewResponse, 0, len(reviews))}
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(&reviews[i]))
	}
	return resp
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	rv, err := h.svc.Create(c.Request().Context(), req.OrderID, appmw.UserID(c), req.Rating, req.Comment)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toReviewResponse(rv))
}

func (h *ReviewHandler) Approve(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid review id"))
	}
	rv, err := h.svc.Approve(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(rv))
}

func (h *ReviewHandler) ListApproved(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	reviews, err := h.svc.ListApproved(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch reviews"))
	}
	return c.JSON(http.StatusOK, toReviewListResponse(reviews))
}

func (h *ReviewHandler) ListBySeller(c echo.Context) error {
	sellerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid seller id"))
	}
	reviews, err := h.svc.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch reviews"))
	}
	return c.JSON(http.StatusOK, toReviewListResponse(reviews))
}
