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

type CartHandler struct {
	svc service.CartService
}

func NewCartHandler(svc service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type OrderResponse struct {
	ID              uint64  `json:"id"`
	BuyerID         uint64  `json:"buyerId"`
	ArtworkID       uint64  `json:"artworkId"`
	Price           string  `json:"price"`
	ShippingMethod  string  `json:"shippingMethod"`
	ShippingAddress *string `json:"shippingAddress,omitempty"`
	ShippingCost    string  `json:"shippingCost"`
	Insurance       bool    `json:"insurance"`
	InsuranceCost   string  `json:"insuranceCost"`
	TotalPrice      string  `json:"totalPrice"`
	Status          string  `json:"status"`
	PaymentExpired  bool    `json:"paymentExpired"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func toOrderResponse(o *model.Order, now time.Time) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		BuyerID:         o.BuyerID,
		ArtworkID:       o.ArtworkID,
		Price:           o.Price.StringFixed(2),
		ShippingMethod:  string(o.ShippingMethod),
		ShippingAddress: o.ShippingAddress,
		ShippingCost:    o.ShippingCost.StringFixed(2),
		Insurance:       o.Insurance,
		InsuranceCost:   o.InsuranceCost.StringFixed(2),
		TotalPrice:      o.TotalPrice.StringFixed(2),
		Status:          string(o.Status),
		PaymentExpired:  o.PaymentExpired(now),
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       o.UpdatedAt.Format(time.RFC3339),
	}
}

type CartLineResponse struct {
	Order   OrderResponse    `json:"order"`
	Artwork *ArtworkResponse `json:"artwork,omitempty"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total string             `json:"total"`
}

type AddToCartRequest struct {
	ShippingMethod  string  `json:"shippingMethod"`
	ShippingAddress *string `json:"shippingAddress"`
	Insurance       bool    `json:"insurance"`
}

func (h *CartHandler) Add(c echo.Context) error {
	artworkID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid artwork id"))
	}
	var req AddToCartRequest
	_ = c.Bind(&req)
	order, err := h.svc.Add(c.Request().Context(), artworkID, appmw.UserID(c), service.CartOptions{
		ShippingMethod:  model.ShippingMethod(req.ShippingMethod),
		ShippingAddress: req.ShippingAddress,
		Insurance:       req.Insurance,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order, time.Now()))
}

func (h *CartHandler) List(c echo.Context) error {
	lines, total, err := h.svc.List(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch cart"))
	}
	return c.JSON(http.StatusOK, toCartResponse(lines, total.StringFixed(2)))
}

func toCartResponse(lines []service.CartLine, total string) CartResponse {
	now := time.Now()
	resp := CartResponse{
		Lines: make([]CartLineResponse, 0, len(lines)),
		Total: total,
	}
	for i := range lines {
		line := CartLineResponse{Order: toOrderResponse(&lines[i].Order, now)}
		if lines[i].Artwork != nil {
			a := toArtworkResponse(lines[i].Artwork, now)
			line.Artwork = &a
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}

func (h *CartHandler) Remove(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	if err := h.svc.Remove(c.Request().Context(), orderID, appmw.UserID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type CheckoutResponse struct {
	Lines   []CartLineResponse `json:"lines"`
	Total   string             `json:"total"`
	Minimum string             `json:"minimum"`
}

// Checkout validates the cart and returns the confirmation summary without
// committing anything.
func (h *CartHandler) Checkout(c echo.Context) error {
	summary, err := h.svc.Checkout(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	cart := toCartResponse(summary.Lines, summary.Total.StringFixed(2))
	return c.JSON(http.StatusOK, CheckoutResponse{
		Lines:   cart.Lines,
		Total:   cart.Total,
		Minimum: summary.Minimum.StringFixed(2),
	})
}

type ConfirmRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type ConfirmResponse struct {
	Confirmed []OrderResponse `json:"confirmed"`
}

func (h *CartHandler) Confirm(c echo.Context) error {
	var req ConfirmRequest
	_ = c.Bind(&req)
	result, err := h.svc.Confirm(c.Request().Context(), appmw.UserID(c), model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		// Pairs committed before the failure stay committed; report them.
		if result != nil && len(result.Confirmed) > 0 {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("persistence_error", "checkout partially committed"))
		}
		return serviceError(c, err)
	}
	now := time.Now()
	resp := ConfirmResponse{Confirmed: make([]OrderResponse, 0, len(result.Confirmed))}
	for i := range result.Confirmed {
		resp.Confirmed = append(resp.Confirmed, toOrderResponse(&result.Confirmed[i], now))
	}
	return c.JSON(http.StatusOK, resp)
}
