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

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type OrderDetailResponse struct {
	Order   OrderResponse    `json:"order"`
	Artwork *ArtworkResponse `json:"artwork,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderDetailResponse `json:"orders"`
}

func toOrderDetailResponse(ow *service.OrderWithArtwork, now time.Time) OrderDetailResponse {
	resp := OrderDetailResponse{Order: toOrderResponse(&ow.Order, now)}
	if ow.Artwork != nil {
		a := toArtworkResponse(ow.Artwork, now)
		resp.Artwork = &a
	}
	return resp
}

func toOrderListResponse(orders []service.OrderWithArtwork) OrderListResponse {
	now := time.Now()
	resp := OrderListResponse{Orders: make([]OrderDetailResponse, 0, len(orders))}
	for i := range orders {
		resp.Orders = append(resp.Orders, toOrderDetailResponse(&orders[i], now))
	}
	return resp
}

func orderID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	ow, err := h.svc.Get(c.Request().Context(), id, appmw.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderDetailResponse(ow, time.Now()))
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	orders, err := h.svc.ListByBuyer(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
	}
	return c.JSON(http.StatusOK, toOrderListResponse(orders))
}

func (h *OrderHandler) ListSales(c echo.Context) error {
	orders, err := h.svc.ListSales(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch sales"))
	}
	return c.JSON(http.StatusOK, toOrderListResponse(orders))
}

func (h *OrderHandler) transitionRoute(c echo.Context, fn func(ctx echo.Context, id uint64) (*model.Order, error)) error {
	id, err := orderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	o, err := fn(c, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o, time.Now()))
}

func (h *OrderHandler) Ship(c echo.Context) error {
	return h.transitionRoute(c, func(c echo.Context, id uint64) (*model.Order, error) {
		return h.svc.MarkShipped(c.Request().Context(), id, appmw.UserID(c))
	})
}

func (h *OrderHandler) Deliver(c echo.Context) error {
	return h.transitionRoute(c, func(c echo.Context, id uint64) (*model.Order, error) {
		return h.svc.MarkDelivered(c.Request().Context(), id, appmw.UserID(c))
	})
}

func (h *OrderHandler) Complete(c echo.Context) error {
	return h.transitionRoute(c, func(c echo.Context, id uint64) (*model.Order, error) {
		return h.svc.MarkCompleted(c.Request().Context(), id, appmw.UserID(c))
	})
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.transitionRoute(c, func(c echo.Context, id uint64) (*model.Order, error) {
		return h.svc.Cancel(c.Request().Context(), id, appmw.UserID(c))
	})
}

func (h *OrderHandler) Dispute(c echo.Context) error {
	return h.transitionRoute(c, func(c echo.Context, id uint64) (*model.Order, error) {
		return h.svc.Dispute(c.Request().Context(), id, appmw.UserID(c))
	})
}

type PaymentResponse struct {
	ID            uint64  `json:"id"`
	OrderID       uint64  `json:"orderId"`
	Amount        string  `json:"amount"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	CompletedAt   *string `json:"completedAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func toPaymentResponse(p *model.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount.StringFixed(2),
		Method:        string(p.Method),
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if p.CompletedAt != nil {
		s := p.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	return resp
}

func (h *OrderHandler) CompletePayment(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	p, err := h.svc.CompletePayment(c.Request().Context(), id, appmw.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentResponse(p))
}
