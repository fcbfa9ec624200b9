package handler

import (
	"net/http"
	"strconv"
	"time"

	appmw "github.com/avelichko/gallery-market/internal/middleware"
	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/pricing"
	"github.com/avelichko/gallery-market/internal/repository"
	"github.com/avelichko/gallery-market/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ArtworkHandler struct {
	svc service.ArtworkService
}

func NewArtworkHandler(svc service.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{svc: svc}
}

type DiscountInfo struct {
	HasDiscount        bool   `json:"hasDiscount"`
	DiscountedPrice    string `json:"discountedPrice"`
	DiscountPercentage string `json:"discountPercentage"`
}

type ArtworkResponse struct {
	ID          uint64       `json:"id"`
	SellerID    uint64       `json:"sellerId"`
	ArtistID    *uint64      `json:"artistId,omitempty"`
	CategoryID  *uint64      `json:"categoryId,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    *string      `json:"imageUrl,omitempty"`
	Style       string       `json:"style,omitempty"`
	Medium      string       `json:"medium,omitempty"`
	YearCreated int          `json:"yearCreated"`
	Dimensions  string       `json:"dimensions"`
	Price       string       `json:"price"`
	Discount    DiscountInfo `json:"discount"`
	Status      string       `json:"status"`
	IsFramed    bool         `json:"isFramed"`
	IsCertified bool         `json:"isCertified"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

type ArtworkListResponse struct {
	Artworks []ArtworkResponse `json:"artworks"`
	Total    int64             `json:"total"`
}

func toArtworkResponse(a *model.Artwork, now time.Time) ArtworkResponse {
	quote := pricing.QuoteFor(a.Price, a.CreatedAt, now)
	return ArtworkResponse{
		ID:          a.ID,
		SellerID:    a.SellerID,
		ArtistID:    a.ArtistID,
		CategoryID:  a.CategoryID,
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Style:       a.Style,
		Medium:      a.Medium,
		YearCreated: a.YearCreated,
		Dimensions:  a.Dimensions(),
		Price:       a.Price.StringFixed(2),
		Discount: DiscountInfo{
			HasDiscount:        quote.HasDiscount,
			DiscountedPrice:    quote.DiscountedPrice.StringFixed(2),
			DiscountPercentage: quote.DiscountFraction.Mul(decimal.NewFromInt(100)).String(),
		},
		Status:      string(a.Status),
		IsFramed:    a.IsFramed,
		IsCertified: a.IsCertified,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}

type ArtworkRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Style       string  `json:"style"`
	Medium      string  `json:"medium"`
	YearCreated int     `json:"yearCreated"`
	Width       string  `json:"width"`
	Height      string  `json:"height"`
	Depth       *string `json:"depth"`
	Price       string  `json:"price"`
	ArtistID    *uint64 `json:"artistId"`
	CategoryID  *uint64 `json:"categoryId"`
	IsFramed    bool    `json:"isFramed"`
	IsCertified bool    `json:"isCertified"`
}

func (r *ArtworkRequest) toInput() (service.ArtworkInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return service.ArtworkInput{}, err
	}
	width, err := decimal.NewFromString(r.Width)
	if err != nil {
		return service.ArtworkInput{}, err
	}
	height, err := decimal.NewFromString(r.Height)
	if err != nil {
		return service.ArtworkInput{}, err
	}
	var depth decimal.NullDecimal
	if r.Depth != nil {
		d, err := decimal.NewFromString(*r.Depth)
		if err != nil {
			return service.ArtworkInput{}, err
		}
		depth = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	return service.ArtworkInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Style:       r.Style,
		Medium:      r.Medium,
		YearCreated: r.YearCreated,
		Width:       width,
		Height:      height,
		Depth:       depth,
		Price:       price,
		ArtistID:    r.ArtistID,
		CategoryID:  r.CategoryID,
		IsFramed:    r.IsFramed,
		IsCertified: r.IsCertified,
	}, nil
}

func (h *ArtworkHandler) Create(c echo.Context) error {
	var req ArtworkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid decimal field"))
	}
	artwork, err := h.svc.Create(c.Request().Context(), appmw.UserID(c), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toArtworkResponse(artwork, time.Now()))
}

func (h *ArtworkHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ArtworkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid decimal field"))
	}
	admin := appmw.RoleOf(c) == model.RoleAdmin
	artwork, err := h.svc.Update(c.Request().Context(), id, appmw.UserID(c), admin, in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toArtworkResponse(artwork, time.Now()))
}

func (h *ArtworkHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	artwork, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toArtworkResponse(artwork, time.Now()))
}

func (h *ArtworkHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	f := repository.ArtworkFilter{
		Status: model.ArtworkStatus(c.QueryParam("status")),
		Query:  c.QueryParam("q"),
		Limit:  limit,
		Offset: offset,
	}
	if v, err := strconv.ParseUint(c.QueryParam("categoryId"), 10, 64); err == nil {
		f.CategoryID = &v
	}
	if v, err := strconv.ParseUint(c.QueryParam("artistId"), 10, 64); err == nil {
		f.ArtistID = &v
	}
	artworks, total, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch artworks"))
	}
	now := time.Now()
	resp := ArtworkListResponse{
		Artworks: make([]ArtworkResponse, 0, len(artworks)),
		Total:    total,
	}
	for i := range artworks {
		resp.Artworks = append(resp.Artworks, toArtworkResponse(&artworks[i], now))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ArtworkHandler) ListMine(c echo.Context) error {
	sellerID := appmw.UserID(c)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	artworks, total, err := h.svc.List(c.Request().Context(), repository.ArtworkFilter{
		SellerID: &sellerID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch artworks"))
	}
	now := time.Now()
	resp := ArtworkListResponse{
		Artworks: make([]ArtworkResponse, 0, len(artworks)),
		Total:    total,
	}
	for i := range artworks {
		resp.Artworks = append(resp.Artworks, toArtworkResponse(&artworks[i], now))
	}
	return c.JSON(http.StatusOK, resp)
}
