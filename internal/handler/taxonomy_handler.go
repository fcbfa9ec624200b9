package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/service"
	"github.com/labstack/echo/v4"
)

type ArtistHandler struct {
	svc service.ArtistService
}

func NewArtistHandler(svc service.ArtistService) *ArtistHandler {
	return &ArtistHandler{svc: svc}
}

type ArtistRequest struct {
	Name         string  `json:"name"`
	Bio          *string `json:"bio"`
	PhotoURL     *string `json:"photoUrl"`
	OfficialSite *string `json:"officialSite"`
	BirthDate    *string `json:"birthDate"`
	DeathDate    *string `json:"deathDate"`
}

func (r *ArtistRequest) toModel() (*model.Artist, error) {
	a := &model.Artist{
		Name:         r.Name,
		Bio:          r.Bio,
		PhotoURL:     r.PhotoURL,
		OfficialSite: r.OfficialSite,
	}
	if r.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *r.BirthDate)
		if err != nil {
			return nil, err
		}
		a.BirthDate = &t
	}
	if r.DeathDate != nil {
		t, err := time.Parse("2006-01-02", *r.DeathDate)
		if err != nil {
			return nil, err
		}
		a.DeathDate = &t
	}
	return a, nil
}

type ArtistResponse struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Bio           *string `json:"bio,omitempty"`
	PhotoURL      *string `json:"photoUrl,omitempty"`
	OfficialSite  *string `json:"officialSite,omitempty"`
	BirthDate     *string `json:"birthDate,omitempty"`
	DeathDate     *string `json:"deathDate,omitempty"`
	Age           *int    `json:"age,omitempty"`
	IsAlive       bool    `json:"isAlive"`
	ArtworksCount int64   `json:"artworksCount"`
}

type ArtistListResponse struct {
	Artists []ArtistResponse `json:"artists"`
	Total   int64            `json:"total"`
}

func toArtistResponse(ac *service.ArtistWithCount, now time.Time) ArtistResponse {
	a := &ac.Artist
	resp := ArtistResponse{
		ID:            a.ID,
		Name:          a.Name,
		Bio:           a.Bio,
		PhotoURL:      a.PhotoURL,
		OfficialSite:  a.OfficialSite,
		Age:           service.ArtistAge(a, now),
		IsAlive:       a.IsAlive(),
		ArtworksCount: ac.ArtworksCount,
	}
	if a.BirthDate != nil {
		s := a.BirthDate.Format("2006-01-02")
		resp.BirthDate = &s
	}
	if a.DeathDate != nil {
		s := a.DeathDate.Format("2006-01-02")
		resp.DeathDate = &s
	}
	return resp
}

func (h *ArtistHandler) Create(c echo.Context) error {
	var req ArtistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid date, expected YYYY-MM-DD"))
	}
	a, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toArtistResponse(&service.ArtistWithCount{Artist: *a}, time.Now()))
}

func (h *ArtistHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid artist id"))
	}
	var req ArtistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid date, expected YYYY-MM-DD"))
	}
	a, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toArtistResponse(&service.ArtistWithCount{Artist: *a}, time.Now()))
}

func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid artist id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ArtistHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid artist id"))
	}
	ac, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toArtistResponse(ac, time.Now()))
}

func (h *ArtistHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	artists, total, err := h.svc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch artists"))
	}
	now := time.Now()
	resp := ArtistListResponse{Artists: make([]ArtistResponse, 0, len(artists)), Total: total}
	for i := range artists {
		resp.Artists = append(resp.Artists, toArtistResponse(&artists[i], now))
	}
	return c.JSON(http.StatusOK, resp)
}

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type CategoryStatsResponse struct {
	ArtworksCount int64   `json:"artworksCount"`
	MinPrice      *string `json:"minPrice,omitempty"`
	MaxPrice      *string `json:"maxPrice,omitempty"`
	AvgPrice      *string `json:"avgPrice,omitempty"`
}

type CategoryResponse struct {
	ID          uint64                `json:"id"`
	Name        string                `json:"name"`
	Description *string               `json:"description,omitempty"`
	Icon        *string               `json:"icon,omitempty"`
	Stats       CategoryStatsResponse `json:"stats"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func toCategoryResponse(cs *service.CategoryWithStats) CategoryResponse {
	resp := CategoryResponse{
		ID:          cs.Category.ID,
		Name:        cs.Category.Name,
		Description: cs.Category.Description,
		Icon:        cs.Category.Icon,
		Stats:       CategoryStatsResponse{ArtworksCount: cs.Stats.Count},
	}
	if cs.Stats.Min.Valid {
		s := cs.Stats.Min.Decimal.StringFixed(2)
		resp.Stats.MinPrice = &s
	}
	if cs.Stats.Max.Valid {
		s := cs.Stats.Max.Decimal.StringFixed(2)
		resp.Stats.MaxPrice = &s
	}
	if cs.Stats.Avg.Valid {
		s := cs.Stats.Avg.Decimal.Round(2).StringFixed(2)
		resp.Stats.AvgPrice = &s
	}
	return resp
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	cat, err := h.svc.Create(c.Request().Context(), &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(&service.CategoryWithStats{Category: *cat}))
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid category id"))
	}
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	cat, err := h.svc.Update(c.Request().Context(), id, &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(&service.CategoryWithStats{Category: *cat}))
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid category id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid category id"))
	}
	cs, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cs))
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch categories"))
	}
	resp := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for i := range categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(&categories[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
