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

type FavoriteHandler struct {
	svc service.FavoriteService
}

func NewFavoriteHandler(svc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

type FavoriteResponse struct {
	ArtworkID uint64 `json:"artworkId"`
	CreatedAt string `json:"createdAt"`
}

type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

func toFavoriteListResponse(favorites []model.Favorite) FavoriteListResponse {
	resp := FavoriteListResponse{Favorites: make([]FavoriteResponse, 0, len(favorites))}
	for _, f := range favorites {
		resp.Favorites = append(resp.Favorites, FavoriteResponse{
			ArtworkID: f.ArtworkID,
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}

func (h *FavoriteHandler) Toggle(c echo.Context) error {
	artworkID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid artwork id"))
	}
	favorited, err := h.svc.Toggle(c.Request().Context(), appmw.UserID(c), artworkID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"favorited": favorited})
}

func (h *FavoriteHandler) List(c echo.Context) error {
	favorites, err := h.svc.ListByUser(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch favorites"))
	}
	return c.JSON(http.StatusOK, toFavoriteListResponse(favorites))
}
