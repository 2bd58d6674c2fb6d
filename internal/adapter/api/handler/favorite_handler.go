package handler

import (
	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

type addFavoriteRequest struct {
	ItemType string `json:"item_type" validate:"required,oneof=vehicle part"`
	ItemID   string `json:"item_id" validate:"required"`
}

func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	favorite, err := h.favoriteUseCase.AddFavorite(c.Request().Context(), userID, req.ItemType, req.ItemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, favorite)
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.favoriteUseCase.RemoveFavorite(c.Request().Context(), userID, c.Param("itemType"), c.Param("itemId")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "removed"})
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	favorites, total, err := h.favoriteUseCase.ListFavorites(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, favorites, total, pagination.Page, pagination.PageSize)
}
