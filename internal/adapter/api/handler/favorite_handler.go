package handler

import (
	"worldmart/internal/usecase"
	"worldmart/pkg/errors"
	"worldmart/pkg/response"
	"worldmart/pkg/utils"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	result, err := h.favoriteUseCase.AddFavorite(c.Request().Context(), session, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	if err := h.favoriteUseCase.RemoveFavorite(c.Request().Context(), session, productID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product removed from favorites",
	})
}

func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	favorited, err := h.favoriteUseCase.ToggleFavorite(c.Request().Context(), session, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"product_id":   productID,
		"is_favorited": favorited,
	})
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}

	pagination := utils.GetPaginationParams(c)

	items, total, err := h.favoriteUseCase.ListFavorites(
		c.Request().Context(),
		session,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *FavoriteHandler) CheckFavoriteStatus(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	favorited, err := h.favoriteUseCase.IsFavorited(c.Request().Context(), session, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"product_id":   productID,
		"is_favorited": favorited,
	})
}

func (h *FavoriteHandler) GetFavoriteCount(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}

	count, err := h.favoriteUseCase.CountFavorites(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"count": count,
	})
}
