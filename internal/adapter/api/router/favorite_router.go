package router

import (
	"worldmart/internal/adapter/api/handler"
	"worldmart/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFavoriteRouter(e *echo.Echo, favoriteHandler *handler.FavoriteHandler, authMiddleware *middleware.AuthMiddleware) {
	// All favorite endpoints require authentication
	favoriteGroup := e.Group("/v1/favorites")
	favoriteGroup.Use(authMiddleware.Authenticate)

	favoriteGroup.POST("/:productId", favoriteHandler.AddFavorite)                  // POST /v1/favorites/:productId - Add to favorites
	favoriteGroup.DELETE("/:productId", favoriteHandler.RemoveFavorite)             // DELETE /v1/favorites/:productId - Remove from favorites
	favoriteGroup.POST("/:productId/toggle", favoriteHandler.ToggleFavorite)        // POST /v1/favorites/:productId/toggle - Toggle favorite
	favoriteGroup.GET("", favoriteHandler.ListFavorites)                            // GET /v1/favorites - List user's favorites
	favoriteGroup.GET("/:productId/status", favoriteHandler.CheckFavoriteStatus)    // GET /v1/favorites/:productId/status - Check favorite status
	favoriteGroup.GET("/count", favoriteHandler.GetFavoriteCount)                   // GET /v1/favorites/count - Favorite count
}
