package router

import (
	"worldmart/internal/adapter/api/handler"
	"worldmart/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProfileRouter(e *echo.Echo, profileHandler *handler.ProfileHandler, authMiddleware *middleware.AuthMiddleware) {
	profileGroup := e.Group("/v1/profiles")
	profileGroup.Use(authMiddleware.Authenticate)

	profileGroup.GET("/:id", profileHandler.GetPublicProfile) // GET /v1/profiles/:id - Public profile
}
