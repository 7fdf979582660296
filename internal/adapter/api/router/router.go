package router

import (
	"worldmart/internal/adapter/api/handler"
	"worldmart/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Conversation *handler.ConversationHandler
	Product      *handler.ProductHandler
	Favorite     *handler.FavoriteHandler
	Profile      *handler.ProfileHandler
	WebSocket    *handler.WebSocketHandler
	Health       *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupConversationRouter(e, h.Conversation, authMiddleware)
	SetupProductRouter(e, h.Product, authMiddleware)
	SetupFavoriteRouter(e, h.Favorite, authMiddleware)
	SetupProfileRouter(e, h.Profile, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupHealthRouter(e, h.Health)
}
