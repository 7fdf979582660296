package router

import (
	"worldmart/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	// No auth middleware: the handler authenticates via the token query
	// parameter, which is all a browser WebSocket client can send.
	e.GET("/ws", wsHandler.HandleWebSocket)
}
