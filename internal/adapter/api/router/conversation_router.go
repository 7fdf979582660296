package router

import (
	"worldmart/internal/adapter/api/handler"
	"worldmart/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupConversationRouter(e *echo.Echo, conversationHandler *handler.ConversationHandler, authMiddleware *middleware.AuthMiddleware) {
	// All conversation endpoints require authentication
	conversationGroup := e.Group("/v1/conversations")
	conversationGroup.Use(authMiddleware.Authenticate)

	conversationGroup.GET("", conversationHandler.ListConversations)               // GET /v1/conversations - List user's conversations
	conversationGroup.GET("/resolve", conversationHandler.ResolveConversation)     // GET /v1/conversations/resolve - Resolve by id or by pair
	conversationGroup.POST("", conversationHandler.StartConversation)              // POST /v1/conversations - Start conversation with first message
	conversationGroup.POST("/:id/messages", conversationHandler.SendMessage)       // POST /v1/conversations/:id/messages - Send a message
	conversationGroup.PUT("/:id/read", conversationHandler.MarkConversationRead)   // PUT /v1/conversations/:id/read - Mark messages read
}
