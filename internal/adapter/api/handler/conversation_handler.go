package handler

import (
	"worldmart/internal/usecase"
	"worldmart/pkg/errors"
	"worldmart/pkg/response"

	"github.com/labstack/echo/v4"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

type startConversationRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	SellerID  string `json:"seller_id" validate:"required"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *ConversationHandler) ResolveConversation(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}

	params := usecase.ResolveParams{
		ConversationID: c.QueryParam("conversation_id"),
		ParticipantID:  c.QueryParam("participant_id"),
		ProductID:      c.QueryParam("product_id"),
	}

	if params.ConversationID == "" && (params.ParticipantID == "" || params.ProductID == "") {
		return response.Error(c, errors.BadRequest("Either conversation_id or participant_id with product_id is required", nil))
	}

	resolution, err := h.conversationUseCase.Resolve(c.Request().Context(), session, params)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, resolution)
}

func (h *ConversationHandler) ListConversations(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}

	previews, err := h.conversationUseCase.ListConversations(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, previews)
}

func (h *ConversationHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := usecase.Session{UserID: c.Get("uid").(string)}

	result, err := h.conversationUseCase.StartWithMessage(c.Request().Context(), session, usecase.StartConversationInput{
		ProductID:    req.ProductID,
		SellerID:     req.SellerID,
		FirstMessage: req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	conversationID := c.Param("id")
	if conversationID == "" {
		return response.Error(c, errors.BadRequest("Conversation ID is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := usecase.Session{UserID: c.Get("uid").(string)}

	message, err := h.conversationUseCase.SendMessage(c.Request().Context(), session, usecase.SendMessageInput{
		ConversationID: conversationID,
		Content:        req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ConversationHandler) MarkConversationRead(c echo.Context) error {
	conversationID := c.Param("id")
	if conversationID == "" {
		return response.Error(c, errors.BadRequest("Conversation ID is required", nil))
	}

	session := usecase.Session{UserID: c.Get("uid").(string)}

	if err := h.conversationUseCase.MarkConversationRead(c.Request().Context(), session, conversationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Conversation marked as read",
	})
}
