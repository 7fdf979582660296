package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"worldmart/internal/adapter/api/handler"
	"worldmart/pkg/errors"
	"worldmart/pkg/response"
)

func TestHealthCheck(t *testing.T) {
	// Setup
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	healthHandler := handler.NewHealthHandler()

	// Assertions
	if assert.NoError(t, healthHandler.CheckHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Server is running")
	}
}

func TestResolveRequiresIdentifier(t *testing.T) {
	// A resolve with neither a conversation id nor a full pair must fail
	// before reaching the use case.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/conversations/resolve?product_id=prod-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "user-1")

	conversationHandler := handler.NewConversationHandler(nil)

	if assert.NoError(t, conversationHandler.ResolveConversation(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "BAD_REQUEST")
	}
}

func TestWebSocketUpgradeRequiresToken(t *testing.T) {
	// Without an authenticated uid or a token query parameter the upgrade is
	// rejected before touching the connection.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wsHandler := handler.NewWebSocketHandler(nil, nil)

	err := wsHandler.HandleWebSocket(c)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestErrorEnvelope(t *testing.T) {
	// Application errors map to the standard envelope with their own status.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/conversations/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := response.Error(c, errors.NotFound("Conversation", nil))

	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
		assert.Contains(t, rec.Body.String(), "Conversation not found")
	}
}
