package repository

import (
	"context"
	"time"

	"worldmart/internal/domain/entity"
)

type ConversationRepository interface {
	// Create inserts a conversation row keyed by its (buyer, seller, product)
	// triple. Returns a CONFLICT error when the triple already exists.
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	// GetByParticipants looks a conversation up by its uniqueness key.
	GetByParticipants(ctx context.Context, buyerID, sellerID, productID string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error)
	// TouchLastMessage bumps the conversation's last-activity timestamp.
	TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]entity.Message, error)
	LastMessage(ctx context.Context, conversationID string) (*entity.Message, error)
	CountUnread(ctx context.Context, conversationID, readerID string) (int64, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error
}
