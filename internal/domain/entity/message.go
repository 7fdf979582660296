package entity

import "time"

// Message is append-only from the client's perspective; only the read flag
// is ever mutated after creation.
type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	Content        string    `json:"content" firestore:"content"`
	IsRead         bool      `json:"is_read" firestore:"isRead"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`

	// Pending marks a locally fabricated message awaiting server
	// confirmation. Never persisted; replaced by server truth on the next
	// cache fill.
	Pending bool `json:"pending,omitempty" firestore:"-"`
}
