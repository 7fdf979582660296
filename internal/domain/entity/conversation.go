package entity

import "time"

// Conversation is the durable row backing a buyer/seller thread about one
// product. At most one conversation exists per (buyer, seller, product)
// triple; the store enforces this with a deterministic document id.
type Conversation struct {
	ID            string    `json:"id" firestore:"id"`
	ProductID     string    `json:"product_id" firestore:"productId"`
	BuyerID       string    `json:"buyer_id" firestore:"buyerId"`
	SellerID      string    `json:"seller_id" firestore:"sellerId"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`
}

// CounterpartID returns the other participant relative to userID, or ""
// when userID is not a participant.
func (c *Conversation) CounterpartID(userID string) string {
	switch userID {
	case c.BuyerID:
		return c.SellerID
	case c.SellerID:
		return c.BuyerID
	}
	return ""
}

func (c *Conversation) HasParticipant(userID string) bool {
	return userID == c.BuyerID || userID == c.SellerID
}

// ProductSummary is the denormalized product slice embedded in conversation
// views. Not persisted on its own.
type ProductSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Images   []string `json:"images"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
}

// ParticipantSummary is the denormalized counterpart slice embedded in
// conversation views.
type ParticipantSummary struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	IsVerified        bool   `json:"is_verified"`
	IsBuyer           bool   `json:"is_buyer"`
}

// ConversationDetail is the assembled single-thread view. ID is empty in the
// pre-chat state, before any conversation row exists.
type ConversationDetail struct {
	ID          string             `json:"id,omitempty"`
	Product     ProductSummary     `json:"product"`
	Participant ParticipantSummary `json:"participant"`
	Messages    []Message          `json:"messages"`
}

// LastMessagePreview is the trailing message shown in the conversation list.
type LastMessagePreview struct {
	Content   string    `json:"content"`
	SenderID  string    `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationPreview is one row of the conversation list view.
type ConversationPreview struct {
	ID            string              `json:"id"`
	Product       ProductSummary      `json:"product"`
	Participant   ParticipantSummary  `json:"participant"`
	LastMessage   *LastMessagePreview `json:"last_message,omitempty"`
	UnreadCount   int64               `json:"unread_count"`
	LastMessageAt time.Time           `json:"last_message_at"`
}
