package repository

import (
	"context"
	"log"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"worldmart/internal/domain/entity"
	"worldmart/internal/domain/repository"
	"worldmart/pkg/errors"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	conversation.ID = conversationDocID(conversation.BuyerID, conversation.SellerID, conversation.ProductID)

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	if conversation.LastMessageAt.IsZero() {
		conversation.LastMessageAt = now
	}

	// Create, not Set: the deterministic doc id turns a concurrent insert of
	// the same triple into an AlreadyExists failure instead of an overwrite.
	_, err := r.client.Collection("conversations").Doc(conversation.ID).Create(ctx, conversation)
	if err != nil {
		if isAlreadyExists(err) {
			return errors.Conflict("Conversation already exists for this buyer, seller and product", err)
		}
		return errors.Internal("Failed to create conversation", err)
	}

	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conversation, nil
}

func (r *firestoreConversationRepository) GetByParticipants(ctx context.Context, buyerID, sellerID, productID string) (*entity.Conversation, error) {
	return r.GetByID(ctx, conversationDocID(buyerID, sellerID, productID))
}

func (r *firestoreConversationRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	// Firestore has no OR filter across fields, so query both roles and merge.
	var conversations []*entity.Conversation
	for _, field := range []string{"buyerId", "sellerId"} {
		docs, err := r.client.Collection("conversations").Where(field, "==", userID).Documents(ctx).GetAll()
		if err != nil {
			log.Printf("Firestore error while fetching conversations for user %s: %v", userID, err)
			return nil, errors.Internal("Failed to fetch conversations", err)
		}

		for _, doc := range docs {
			var conversation entity.Conversation
			if err := doc.DataTo(&conversation); err != nil {
				log.Printf("Error parsing conversation data for user %s: %v", userID, err)
				continue
			}
			conversations = append(conversations, &conversation)
		}
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})

	return conversations, nil
}

func (r *firestoreConversationRepository) TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error {
	_, err := r.client.Collection("conversations").Doc(conversationID).Update(ctx, []firestore.Update{
		{Path: "lastMessageAt", Value: at},
		{Path: "updatedAt", Value: at},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to update conversation last activity", err)
	}

	return nil
}

func (r *firestoreConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("conversations").Doc(message.ConversationID).Collection("messages").Doc(message.ID).Create(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]entity.Message, error) {
	iter := r.client.Collection("conversations").Doc(conversationID).Collection("messages").
		OrderBy("createdAt", firestore.Asc).Documents(ctx)

	messages := []entity.Message{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating messages for conversation %s: %v", conversationID, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message data for conversation %s: %v", conversationID, err)
			return nil, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, message)
	}

	return messages, nil
}

func (r *firestoreConversationRepository) LastMessage(ctx context.Context, conversationID string) (*entity.Message, error) {
	iter := r.client.Collection("conversations").Doc(conversationID).Collection("messages").
		OrderBy("createdAt", firestore.Desc).Limit(1).Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Message", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get last message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}

	return &message, nil
}

func (r *firestoreConversationRepository) CountUnread(ctx context.Context, conversationID, readerID string) (int64, error) {
	// No != filter in Firestore; fetch unread rows and skip the reader's own.
	docs, err := r.client.Collection("conversations").Doc(conversationID).Collection("messages").
		Where("isRead", "==", false).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}

	var count int64
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		if message.SenderID != readerID {
			count++
		}
	}

	return count, nil
}

func (r *firestoreConversationRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	docs, err := r.client.Collection("conversations").Doc(conversationID).Collection("messages").
		Where("isRead", "==", false).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to fetch unread messages", err)
	}

	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		if message.SenderID == readerID {
			continue
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{{Path: "isRead", Value: true}}); err != nil {
			return errors.Internal("Failed to update message read status", err)
		}
	}

	return nil
}
