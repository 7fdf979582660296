package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"worldmart/internal/cache"
	"worldmart/internal/domain/entity"
	"worldmart/internal/domain/repository"
	"worldmart/internal/infrastructure/ratelimit"
	ws "worldmart/internal/infrastructure/websocket"
	"worldmart/pkg/errors"
)

// Notifier is the push side of the messaging flow. Satisfied by the
// WebSocket manager; tests substitute their own.
type Notifier interface {
	NotifyUser(userID string, payload map[string]interface{})
}

type ConversationUseCase struct {
	conversationRepo repository.ConversationRepository
	productRepo      repository.ProductRepository
	profileRepo      repository.ProfileRepository
	cache            *cache.ConversationCache
	notifier         Notifier
	rateLimiter      *ratelimit.RateLimiter
}

func NewConversationUseCase(
	conversationRepo repository.ConversationRepository,
	productRepo repository.ProductRepository,
	profileRepo repository.ProfileRepository,
	conversationCache *cache.ConversationCache,
	notifier Notifier,
	rateLimiter *ratelimit.RateLimiter,
) *ConversationUseCase {
	return &ConversationUseCase{
		conversationRepo: conversationRepo,
		productRepo:      productRepo,
		profileRepo:      profileRepo,
		cache:            conversationCache,
		notifier:         notifier,
		rateLimiter:      rateLimiter,
	}
}

var _ Notifier = (*ws.Manager)(nil)

// ResolveParams identifies a thread that may or may not exist yet. Callers
// supply whichever of the two shapes they have; both may be set.
type ResolveParams struct {
	ConversationID string
	ParticipantID  string
	ProductID      string
}

// Resolution is the outcome of a resolve: a populated detail for an existing
// conversation, or a synthesized placeholder with PreChat set when no row
// exists yet for the (participant, product) pair.
type Resolution struct {
	Detail  *entity.ConversationDetail `json:"conversation_detail"`
	PreChat bool                       `json:"is_pre_chat"`
}

// Resolve produces exactly one of: existing conversation with messages,
// pre-chat placeholder, or a NOT_FOUND error. The by-id and by-pair lookups
// run concurrently; by-id wins when both yield data. A real backend error
// from either path fails the resolve; absence of a row does not.
func (u *ConversationUseCase) Resolve(ctx context.Context, session Session, params ResolveParams) (*Resolution, error) {
	if params.ConversationID == "" && (params.ParticipantID == "" || params.ProductID == "") {
		return nil, errors.BadRequest("A conversation id or a participant and product pair is required", nil)
	}

	// Cache keys carry the session user: a detail is one user's view of the
	// thread, and the cache is shared by every user in the process.
	detailKey := ""
	if params.ConversationID != "" {
		detailKey = cache.DetailKey(session.UserID, params.ConversationID)
	}
	pairKey := ""
	if params.ParticipantID != "" && params.ProductID != "" {
		pairKey = cache.PairKey(session.UserID, params.ParticipantID, params.ProductID)
	}

	if cached, ok := u.cachedResolution(detailKey, pairKey); ok {
		return cached, nil
	}

	fillKey := detailKey
	if fillKey == "" {
		fillKey = pairKey
	}
	token := u.cache.BeginFill(fillKey)

	resolution, err := u.raceResolve(ctx, session, params)
	if err != nil {
		return nil, err
	}
	if resolution == nil {
		return nil, errors.NotFound("Conversation", nil)
	}

	// Pre-chat placeholders are synthesized per request, never cached: the
	// next resolve after a send must observe the created row.
	if !resolution.PreChat {
		u.cache.CompleteFill(token, resolution.Detail,
			cache.DetailKey(session.UserID, resolution.Detail.ID),
			cache.PairKey(session.UserID, resolution.Detail.Participant.ID, resolution.Detail.Product.ID))
	}

	return resolution, nil
}

func (u *ConversationUseCase) cachedResolution(detailKey, pairKey string) (*Resolution, bool) {
	if detailKey != "" {
		if detail, ok := u.cache.Get(detailKey); ok {
			return &Resolution{Detail: detail}, true
		}
	}
	if pairKey != "" {
		if detail, ok := u.cache.Get(pairKey); ok {
			return &Resolution{Detail: detail}, true
		}
	}
	return nil, false
}

// StartConversationInput carries the first-send parameters from a pre-chat
// screen. FirstMessage feeds only the optimistic overlay here; the row it
// describes is written by SendMessage afterwards.
type StartConversationInput struct {
	ProductID    string
	SellerID     string
	FirstMessage string
}

// StartConversation materializes the conversation row for (current user as
// buyer, seller, product). A uniqueness conflict from a concurrent creation
// of the same triple is recovered by re-reading the existing row; callers
// never observe the conflict.
func (u *ConversationUseCase) StartConversation(ctx context.Context, session Session, input StartConversationInput) (*entity.Conversation, error) {
	allowed, waitTime := u.rateLimiter.Allow(session.UserID, "start_conversation")
	if !allowed {
		log.Printf("StartConversation Rate Limited: User %s must wait %v", session.UserID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another conversation")
	}

	if session.UserID == input.SellerID {
		log.Printf("StartConversation Error: User %s attempted to start a conversation with themselves", session.UserID)
		return nil, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}

	pairKey := cache.PairKey(session.UserID, input.SellerID, input.ProductID)

	// Optimistic overlay goes in before the network call so the sender sees
	// their first message immediately.
	staged := entity.Message{
		ID:        uuid.New().String(),
		SenderID:  session.UserID,
		Content:   input.FirstMessage,
		CreatedAt: time.Now(),
	}
	u.cache.StagePending(pairKey, staged)

	conversation := &entity.Conversation{
		ProductID: input.ProductID,
		BuyerID:   session.UserID,
		SellerID:  input.SellerID,
	}

	err := u.conversationRepo.Create(ctx, conversation)
	if errors.Is(err, "CONFLICT") {
		existing, getErr := u.conversationRepo.GetByParticipants(ctx, session.UserID, input.SellerID, input.ProductID)
		if getErr != nil {
			log.Printf("StartConversation Error: Conflict recovery failed for user %s, seller %s, product %s: %v",
				session.UserID, input.SellerID, input.ProductID, getErr)
			u.cache.DropPending(pairKey, staged.ID)
			return nil, getErr
		}
		log.Printf("StartConversation: Recovered existing conversation %s after concurrent creation", existing.ID)
		conversation = existing
	} else if err != nil {
		log.Printf("StartConversation Error: Failed to create conversation: %v", err)
		u.cache.DropPending(pairKey, staged.ID)
		return nil, err
	}

	u.cache.BindPair(pairKey, cache.DetailKey(session.UserID, conversation.ID))
	u.cache.InvalidateList(conversation.BuyerID, conversation.SellerID)

	return conversation, nil
}

type SendMessageInput struct {
	ConversationID string
	Content        string
	// FirstMessage suppresses the optimistic overlay when the conversation
	// was just created by StartConversation, which already staged it.
	FirstMessage bool
}

// SendMessage appends a message and then bumps the conversation's
// last-activity timestamp. The timestamp update is strictly ordered after
// the insert and never attempted when the insert fails.
func (u *ConversationUseCase) SendMessage(ctx context.Context, session Session, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := u.rateLimiter.Allow(session.UserID, "send_message")
	if !allowed {
		log.Printf("SendMessage Rate Limited: User %s must wait %v", session.UserID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message")
	}

	conversation, err := u.conversationRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		log.Printf("SendMessage Error: Conversation %s not found: %v", input.ConversationID, err)
		return nil, err
	}

	if !conversation.HasParticipant(session.UserID) {
		log.Printf("SendMessage Error: User %s is not a participant in conversation %s", session.UserID, input.ConversationID)
		return nil, errors.Forbidden("User is not a participant in this conversation", nil)
	}

	counterpartID := conversation.CounterpartID(session.UserID)
	detailKey := cache.DetailKey(session.UserID, conversation.ID)

	if !input.FirstMessage {
		u.cache.StagePending(detailKey, entity.Message{
			ID:             uuid.New().String(),
			ConversationID: conversation.ID,
			SenderID:       session.UserID,
			Content:        input.Content,
			CreatedAt:      time.Now(),
		})
	}

	// Settlement, success or failure, drops both participants' cached views
	// and lists so the next read replaces optimistic state with server truth.
	defer func() {
		u.cache.Invalidate(
			detailKey,
			cache.PairKey(session.UserID, counterpartID, conversation.ProductID),
			cache.DetailKey(counterpartID, conversation.ID),
			cache.PairKey(counterpartID, session.UserID, conversation.ProductID),
		)
		u.cache.InvalidateList(conversation.BuyerID, conversation.SellerID)
	}()

	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       session.UserID,
		Content:        input.Content,
	}

	if err := u.conversationRepo.CreateMessage(ctx, message); err != nil {
		log.Printf("SendMessage Error: Failed to create message for conversation %s: %v", conversation.ID, err)
		return nil, err
	}

	if err := u.conversationRepo.TouchLastMessage(ctx, conversation.ID, message.CreatedAt); err != nil {
		// The message exists server-side; list ordering is briefly stale and
		// corrected on the next read. The caller still sees the failure.
		log.Printf("SendMessage Error: Failed to update last activity for conversation %s: %v", conversation.ID, err)
		return nil, err
	}

	u.notifier.NotifyUser(counterpartID, map[string]interface{}{
		"type":            "new_message",
		"conversation_id": conversation.ID,
		"message":         message,
	})

	return message, nil
}

// StartResult carries the created conversation id back to the caller so the
// screen can switch from the pre-chat pair context to the by-id context.
type StartResult struct {
	Conversation *entity.Conversation `json:"conversation"`
	Message      *entity.Message      `json:"message"`
}

// StartWithMessage is the pre-chat to active transition: create the row
// (recovering from a concurrent creation), then send the first message.
func (u *ConversationUseCase) StartWithMessage(ctx context.Context, session Session, input StartConversationInput) (*StartResult, error) {
	conversation, err := u.StartConversation(ctx, session, input)
	if err != nil {
		return nil, err
	}

	message, err := u.SendMessage(ctx, session, SendMessageInput{
		ConversationID: conversation.ID,
		Content:        input.FirstMessage,
		FirstMessage:   true,
	})
	if err != nil {
		return nil, err
	}

	return &StartResult{Conversation: conversation, Message: message}, nil
}

// ListConversations returns the caller's conversations ordered by last
// activity, each with product, counterpart, last message and unread count.
func (u *ConversationUseCase) ListConversations(ctx context.Context, session Session) ([]entity.ConversationPreview, error) {
	if cached, ok := u.cache.GetList(session.UserID); ok {
		return cached, nil
	}

	conversations, err := u.conversationRepo.ListByUserID(ctx, session.UserID)
	if err != nil {
		log.Printf("ListConversations Error: Failed to list conversations for user %s: %v", session.UserID, err)
		return nil, err
	}

	previews := []entity.ConversationPreview{}
	for _, conversation := range conversations {
		preview := entity.ConversationPreview{
			ID:            conversation.ID,
			LastMessageAt: conversation.LastMessageAt,
		}

		if product, err := u.productRepo.GetByID(ctx, conversation.ProductID); err == nil {
			preview.Product = product.Summary()
		} else {
			log.Printf("ListConversations Warning: Product %s not found for conversation %s: %v", conversation.ProductID, conversation.ID, err)
		}

		counterpartID := conversation.CounterpartID(session.UserID)
		if profile, err := u.profileRepo.GetByID(ctx, counterpartID); err == nil {
			preview.Participant = profile.Summary(counterpartID == conversation.BuyerID)
		} else {
			log.Printf("ListConversations Warning: Profile %s not found for conversation %s: %v", counterpartID, conversation.ID, err)
		}

		lastMessage, err := u.conversationRepo.LastMessage(ctx, conversation.ID)
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		if lastMessage != nil {
			preview.LastMessage = &entity.LastMessagePreview{
				Content:   lastMessage.Content,
				SenderID:  lastMessage.SenderID,
				CreatedAt: lastMessage.CreatedAt,
			}
		}

		// Unread rows are always counted; shortcuts based on who sent the
		// last message can hide unread rows when read bookkeeping drifts.
		unread, err := u.conversationRepo.CountUnread(ctx, conversation.ID, session.UserID)
		if err != nil {
			return nil, err
		}
		preview.UnreadCount = unread

		previews = append(previews, preview)
	}

	u.cache.PutList(session.UserID, previews)

	return previews, nil
}

// MarkConversationRead flips the read flag on every message the caller has
// not sent.
func (u *ConversationUseCase) MarkConversationRead(ctx context.Context, session Session, conversationID string) error {
	conversation, err := u.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		log.Printf("MarkConversationRead Error: Conversation %s not found: %v", conversationID, err)
		return err
	}

	if !conversation.HasParticipant(session.UserID) {
		log.Printf("MarkConversationRead Error: User %s is not a participant in conversation %s", session.UserID, conversationID)
		return errors.Forbidden("User is not a participant in this conversation", nil)
	}

	if err := u.conversationRepo.MarkMessagesRead(ctx, conversationID, session.UserID); err != nil {
		log.Printf("MarkConversationRead Error: Failed to mark messages read for conversation %s: %v", conversationID, err)
		return err
	}

	counterpartID := conversation.CounterpartID(session.UserID)
	u.cache.Invalidate(
		cache.DetailKey(session.UserID, conversationID),
		cache.PairKey(session.UserID, counterpartID, conversation.ProductID),
		cache.DetailKey(counterpartID, conversationID),
		cache.PairKey(counterpartID, session.UserID, conversation.ProductID),
	)
	u.cache.InvalidateList(session.UserID)

	return nil
}
