package usecase

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"worldmart/internal/domain/entity"
	"worldmart/pkg/errors"
)

// raceResolve runs the by-id and by-pair lookups concurrently with defined
// precedence: a usable by-id result wins and cancels the by-pair fetch. A
// lookup that finds nothing reports a nil resolution, not an error, so the
// combined operation only fails on a real backend error from either path.
func (u *ConversationUseCase) raceResolve(ctx context.Context, session Session, params ResolveParams) (*Resolution, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(raceCtx)

	var byID, byPair *Resolution

	g.Go(func() error {
		if params.ConversationID == "" {
			return nil
		}
		resolution, err := u.resolveByID(gctx, session, params.ConversationID)
		if err != nil {
			if gctx.Err() != nil {
				return nil
			}
			return err
		}
		if resolution != nil {
			byID = resolution
			cancel()
		}
		return nil
	})

	g.Go(func() error {
		if params.ParticipantID == "" || params.ProductID == "" {
			return nil
		}
		resolution, err := u.resolveByPair(gctx, session, params.ParticipantID, params.ProductID)
		if err != nil {
			if gctx.Err() != nil {
				return nil
			}
			return err
		}
		byPair = resolution
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if byID != nil {
		return byID, nil
	}
	return byPair, nil
}

// resolveByID fetches the conversation detail for a known id, scoped to the
// current user: a conversation the caller does not participate in resolves
// to nothing, never to the other party's data.
func (u *ConversationUseCase) resolveByID(ctx context.Context, session Session, conversationID string) (*Resolution, error) {
	conversation, err := u.conversationRepo.GetByID(ctx, conversationID)
	if errors.Is(err, "NOT_FOUND") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(session.UserID) {
		log.Printf("resolveByID: User %s is not a participant in conversation %s", session.UserID, conversationID)
		return nil, nil
	}

	detail, err := u.buildDetail(ctx, session, conversation)
	if err != nil {
		return nil, err
	}

	return &Resolution{Detail: detail}, nil
}

// resolveByPair looks up an existing conversation between the current user
// and participantID about productID, and falls back to synthesizing a
// pre-chat placeholder from the product and the participant's public
// profile. A genuine backend error on the synthesis reads propagates; it is
// never collapsed into "not found".
func (u *ConversationUseCase) resolveByPair(ctx context.Context, session Session, participantID, productID string) (*Resolution, error) {
	conversation, err := u.conversationRepo.GetByParticipants(ctx, session.UserID, participantID, productID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if conversation != nil {
		detail, err := u.buildDetail(ctx, session, conversation)
		if err != nil {
			return nil, err
		}
		return &Resolution{Detail: detail}, nil
	}

	product, err := u.productRepo.GetByID(ctx, productID)
	if errors.Is(err, "NOT_FOUND") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetByID(ctx, participantID)
	if errors.Is(err, "NOT_FOUND") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Detail: &entity.ConversationDetail{
			Product:     product.Summary(),
			Participant: profile.Summary(false),
			Messages:    []entity.Message{},
		},
		PreChat: true,
	}, nil
}

// buildDetail assembles the denormalized thread view for an existing
// conversation: product summary, counterpart summary and ordered messages.
func (u *ConversationUseCase) buildDetail(ctx context.Context, session Session, conversation *entity.Conversation) (*entity.ConversationDetail, error) {
	product, err := u.productRepo.GetByID(ctx, conversation.ProductID)
	if err != nil {
		return nil, err
	}

	counterpartID := conversation.CounterpartID(session.UserID)
	profile, err := u.profileRepo.GetByID(ctx, counterpartID)
	if err != nil {
		return nil, err
	}

	messages, err := u.conversationRepo.ListMessages(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}

	return &entity.ConversationDetail{
		ID:          conversation.ID,
		Product:     product.Summary(),
		Participant: profile.Summary(counterpartID == conversation.BuyerID),
		Messages:    messages,
	}, nil
}
