package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldmart/internal/domain/entity"
)

func newTestCache(t *testing.T) *ConversationCache {
	c, err := New(16)
	require.NoError(t, err)
	return c
}

func detailFixture(id string) *entity.ConversationDetail {
	return &entity.ConversationDetail{
		ID:          id,
		Product:     entity.ProductSummary{ID: "prod-1", Title: "Mechanical Keyboard", Price: 45, Currency: "WLD"},
		Participant: entity.ParticipantSummary{ID: "seller-1", Username: "alice"},
		Messages: []entity.Message{
			{ID: "m1", ConversationID: id, SenderID: "seller-1", Content: "Still available", CreatedAt: time.Now()},
		},
	}
}

func TestFillAndGetByDetailKey(t *testing.T) {
	c := newTestCache(t)
	detailKey := DetailKey("buyer-1", "conv-1")

	token := c.BeginFill(detailKey)
	applied := c.CompleteFill(token, detailFixture("conv-1"), detailKey, PairKey("buyer-1", "seller-1", "prod-1"))
	assert.True(t, applied)

	detail, ok := c.Get(detailKey)
	require.True(t, ok)
	assert.Equal(t, "conv-1", detail.ID)
	assert.Len(t, detail.Messages, 1)
}

func TestGetThroughPairIndex(t *testing.T) {
	c := newTestCache(t)
	detailKey := DetailKey("buyer-1", "conv-1")
	pairKey := PairKey("buyer-1", "seller-1", "prod-1")

	token := c.BeginFill(detailKey)
	c.CompleteFill(token, detailFixture("conv-1"), detailKey, pairKey)

	detail, ok := c.Get(pairKey)
	require.True(t, ok)
	assert.Equal(t, "conv-1", detail.ID)
}

func TestKeysAreScopedPerUser(t *testing.T) {
	c := newTestCache(t)
	detailKey := DetailKey("buyer-1", "conv-1")

	token := c.BeginFill(detailKey)
	c.CompleteFill(token, detailFixture("conv-1"), detailKey, PairKey("buyer-1", "seller-1", "prod-1"))

	// Neither another user's detail key nor their pair key for the same
	// conversation and product may hit buyer-1's entry.
	_, ok := c.Get(DetailKey("buyer-2", "conv-1"))
	assert.False(t, ok)
	_, ok = c.Get(PairKey("buyer-2", "seller-1", "prod-1"))
	assert.False(t, ok)
}

func TestStaleFillDiscarded(t *testing.T) {
	c := newTestCache(t)
	detailKey := DetailKey("buyer-1", "conv-1")

	token := c.BeginFill(detailKey)

	// An optimistic write lands while the fill is in flight.
	c.StagePending(detailKey, entity.Message{ID: "pending-1", Content: "hey"})

	applied := c.CompleteFill(token, detailFixture("conv-1"), detailKey, "")
	assert.False(t, applied, "fill begun before the optimistic write must not land")

	_, ok := c.Get(detailKey)
	assert.False(t, ok)
}

func TestPendingOverlayAppendsToSnapshot(t *testing.T) {
	c := newTestCache(t)
	detailKey := DetailKey("buyer-1", "conv-1")

	token := c.BeginFill(detailKey)
	c.CompleteFill(token, detailFixture("conv-1"), detailKey, "")

	c.StagePending(detailKey, entity.Message{ID: "pending-1", Content: "is it new?"})

	detail, ok := c.Get(detailKey)
	require.True(t, ok)
	require.Len(t, detail.Messages, 2)
	assert.Equal(t, "pending-1", detail.Messages[1].ID)
	assert.True(t, detail.Messages[1].Pending)

	// The overlay must not leak into the stored entry.
	c.DropPending(detailKey, "pending-1")
	detail, ok = c.Get(detailKey)
	require.True(t, ok)
	assert.Len(t, detail.Messages, 1)
}

func TestBindPairMigratesOverlay(t *testing.T) {
	c := newTestCache(t)
	detailKey := DetailKey("buyer-1", "conv-1")
	pairKey := PairKey("buyer-1", "seller-1", "prod-1")

	c.StagePending(pairKey, entity.Message{ID: "pending-1", Content: "first message"})
	c.BindPair(pairKey, detailKey)

	token := c.BeginFill(detailKey)
	c.CompleteFill(token, detailFixture("conv-1"), detailKey, pairKey)

	detail, ok := c.Get(pairKey)
	require.True(t, ok)
	assert.Equal(t, "conv-1", detail.ID)

	// The message staged under the pair key now rides on the detail key.
	ids := make([]string, 0, len(detail.Messages))
	for _, m := range detail.Messages {
		ids = append(ids, m.ID)
	}
	assert.Contains(t, ids, "pending-1")
}

func TestInvalidateDropsDetailAndPending(t *testing.T) {
	c := newTestCache(t)
	detailKey := DetailKey("buyer-1", "conv-1")
	pairKey := PairKey("buyer-1", "seller-1", "prod-1")

	token := c.BeginFill(detailKey)
	c.CompleteFill(token, detailFixture("conv-1"), detailKey, pairKey)
	c.StagePending(detailKey, entity.Message{ID: "pending-1"})

	c.Invalidate(detailKey, pairKey)

	_, ok := c.Get(detailKey)
	assert.False(t, ok)
	_, ok = c.Get(pairKey)
	assert.False(t, ok)

	// A fill begun before the invalidation must not resurrect the entry.
	stale := FillToken{key: detailKey, gen: 0}
	assert.False(t, c.CompleteFill(stale, detailFixture("conv-1"), detailKey, ""))
}

func TestInvalidateByPairKeyReachesDetail(t *testing.T) {
	c := newTestCache(t)
	detailKey := DetailKey("buyer-1", "conv-1")
	pairKey := PairKey("buyer-1", "seller-1", "prod-1")

	token := c.BeginFill(pairKey)
	c.CompleteFill(token, detailFixture("conv-1"), detailKey, pairKey)

	c.Invalidate(pairKey)

	_, ok := c.Get(detailKey)
	assert.False(t, ok)
}

func TestListCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.GetList("user-1")
	assert.False(t, ok)

	previews := []entity.ConversationPreview{{ID: "conv-1", UnreadCount: 2}}
	c.PutList("user-1", previews)

	cached, ok := c.GetList("user-1")
	require.True(t, ok)
	assert.Equal(t, previews, cached)

	c.InvalidateList("user-1")
	_, ok = c.GetList("user-1")
	assert.False(t, ok)
}
