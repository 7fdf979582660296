package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"worldmart/internal/domain/entity"
)

// ConversationCache is the read-through cache in front of the conversation
// store, with a short-lived optimistic overlay for pending sends.
//
// Every key is scoped to the viewing user. A detail is viewer-relative (the
// counterpart summary depends on who is looking) and the process serves many
// users, so nothing cached for one user may ever answer another user's read.
// Entries are normalized: one detail per (user, conversation) key, plus a
// secondary index mapping a (user, participant, product) pair key to that
// detail key. Pending messages staged before a conversation exists are keyed
// by the pair key and re-bound under the detail key atomically once the row
// is created. A per-key fill generation lets an optimistic write supersede
// any in-flight read for the same logical key, so a stale fill can never
// overwrite the pending overlay.
type ConversationCache struct {
	mu        sync.Mutex
	details   *lru.Cache[string, *entity.ConversationDetail]
	lists     *lru.Cache[string, []entity.ConversationPreview]
	pairIndex map[string]string // pair key -> detail key
	pending   map[string][]entity.Message
	fills     map[string]uint64
}

// DetailKey builds the primary cache key for one user's view of a
// conversation.
func DetailKey(userID, conversationID string) string {
	return fmt.Sprintf("user:%s:conv:%s", userID, conversationID)
}

// PairKey builds the secondary lookup key for a conversation of userID that
// may not exist yet.
func PairKey(userID, participantID, productID string) string {
	return fmt.Sprintf("user:%s:pair:%s:%s", userID, participantID, productID)
}

func New(size int) (*ConversationCache, error) {
	details, err := lru.New[string, *entity.ConversationDetail](size)
	if err != nil {
		return nil, err
	}
	lists, err := lru.New[string, []entity.ConversationPreview](size)
	if err != nil {
		return nil, err
	}

	return &ConversationCache{
		details:   details,
		lists:     lists,
		pairIndex: make(map[string]string),
		pending:   make(map[string][]entity.Message),
		fills:     make(map[string]uint64),
	}, nil
}

// FillToken identifies one in-flight read for a key. The fill only lands if
// no optimistic write or invalidation happened for the key in the meantime.
type FillToken struct {
	key string
	gen uint64
}

func (c *ConversationCache) BeginFill(key string) FillToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FillToken{key: key, gen: c.fills[key]}
}

// CompleteFill stores the fetched detail under detailKey and binds pairKey
// to it. Reports whether the fill was applied or discarded as stale.
func (c *ConversationCache) CompleteFill(token FillToken, detail *entity.ConversationDetail, detailKey, pairKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fills[token.key] != token.gen {
		return false
	}

	c.details.Add(detailKey, detail)
	if pairKey != "" {
		c.pairIndex[pairKey] = detailKey
	}
	return true
}

// Get returns a snapshot of the cached detail for key (a detail key or a
// pair key), with any pending messages overlaid at the end.
func (c *ConversationCache) Get(key string) (*entity.ConversationDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := key
	if mapped, ok := c.pairIndex[key]; ok {
		id = mapped
	}

	detail, ok := c.details.Get(id)
	if !ok {
		return nil, false
	}

	snapshot := *detail
	snapshot.Messages = make([]entity.Message, 0, len(detail.Messages)+len(c.pending[id]))
	snapshot.Messages = append(snapshot.Messages, detail.Messages...)
	snapshot.Messages = append(snapshot.Messages, c.pending[id]...)
	return &snapshot, true
}

// StagePending appends an optimistic message under key and supersedes any
// in-flight fill for it.
func (c *ConversationCache) StagePending(key string, message entity.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := key
	if mapped, ok := c.pairIndex[key]; ok {
		id = mapped
	}

	message.Pending = true
	c.pending[id] = append(c.pending[id], message)
	c.fills[key]++
	if id != key {
		c.fills[id]++
	}
}

// DropPending rolls back one staged message, by id.
func (c *ConversationCache) DropPending(key, messageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := key
	if mapped, ok := c.pairIndex[key]; ok {
		id = mapped
	}

	staged := c.pending[id]
	for i, message := range staged {
		if message.ID == messageID {
			c.pending[id] = append(staged[:i], staged[i+1:]...)
			break
		}
	}
	if len(c.pending[id]) == 0 {
		delete(c.pending, id)
	}
}

// BindPair records that pairKey now resolves to detailKey and moves any
// pending overlay staged under the pair key beneath it. Index update and
// overlay migration happen under one lock acquisition.
func (c *ConversationCache) BindPair(pairKey, detailKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pairIndex[pairKey] = detailKey
	if staged, ok := c.pending[pairKey]; ok {
		c.pending[detailKey] = append(c.pending[detailKey], staged...)
		delete(c.pending, pairKey)
	}
}

// Invalidate drops the detail and pending overlay for each key and
// supersedes in-flight fills, forcing the next read through to the store.
func (c *ConversationCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if key == "" {
			continue
		}

		id := key
		if mapped, ok := c.pairIndex[key]; ok {
			id = mapped
		}

		c.details.Remove(id)
		delete(c.pending, id)
		c.fills[key]++
		if id != key {
			c.fills[id]++
		}
	}
}

// GetList returns the cached conversation list for a user.
func (c *ConversationCache) GetList(userID string) ([]entity.ConversationPreview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists.Get(userID)
	return list, ok
}

func (c *ConversationCache) PutList(userID string, list []entity.ConversationPreview) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists.Add(userID, list)
}

func (c *ConversationCache) InvalidateList(userIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, userID := range userIDs {
		c.lists.Remove(userID)
	}
}
