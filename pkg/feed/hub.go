// Package feed keeps client views of a collection in sync with writes.
//
// Writers Publish the topic they touched. Each View subscribed to that topic
// re-runs its query and replaces its snapshot wholesale.
package feed

import (
	"sync"

	"go.uber.org/zap"
)

// Topic names one filtered view of a collection. UserID is empty for
// collections that are not scoped to a user.
type Topic struct {
	Collection string
	UserID     string
}

type Hub struct {
	log  *zap.Logger
	mu   sync.Mutex
	subs map[Topic]map[chan struct{}]struct{}
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{log: log, subs: map[Topic]map[chan struct{}]struct{}{}}
}

// Subscribe returns a channel that receives a signal after every Publish of
// t. Signals coalesce: a subscriber that has not drained the previous one
// gets no second one. cancel is safe to call more than once.
func (h *Hub) Subscribe(t Topic) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	set, ok := h.subs[t]
	if !ok {
		set = map[chan struct{}]struct{}{}
		h.subs[t] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[t], ch)
			if len(h.subs[t]) == 0 {
				delete(h.subs, t)
			}
		})
	}
}

func (h *Hub) Publish(t Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[t] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.log.Debug("publish", zap.String("collection", t.Collection), zap.String("uid", t.UserID), zap.Int("subscribers", len(h.subs[t])))
}

// Subscribers reports how many subscribers t has.
func (h *Hub) Subscribers(t Topic) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[t])
}
