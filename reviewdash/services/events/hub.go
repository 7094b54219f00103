// Package events fans out import notifications to live dashboard clients.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const subscriberBuffer = 16

// Event is published after every import run.
type Event struct {
	Type     string    `json:"type"`
	Kind     string    `json:"kind"`
	RunID    uuid.UUID `json:"runId"`
	Count    int       `json:"count"`
	Failed   int       `json:"failed"`
	Occurred time.Time `json:"occurred"`
}

const TypeImportCompleted = "import_completed"

// Hub is a mutex guarded set of subscriber channels. Slow subscribers miss
// events instead of blocking publishers.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

// Subscribe returns a receive channel and a cancel func that closes it.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
