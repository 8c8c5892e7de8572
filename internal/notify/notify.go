// Package notify fans dashboard notifications out to live subscribers and
// keeps a short history for pages rendered after the fact.
package notify

import (
	"sync"
	"time"

	"sandboxdash/internal/constants"

	"github.com/google/uuid"
)

// Level is the visual treatment of a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Kind tells the browser what, if anything, to refresh
type Kind string

const (
	KindGeneric      Kind = "generic"
	KindCloneSettled Kind = "clone_settled"
)

// Notification is a single toast
type Notification struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Subject string    `json:"subject,omitempty"`
	Time    time.Time `json:"time"`
}

// Hub broadcasts notifications to subscribers
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Notification]struct{}
	history     []Notification
	historySize int
	bufferSize  int
}

// NewHub creates a hub with the default history and buffer sizes
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Notification]struct{}),
		historySize: constants.NotificationHistorySize,
		bufferSize:  constants.SubscriberBufferSize,
	}
}

// Publish stamps n and delivers it to every subscriber. Subscribers whose
// buffer is full miss the notification; Publish never blocks.
func (h *Hub) Publish(n Notification) Notification {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Time.IsZero() {
		n.Time = time.Now()
	}
	if n.Kind == "" {
		n.Kind = KindGeneric
	}
	if n.Level == "" {
		n.Level = LevelInfo
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.history = append(h.history, n)
	if len(h.history) > h.historySize {
		h.history = h.history[len(h.history)-h.historySize:]
	}

	for ch := range h.subscribers {
		select {
		case ch <- n:
		default:
		}
	}

	return n
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called to release it; it closes the channel.
func (h *Hub) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, h.bufferSize)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Recent returns a copy of the retained history, oldest first
func (h *Hub) Recent() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, len(h.history))
	copy(out, h.history)
	return out
}

// Since returns the retained notifications published at or after t, oldest first
func (h *Hub) Since(t time.Time) []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []Notification
	for _, n := range h.history {
		if !n.Time.Before(t) {
			out = append(out, n)
		}
	}
	return out
}

// SubscriberCount returns the number of live subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
