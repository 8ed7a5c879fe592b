// Package feed fans engagement events out to live observers: websocket
// clients watching everything and SSE streams scoped to one session.
package feed

import (
	"log/slog"
	"sync"

	"github.com/nvx-labs/scamtrap/internal/service/engagement"
)

// subscriberBuffer bounds each observer's backlog. A subscriber that falls
// this far behind is dropped rather than allowed to stall the controller.
const subscriberBuffer = 16

// Hub broadcasts engagement events. It implements engagement.EventSink.
type Hub struct {
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	sessionID string // empty means all sessions
	events    chan engagement.Event
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:      logger,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Publish delivers the event to every matching subscriber without blocking.
func (h *Hub) Publish(event engagement.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers {
		if sub.sessionID != "" && sub.sessionID != event.SessionID {
			continue
		}
		select {
		case sub.events <- event:
		default:
			h.logger.Warn("dropping slow feed subscriber", "session_filter", sub.sessionID)
			delete(h.subscribers, sub)
			close(sub.events)
		}
	}
}

// subscribe registers an observer. The returned cancel function is safe to
// call after the hub already dropped the subscriber.
func (h *Hub) subscribe(sessionID string) (<-chan engagement.Event, func()) {
	sub := &subscriber{
		sessionID: sessionID,
		events:    make(chan engagement.Event, subscriberBuffer),
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[sub]; ok {
			delete(h.subscribers, sub)
			close(sub.events)
		}
	}
	return sub.events, cancel
}
