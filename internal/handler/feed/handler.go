package feed

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/nvx-labs/scamtrap/pkg/utils"
)

const writeTimeout = 10 * time.Second

// Handler exposes the live feed over websocket and per-session SSE.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// New creates the feed handler around a hub.
func New(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the feed endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/feed", h.handleFeed)
	r.Get("/sessions/{sessionID}/stream", h.handleSessionStream)
}

// handleFeed upgrades to a websocket and pushes every engagement event as a
// JSON frame until the client disconnects or falls too far behind.
func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.logger.Warn("feed upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.subscribe("")
	defer cancel()

	// Reader loop only notices disconnects; inbound frames are ignored.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// handleSessionStream streams events for one session as SSE frames.
func (h *Handler) handleSessionStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "session id is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.hub.subscribe(sessionID)
	defer cancel()

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "status", map[string]string{"message": "stream established"})

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			utils.SendSSEEvent(w, flusher, event.Type, event)
		}
	}
}
