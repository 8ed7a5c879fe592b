package honeypot

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	model "github.com/nvx-labs/scamtrap/internal/model/engagement"
	engagementService "github.com/nvx-labs/scamtrap/internal/service/engagement"
	"github.com/nvx-labs/scamtrap/pkg/utils"
)

// Handler exposes the honeypot endpoint and the operator session views.
type Handler struct {
	svc *engagementService.Service
}

// New creates the honeypot handler.
func New(svc *engagementService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the honeypot routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/honeypot", h.handleEngage)
	r.Get("/sessions", h.handleListSessions)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
}

type messagePayload struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type engagePayload struct {
	SessionID           string           `json:"sessionId"`
	Message             messagePayload   `json:"message"`
	ConversationHistory []messagePayload `json:"conversationHistory"`
}

type metricsPayload struct {
	TotalMessagesExchanged    int `json:"totalMessagesExchanged"`
	EngagementDurationSeconds int `json:"engagementDurationSeconds"`
}

type engageResponse struct {
	Status                string             `json:"status"`
	ScamDetected          bool               `json:"scamDetected"`
	AgentResponse         *string            `json:"agentResponse"`
	EngagementMetrics     metricsPayload     `json:"engagementMetrics"`
	ExtractedIntelligence model.Intelligence `json:"extractedIntelligence"`
	AgentNotes            string             `json:"agentNotes"`
}

func (h *Handler) handleEngage(w http.ResponseWriter, r *http.Request) {
	var payload engagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := engagementService.Request{
		SessionID: payload.SessionID,
		Message:   toMessage(payload.Message),
		History:   make([]model.Message, 0, len(payload.ConversationHistory)),
	}
	for _, m := range payload.ConversationHistory {
		req.History = append(req.History, toMessage(m))
	}

	result, err := h.svc.Engage(r.Context(), req)
	if err != nil {
		if errors.Is(err, engagementService.ErrSessionIDRequired) ||
			errors.Is(err, engagementService.ErrMessageTextRequired) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "engagement failed")
		return
	}

	resp := engageResponse{
		Status:       "success",
		ScamDetected: result.ScamDetected,
		EngagementMetrics: metricsPayload{
			TotalMessagesExchanged:    result.TotalMessages,
			EngagementDurationSeconds: result.DurationSeconds,
		},
		ExtractedIntelligence: result.Intelligence,
		AgentNotes:            result.AgentNotes,
	}
	if result.Replied {
		resp.AgentResponse = &result.AgentReply
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": h.svc.Sessions(),
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	snapshot, err := h.svc.Snapshot(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, snapshot)
}

// toMessage converts a wire message; a malformed timestamp is treated as
// absent rather than rejected.
func toMessage(p messagePayload) model.Message {
	msg := model.Message{Sender: p.Sender, Text: p.Text}
	if p.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
			msg.Timestamp = ts.UTC()
		}
	}
	return msg
}
