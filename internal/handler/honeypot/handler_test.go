package honeypot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/nvx-labs/scamtrap/internal/analysis/intel"
	"github.com/nvx-labs/scamtrap/internal/analysis/scam"
	engagementService "github.com/nvx-labs/scamtrap/internal/service/engagement"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	classifier := scam.NewClassifier(nil, 2)
	extractor, err := intel.NewExtractor("", classifier)
	if err != nil {
		t.Fatalf("NewExtractor err: %v", err)
	}
	svc := engagementService.NewService(classifier, extractor, nil, nil, engagementService.Config{
		ReportThreshold: 6,
	}, nil)
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postHoneypot(t *testing.T, r *chi.Mux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/honeypot", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestEngageScamRequest(t *testing.T) {
	r := setupRouter(t)

	resp := postHoneypot(t, r, `{
		"sessionId": "s1",
		"message": {
			"sender": "scammer",
			"text": "Your account will be blocked today. Verify urgently.",
			"timestamp": "2026-01-21T10:15:30Z"
		}
	}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Status        string  `json:"status"`
		ScamDetected  bool    `json:"scamDetected"`
		AgentResponse *string `json:"agentResponse"`
		Metrics       struct {
			TotalMessagesExchanged int `json:"totalMessagesExchanged"`
		} `json:"engagementMetrics"`
		Intel struct {
			SuspiciousKeywords []string `json:"suspiciousKeywords"`
		} `json:"extractedIntelligence"`
		AgentNotes string `json:"agentNotes"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.Status != "success" {
		t.Fatalf("unexpected status: %q", body.Status)
	}
	if !body.ScamDetected {
		t.Fatal("expected scamDetected true")
	}
	if body.AgentResponse == nil || *body.AgentResponse == "" {
		t.Fatal("expected a non-null agent response")
	}
	if body.Metrics.TotalMessagesExchanged != 1 {
		t.Fatalf("unexpected message count: %d", body.Metrics.TotalMessagesExchanged)
	}
	if len(body.Intel.SuspiciousKeywords) == 0 {
		t.Fatal("expected suspicious keywords")
	}
	if body.AgentNotes == "" {
		t.Fatal("expected agent notes")
	}
}

func TestEngageBenignRequestNullReply(t *testing.T) {
	r := setupRouter(t)

	resp := postHoneypot(t, r, `{
		"sessionId": "s2",
		"message": {"sender": "scammer", "text": "Hi, how are you?"}
	}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["scamDetected"] != false {
		t.Fatal("expected scamDetected false")
	}
	if reply, ok := body["agentResponse"]; !ok || reply != nil {
		t.Fatalf("expected explicit null agentResponse, got %v", reply)
	}
}

func TestEngageMissingSessionID(t *testing.T) {
	r := setupRouter(t)

	resp := postHoneypot(t, r, `{"message": {"sender": "scammer", "text": "hello"}}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEngageMissingMessageText(t *testing.T) {
	r := setupRouter(t)

	resp := postHoneypot(t, r, `{"sessionId": "s1", "message": {"sender": "scammer"}}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEngageInvalidBody(t *testing.T) {
	r := setupRouter(t)

	resp := postHoneypot(t, r, `{not json`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEngageWithHistory(t *testing.T) {
	r := setupRouter(t)

	resp := postHoneypot(t, r, `{
		"sessionId": "s3",
		"message": {"sender": "scammer", "text": "verify your upi now"},
		"conversationHistory": [
			{"sender": "scammer", "text": "hello"},
			{"sender": "agent", "text": "who is this?"}
		]
	}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Metrics struct {
			TotalMessagesExchanged int `json:"totalMessagesExchanged"`
		} `json:"engagementMetrics"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Metrics.TotalMessagesExchanged != 3 {
		t.Fatalf("expected 3 messages, got %d", body.Metrics.TotalMessagesExchanged)
	}
}

func TestListSessions(t *testing.T) {
	r := setupRouter(t)

	postHoneypot(t, r, `{"sessionId": "s1", "message": {"sender": "scammer", "text": "urgent verify"}}`)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Sessions []struct {
			ID           string `json:"id"`
			ScamDetected bool   `json:"scamDetected"`
		} `json:"sessions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Sessions) != 1 || body.Sessions[0].ID != "s1" {
		t.Fatalf("unexpected listing: %+v", body.Sessions)
	}
	if !body.Sessions[0].ScamDetected {
		t.Fatal("expected flagged session in listing")
	}
}

func TestGetSession(t *testing.T) {
	r := setupRouter(t)

	postHoneypot(t, r, `{"sessionId": "s1", "message": {"sender": "scammer", "text": "urgent verify"}}`)

	req := httptest.NewRequest(http.MethodGet, "/sessions/s1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/sessions/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
