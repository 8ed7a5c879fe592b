package engagement

import (
	"strings"
	"testing"
	"time"

	model "github.com/nvx-labs/scamtrap/internal/model/engagement"
)

func scammer(text string) model.Message {
	return model.Message{Sender: model.SenderScammer, Text: text}
}

func agent(text string) model.Message {
	return model.Message{Sender: model.SenderAgent, Text: text}
}

func TestNextReplyRepeatedPressure(t *testing.T) {
	msgs := []model.Message{
		scammer("This is URGENT, act now"),
		agent("ok?"),
		scammer("Please verify immediately"),
	}

	if got := nextReply(msgs); got != replySlowDown {
		t.Fatalf("expected slow-down reply, got %q", got)
	}
}

func TestNextReplyLinkCue(t *testing.T) {
	msgs := []model.Message{
		scammer("hello"),
		scammer("click this http://evil.example/kyc"),
	}

	if got := nextReply(msgs); got != replyLinkDoubt {
		t.Fatalf("expected link-doubt reply, got %q", got)
	}
}

func TestNextReplyPressureBeatsLink(t *testing.T) {
	msgs := []model.Message{
		scammer("urgent: open http://evil.example"),
		scammer("verify NOW"),
	}

	if got := nextReply(msgs); got != replySlowDown {
		t.Fatalf("pressure condition must win, got %q", got)
	}
}

func TestNextReplyLongConversation(t *testing.T) {
	msgs := []model.Message{
		scammer("hello"),
		agent("hi"),
		scammer("do this"),
		agent("ok"),
		scammer("then that"),
	}

	if got := nextReply(msgs); got != replyWhatFirst {
		t.Fatalf("expected what-first reply, got %q", got)
	}
}

func TestNextReplyFallback(t *testing.T) {
	msgs := []model.Message{scammer("send your bank details")}

	if got := nextReply(msgs); got != replyStepwise {
		t.Fatalf("expected step-by-step fallback, got %q", got)
	}
}

func TestNextReplyNeverEmpty(t *testing.T) {
	if got := nextReply(nil); got == "" {
		t.Fatal("reply must never be empty for a flagged session")
	}
}

func TestEvictIdleSessions(t *testing.T) {
	svc := &Service{
		cfg:      Config{SessionTTL: time.Hour, ReportThreshold: 6},
		sessions: make(map[string]*session),
	}

	now := time.Now().UTC()
	svc.sessions["stale"] = &session{data: model.Session{ID: "stale", LastSeenAt: now.Add(-2 * time.Hour)}}
	svc.sessions["fresh"] = &session{data: model.Session{ID: "fresh", LastSeenAt: now}}

	if evicted := svc.evictIdle(now); evicted != 1 {
		t.Fatalf("expected 1 eviction, got %d", evicted)
	}
	if _, ok := svc.sessions["stale"]; ok {
		t.Fatal("stale session should be gone")
	}
	if _, ok := svc.sessions["fresh"]; !ok {
		t.Fatal("fresh session should survive")
	}
}

func TestAgentNotes(t *testing.T) {
	data := model.Session{ScamDetected: false}
	if got := agentNotes(data); got != "No scam indicators observed yet" {
		t.Fatalf("unexpected unflagged note: %q", got)
	}

	data = model.Session{ScamDetected: true}
	data.Intel = model.NewIntelligence()
	data.Intel.AddKeywords([]string{"urgent", "otp"})
	data.Intel.PhishingLinks = []string{"http://evil.example"}

	got := agentNotes(data)
	for _, want := range []string{"urgency pressure", "phishing link delivery", "account takeover pretext"} {
		if !strings.Contains(got, want) {
			t.Fatalf("note %q missing %q", got, want)
		}
	}
}
