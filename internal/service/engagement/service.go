// Package engagement owns the per-session state machine: it accumulates the
// transcript, classifies scam attempts, harvests intelligence, picks stalling
// replies and fires the one-shot case report.
package engagement

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nvx-labs/scamtrap/internal/analysis/intel"
	"github.com/nvx-labs/scamtrap/internal/analysis/scam"
	model "github.com/nvx-labs/scamtrap/internal/model/engagement"
)

var (
	ErrSessionIDRequired   = errors.New("sessionId is required")
	ErrMessageTextRequired = errors.New("message text is required")
	ErrSessionNotFound     = errors.New("session not found")
)

// Reporter delivers a case report to the external collection endpoint.
// Implementations are best-effort; the service logs and swallows failures.
type Reporter interface {
	Deliver(ctx context.Context, report model.CaseReport) error
}

// EventSink receives engagement events for live observation. May be nil.
type EventSink interface {
	Publish(event Event)
}

// Event describes one processed inbound message.
type Event struct {
	Type          string    `json:"type"` // "message" or "reported"
	SessionID     string    `json:"sessionId"`
	Sender        string    `json:"sender"`
	Text          string    `json:"text"`
	ScamDetected  bool      `json:"scamDetected"`
	AgentReply    string    `json:"agentReply,omitempty"`
	TotalMessages int       `json:"totalMessages"`
	At            time.Time `json:"at"`
}

// Config tunes the state machine thresholds and session lifetime.
type Config struct {
	ReportThreshold int           // message count that triggers the case report
	SessionTTL      time.Duration // idle time before a session is evicted
	CallbackTimeout time.Duration // budget for the outbound report call
}

// Service is the engagement controller plus its session store. All mutations
// of one session are serialized under that session's lock; different sessions
// proceed in parallel.
type Service struct {
	classifier *scam.Classifier
	extractor  *intel.Extractor
	reporter   Reporter
	sink       EventSink
	logger     *slog.Logger
	cfg        Config

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu   sync.Mutex
	data model.Session
}

// NewService wires the controller. reporter and sink may be nil, in which
// case reporting and event publishing become no-ops.
func NewService(classifier *scam.Classifier, extractor *intel.Extractor, reporter Reporter, sink EventSink, cfg Config, logger *slog.Logger) *Service {
	if cfg.ReportThreshold < 1 {
		cfg.ReportThreshold = 6
	}
	if cfg.CallbackTimeout <= 0 {
		cfg.CallbackTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		classifier: classifier,
		extractor:  extractor,
		reporter:   reporter,
		sink:       sink,
		logger:     logger,
		cfg:        cfg,
		sessions:   make(map[string]*session),
	}
}

// Request is one inbound scammer message plus optional replayed history.
type Request struct {
	SessionID string
	Message   model.Message
	History   []model.Message
}

// Result is the synchronous outcome returned to the caller.
type Result struct {
	ScamDetected    bool
	AgentReply      string // empty when the session is not flagged
	Replied         bool
	TotalMessages   int
	DurationSeconds int
	Intelligence    model.Intelligence
	AgentNotes      string
}

// Engage processes one inbound message through the full per-call order:
// append history, append the message, classify, merge intelligence, generate
// the reply when flagged, then evaluate the one-shot reporting trigger.
func (s *Service) Engage(_ context.Context, req Request) (Result, error) {
	if req.SessionID == "" {
		return Result{}, ErrSessionIDRequired
	}
	if req.Message.Text == "" {
		return Result{}, ErrMessageTextRequired
	}

	now := time.Now().UTC()
	sess := s.getOrCreate(req.SessionID, now)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.data.LastSeenAt = now
	for _, h := range req.History {
		s.appendMessage(&sess.data, h, now)
	}
	if req.Message.Sender == "" {
		req.Message.Sender = model.SenderScammer
	}
	s.appendMessage(&sess.data, req.Message, now)

	verdict := s.classifier.Classify(req.Message.Text)
	if verdict.Scam {
		sess.data.ScamDetected = true
		sess.data.Intel.AddKeywords(verdict.Keywords)
	}

	sess.data.Intel.Merge(s.extractor.Extract(req.Message.Text))

	var reply string
	if sess.data.ScamDetected {
		reply = nextReply(sess.data.Messages)
	}

	reported := s.maybeReport(&sess.data)

	result := Result{
		ScamDetected:    sess.data.ScamDetected,
		AgentReply:      reply,
		Replied:         reply != "",
		TotalMessages:   len(sess.data.Messages),
		DurationSeconds: int(now.Sub(sess.data.CreatedAt).Seconds()),
		Intelligence:    sess.data.Intel.Clone(),
		AgentNotes:      agentNotes(sess.data),
	}

	s.publish(Event{
		Type:          eventType(reported),
		SessionID:     sess.data.ID,
		Sender:        req.Message.Sender,
		Text:          req.Message.Text,
		ScamDetected:  result.ScamDetected,
		AgentReply:    reply,
		TotalMessages: result.TotalMessages,
		At:            now,
	})

	return result, nil
}

func eventType(reported bool) string {
	if reported {
		return "reported"
	}
	return "message"
}

func (s *Service) getOrCreate(id string, now time.Time) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[id]; ok {
		return sess
	}

	sess = &session{data: model.Session{
		ID:         id,
		CreatedAt:  now,
		LastSeenAt: now,
		Messages:   make([]model.Message, 0, 8),
		Intel:      model.NewIntelligence(),
	}}
	s.sessions[id] = sess
	s.logger.Info("session created", "session_id", id)
	return sess
}

func (s *Service) appendMessage(data *model.Session, msg model.Message, now time.Time) {
	msg.ID = uuid.NewString()
	msg.SessionID = data.ID
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}
	data.Messages = append(data.Messages, msg)
}

// maybeReport performs the atomic check-and-set of CallbackSent under the
// session lock, then hands the payload to the reporter off the request path.
func (s *Service) maybeReport(data *model.Session) bool {
	if !data.ScamDetected || data.CallbackSent || len(data.Messages) < s.cfg.ReportThreshold {
		return false
	}
	data.CallbackSent = true

	report := model.CaseReport{
		SessionID:              data.ID,
		ScamDetected:           true,
		TotalMessagesExchanged: len(data.Messages),
		ExtractedIntelligence:  data.Intel.Clone(),
		AgentNotes:             agentNotes(*data),
	}

	s.logger.Info("report threshold reached",
		"session_id", data.ID,
		"total_messages", report.TotalMessagesExchanged,
	)

	if s.reporter == nil {
		return true
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CallbackTimeout)
		defer cancel()
		if err := s.reporter.Deliver(ctx, report); err != nil {
			s.logger.Error("case report delivery failed",
				"session_id", report.SessionID,
				"error", err,
			)
		}
	}()
	return true
}

func (s *Service) publish(event Event) {
	if s.sink != nil {
		s.sink.Publish(event)
	}
}

// Snapshot returns a deep copy of one session.
func (s *Service) Snapshot(sessionID string) (model.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.data.Clone(), nil
}

// Sessions lists summaries of all live sessions.
func (s *Service) Sessions() []model.Summary {
	s.mu.RLock()
	all := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.RUnlock()

	out := make([]model.Summary, 0, len(all))
	for _, sess := range all {
		sess.mu.Lock()
		out = append(out, model.Summary{
			ID:            sess.data.ID,
			State:         sess.data.State(),
			CreatedAt:     sess.data.CreatedAt,
			LastSeenAt:    sess.data.LastSeenAt,
			TotalMessages: len(sess.data.Messages),
			ScamDetected:  sess.data.ScamDetected,
			Reported:      sess.data.CallbackSent,
			IntelCounts:   sess.data.Intel.Counts(),
		})
		sess.mu.Unlock()
	}
	return out
}

// StartJanitor evicts idle sessions until ctx is cancelled. No-op when the
// TTL is unset.
func (s *Service) StartJanitor(ctx context.Context) {
	if s.cfg.SessionTTL <= 0 {
		return
	}

	interval := s.cfg.SessionTTL / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evictIdle(time.Now().UTC()); n > 0 {
				s.logger.Info("evicted idle sessions", "count", n)
			}
		}
	}
}

func (s *Service) evictIdle(now time.Time) int {
	cutoff := now.Add(-s.cfg.SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.data.LastSeenAt.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
