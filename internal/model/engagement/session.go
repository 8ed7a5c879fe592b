package engagement

import "time"

// State describes where a session sits in the engagement lifecycle.
type State string

const (
	StateEngagedUnflagged State = "engaged_unflagged"
	StateEngagedFlagged   State = "engaged_flagged"
	StateReported         State = "reported"
)

// Session captures one ongoing exchange with a single correspondent.
// ScamDetected and CallbackSent only ever go from false to true.
type Session struct {
	ID           string       `json:"id"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastSeenAt   time.Time    `json:"lastSeenAt"`
	Messages     []Message    `json:"messages"`
	ScamDetected bool         `json:"scamDetected"`
	CallbackSent bool         `json:"callbackSent"`
	Intel        Intelligence `json:"intelligence"`
}

// State derives the lifecycle state from the monotonic flags.
func (s Session) State() State {
	switch {
	case s.CallbackSent:
		return StateReported
	case s.ScamDetected:
		return StateEngagedFlagged
	default:
		return StateEngagedUnflagged
	}
}

// Clone returns a deep copy safe to hand out after the session lock is released.
func (s Session) Clone() Session {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	out.Intel = s.Intel.Clone()
	return out
}

// Summary is the operator-facing listing view of a session.
type Summary struct {
	ID            string         `json:"id"`
	State         State          `json:"state"`
	CreatedAt     time.Time      `json:"createdAt"`
	LastSeenAt    time.Time      `json:"lastSeenAt"`
	TotalMessages int            `json:"totalMessages"`
	ScamDetected  bool           `json:"scamDetected"`
	Reported      bool           `json:"reported"`
	IntelCounts   map[string]int `json:"intelCounts"`
}

// CaseReport is the one-shot payload delivered to the external collection endpoint.
type CaseReport struct {
	SessionID              string       `json:"sessionId"`
	ScamDetected           bool         `json:"scamDetected"`
	TotalMessagesExchanged int          `json:"totalMessagesExchanged"`
	ExtractedIntelligence  Intelligence `json:"extractedIntelligence"`
	AgentNotes             string       `json:"agentNotes"`
}
