package engagement

import "time"

// Sender roles as they appear on the wire.
const (
	SenderScammer = "scammer"
	SenderAgent   = "agent"
)

// Message is a single conversational turn. Immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
