package engagement

import (
	"strings"

	model "github.com/nvx-labs/scamtrap/internal/model/engagement"
)

// The stalling script. Most specific condition wins; the fallback always
// applies, so a flagged session always gets a non-empty reply.
const (
	replySlowDown  = "You already said it is urgent. I'm confused and worried. Can you explain slowly?"
	replyLinkDoubt = "I don't usually click links. What exactly will happen if I open it?"
	replyWhatFirst = "This is a lot of information. What should I do first?"
	replyStepwise  = "I'm not very technical. Please guide me step by step."
)

// lengthThreshold is the message count past which the conversation is treated
// as already carrying plenty of instructions.
const lengthThreshold = 4

// nextReply picks the agent's next stalling utterance from the transcript.
func nextReply(messages []model.Message) string {
	recent := recentScammerTexts(messages, 2)

	pressure := 0
	for _, text := range recent {
		if strings.Contains(text, "urgent") || strings.Contains(text, "verify") {
			pressure++
		}
	}
	if pressure >= 2 {
		return replySlowDown
	}

	for _, text := range recent {
		if strings.Contains(text, "http") {
			return replyLinkDoubt
		}
	}

	if len(messages) > lengthThreshold {
		return replyWhatFirst
	}

	return replyStepwise
}

// recentScammerTexts returns the lowercased text of the last n scammer turns.
func recentScammerTexts(messages []model.Message, n int) []string {
	var texts []string
	for _, m := range messages {
		if m.Sender == model.SenderScammer {
			texts = append(texts, strings.ToLower(m.Text))
		}
	}
	if len(texts) > n {
		texts = texts[len(texts)-n:]
	}
	return texts
}
