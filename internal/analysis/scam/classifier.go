package scam

import "strings"

// DefaultVocabulary lists the phrases that mark a message as a likely scam
// attempt. Matching is a case-insensitive substring test, so multi-word
// entries like "account blocked" hit as a phrase.
var DefaultVocabulary = []string{
	"urgent", "verify", "account blocked", "kyc",
	"upi", "bank", "click", "link", "suspend",
	"otp", "immediately",
}

// Verdict is the outcome of classifying a single message.
type Verdict struct {
	Scam     bool
	Keywords []string
}

// Classifier flags messages that contain enough distinct vocabulary hits.
type Classifier struct {
	vocabulary []string
	threshold  int
}

// NewClassifier builds a classifier over the given vocabulary. A nil or empty
// vocabulary falls back to DefaultVocabulary; a threshold below 1 is clamped.
func NewClassifier(vocabulary []string, threshold int) *Classifier {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	if threshold < 1 {
		threshold = 1
	}

	normalized := make([]string, 0, len(vocabulary))
	for _, word := range vocabulary {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			normalized = append(normalized, word)
		}
	}

	return &Classifier{vocabulary: normalized, threshold: threshold}
}

// Classify returns the scam verdict for one message along with the distinct
// vocabulary keywords it matched. It never fails; empty text yields a
// negative verdict with no keywords.
func (c *Classifier) Classify(text string) Verdict {
	hits := c.Match(text)
	return Verdict{Scam: len(hits) >= c.threshold, Keywords: hits}
}

// Match returns the distinct vocabulary keywords present in text.
func (c *Classifier) Match(text string) []string {
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return nil
	}

	var hits []string
	for _, word := range c.vocabulary {
		if strings.Contains(normalized, word) {
			hits = append(hits, word)
		}
	}
	return hits
}
