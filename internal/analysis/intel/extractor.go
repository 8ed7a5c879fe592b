// Package intel turns raw scammer text into structured findings: payment
// identifiers, phishing links, phone numbers and suspicious keywords.
package intel

import (
	"fmt"
	"regexp"

	"github.com/nvx-labs/scamtrap/internal/analysis/scam"
	"github.com/nvx-labs/scamtrap/internal/model/engagement"
)

// DefaultPhonePattern matches Indian mobile numbers in international form.
// Deliberately narrow: numbers in other formats are not detected. Extend via
// configuration, not by editing this literal.
const DefaultPhonePattern = `\+91\d{10}`

var (
	bankAccountRe = regexp.MustCompile(`\b\d{9,18}\b`)
	upiHandleRe   = regexp.MustCompile(`[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}`)
	linkRe        = regexp.MustCompile(`https?://\S+`)
)

// Extractor is a stateless text scanner. Safe for concurrent use.
type Extractor struct {
	phone      *regexp.Regexp
	classifier *scam.Classifier
}

// NewExtractor compiles the configured phone pattern and reuses the scam
// vocabulary for the keyword category. An empty pattern falls back to
// DefaultPhonePattern.
func NewExtractor(phonePattern string, classifier *scam.Classifier) (*Extractor, error) {
	if phonePattern == "" {
		phonePattern = DefaultPhonePattern
	}
	phone, err := regexp.Compile(phonePattern)
	if err != nil {
		return nil, fmt.Errorf("compile phone pattern %q: %w", phonePattern, err)
	}
	return &Extractor{phone: phone, classifier: classifier}, nil
}

// Extract scans text for all five intelligence categories. It is total over
// any input: text with no matches yields an empty bundle, never an error.
func (e *Extractor) Extract(text string) engagement.Intelligence {
	found := engagement.NewIntelligence()
	if text == "" {
		return found
	}

	found.BankAccounts = append(found.BankAccounts, bankAccountRe.FindAllString(text, -1)...)
	found.UPIIDs = append(found.UPIIDs, upiHandleRe.FindAllString(text, -1)...)
	found.PhishingLinks = append(found.PhishingLinks, linkRe.FindAllString(text, -1)...)
	found.PhoneNumbers = append(found.PhoneNumbers, e.phone.FindAllString(text, -1)...)
	found.SuspiciousKeywords = append(found.SuspiciousKeywords, e.classifier.Match(text)...)
	return found
}
