package engagement

import "strings"

// Intelligence aggregates the artifacts harvested from scammer messages.
// Every list behaves as a set: Merge never appends a value the bundle
// already holds, and keyword comparison is case-insensitive.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// NewIntelligence returns an empty bundle with non-nil lists so the JSON
// encoding is always [] rather than null.
func NewIntelligence() Intelligence {
	return Intelligence{
		BankAccounts:       []string{},
		UPIIDs:             []string{},
		PhishingLinks:      []string{},
		PhoneNumbers:       []string{},
		SuspiciousKeywords: []string{},
	}
}

// Merge folds newly extracted findings into the bundle, deduplicating
// against what the bundle already holds.
func (i *Intelligence) Merge(found Intelligence) {
	i.BankAccounts = mergeUnique(i.BankAccounts, found.BankAccounts, false)
	i.UPIIDs = mergeUnique(i.UPIIDs, found.UPIIDs, false)
	i.PhishingLinks = mergeUnique(i.PhishingLinks, found.PhishingLinks, false)
	i.PhoneNumbers = mergeUnique(i.PhoneNumbers, found.PhoneNumbers, false)
	i.SuspiciousKeywords = mergeUnique(i.SuspiciousKeywords, found.SuspiciousKeywords, true)
}

// AddKeywords merges classifier keyword hits, case-insensitively.
func (i *Intelligence) AddKeywords(keywords []string) {
	i.SuspiciousKeywords = mergeUnique(i.SuspiciousKeywords, keywords, true)
}

// Empty reports whether the bundle holds no findings at all.
func (i Intelligence) Empty() bool {
	return len(i.BankAccounts) == 0 && len(i.UPIIDs) == 0 && len(i.PhishingLinks) == 0 &&
		len(i.PhoneNumbers) == 0 && len(i.SuspiciousKeywords) == 0
}

// Counts summarizes list sizes for the operator listing view.
func (i Intelligence) Counts() map[string]int {
	return map[string]int{
		"bankAccounts":       len(i.BankAccounts),
		"upiIds":             len(i.UPIIDs),
		"phishingLinks":      len(i.PhishingLinks),
		"phoneNumbers":       len(i.PhoneNumbers),
		"suspiciousKeywords": len(i.SuspiciousKeywords),
	}
}

// Clone returns an independent copy of the bundle.
func (i Intelligence) Clone() Intelligence {
	out := NewIntelligence()
	out.Merge(i)
	return out
}

func mergeUnique(existing, incoming []string, fold bool) []string {
	if len(incoming) == 0 {
		if existing == nil {
			return []string{}
		}
		return existing
	}

	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, v := range existing {
		seen[normalize(v, fold)] = struct{}{}
	}

	out := existing
	if out == nil {
		out = []string{}
	}
	for _, v := range incoming {
		key := normalize(v, fold)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func normalize(v string, fold bool) string {
	if fold {
		return strings.ToLower(v)
	}
	return v
}
