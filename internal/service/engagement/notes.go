package engagement

import (
	"strings"

	model "github.com/nvx-labs/scamtrap/internal/model/engagement"
)

// agentNotes summarizes the tactics observed so far, derived only from the
// accumulated intelligence so the same session state always yields the same
// note.
func agentNotes(data model.Session) string {
	if !data.ScamDetected {
		return "No scam indicators observed yet"
	}

	var tactics []string
	if hasAny(data.Intel.SuspiciousKeywords, "urgent", "immediately", "verify") {
		tactics = append(tactics, "urgency pressure")
	}
	if len(data.Intel.UPIIDs) > 0 || len(data.Intel.BankAccounts) > 0 {
		tactics = append(tactics, "payment redirection")
	}
	if len(data.Intel.PhishingLinks) > 0 {
		tactics = append(tactics, "phishing link delivery")
	}
	if hasAny(data.Intel.SuspiciousKeywords, "kyc", "otp", "account blocked", "suspend") {
		tactics = append(tactics, "account takeover pretext")
	}

	if len(tactics) == 0 {
		return "Scam indicators observed; tactics not yet categorized"
	}
	return "Scammer tactics observed: " + strings.Join(tactics, ", ")
}

func hasAny(keywords []string, wanted ...string) bool {
	for _, k := range keywords {
		for _, w := range wanted {
			if strings.EqualFold(k, w) {
				return true
			}
		}
	}
	return false
}
