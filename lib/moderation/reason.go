package moderation

import (
	"strings"

	"github.com/guardbot/tg-guard/lib/check"
)

// keyword to reason mapping, evaluated in order, first match wins
var reasonKeywords = []struct {
	keyword string
	reason  check.Reason
}{
	{"emoji", check.ReasonTooManyEmoji},
	{"caps", check.ReasonTooManyLinks},
	{"too many links", check.ReasonTooManyLinks},
	{"mentions", check.ReasonTooManyMentions},
	{"links only", check.ReasonLinksOnly},
	{"repeated", check.ReasonAbnormalSpacing},
	{"classifier", check.ReasonClassifier},
	{"probability", check.ReasonClassifier},
	{"llm", check.ReasonLLMDetected},
	{"openai", check.ReasonLLMDetected},
	{"blocklist", check.ReasonBlockedUser},
	{"blocked", check.ReasonBlockedUser},
}

// deriveReason maps a detector's details string to the primary detection
// reason with first-match keyword lookup. Unmatched details fall back to the
// generic classifier reason.
func deriveReason(details string) check.Reason {
	lower := strings.ToLower(details)
	for _, kw := range reasonKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.reason
		}
	}
	return check.ReasonClassifier
}
