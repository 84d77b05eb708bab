package moderation

import "github.com/guardbot/tg-guard/lib/check"

// action bands, confidence at or above banConfidence warrants an immediate ban
const banConfidence = 0.9

// applyActions maps the aggregated decision to recommended moderation actions.
// Ban and restrict are mutually exclusive, any detected spam implies delete.
// Low-confidence detections below the spam threshold get a warning, still
// with deletion, so borderline messages are removed without punishing the user.
func applyActions(v *check.Verdict, detected bool, threshold float64) {
	if !detected {
		return
	}
	v.Delete = true
	switch {
	case v.Confidence >= banConfidence:
		v.Ban = true
	case v.Confidence >= threshold:
		v.Restrict = true
	default:
		v.Warn = true
	}
}
