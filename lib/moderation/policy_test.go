package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guardbot/tg-guard/lib/check"
)

func TestApplyActions(t *testing.T) {
	tbl := []struct {
		name       string
		detected   bool
		confidence float64
		ban        bool
		restrict   bool
		warn       bool
		del        bool
	}{
		{"clean message gets nothing", false, 0.95, false, false, false, false},
		{"high confidence bans", true, 0.95, true, false, false, true},
		{"exactly at ban boundary", true, 0.9, true, false, false, true},
		{"mid band restricts", true, 0.75, false, true, false, true},
		{"exactly at spam threshold", true, 0.6, false, true, false, true},
		{"below threshold warns", true, 0.45, false, false, true, true},
		{"zero confidence still deletes", true, 0, false, false, true, true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			v := check.Verdict{Confidence: tt.confidence}
			applyActions(&v, tt.detected, 0.6)
			assert.Equal(t, tt.ban, v.Ban, "ban")
			assert.Equal(t, tt.restrict, v.Restrict, "restrict")
			assert.Equal(t, tt.warn, v.Warn, "warn")
			assert.Equal(t, tt.del, v.Delete, "delete")
		})
	}
}
