package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ScoreHeuristic(t *testing.T) {
	e, err := NewEngine(Config{})
	require.NoError(t, err)

	tbl := []struct {
		name       string
		text       string
		spam       bool
		confidence float64
		details    string
	}{
		{
			name:       "clean message",
			text:       "a perfectly ordinary message about weather",
			spam:       false,
			confidence: 0,
			details:    "no violations detected",
		},
		{
			name:       "short message",
			text:       "hi",
			spam:       false,
			confidence: 0.1,
			details:    "message too short",
		},
		{
			name:       "links only",
			text:       "http://spam.ru",
			spam:       false,
			confidence: 0.5,
			details:    "links only message",
		},
		{
			name:       "shouting",
			text:       "HELLO EVERYONE THIS IS GREAT",
			spam:       false,
			confidence: 0.3,
			details:    "too many caps (0.86)",
		},
		{
			name:       "too many emojis",
			text:       "nice 🤑 day 🤑 today 🤑 fine 🤑",
			spam:       false,
			confidence: 0.2,
			details:    "too many emojis (4)",
		},
		{
			name:       "links and exclamations hit the threshold",
			text:       "http://a.com http://b.com http://c.com ok! ok! ok! ok!",
			spam:       true,
			confidence: 0.6,
			details:    "too many links (3); too many exclamations (4)",
		},
		{
			name:       "spam patterns",
			text:       "earn money fast today",
			spam:       false,
			confidence: 0.15,
			details:    "spam patterns detected (0.15)",
		},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			resp := e.scoreHeuristic(tt.text, e.SpamThreshold)
			assert.Equal(t, "heuristic", resp.Name)
			assert.Equal(t, tt.spam, resp.Spam)
			assert.InDelta(t, tt.confidence, resp.Confidence, 0.0001)
			assert.Equal(t, tt.details, resp.Details)
		})
	}
}

func TestEngine_ScoreHeuristicCapped(t *testing.T) {
	e, err := NewEngine(Config{})
	require.NoError(t, err)

	// piles up emoji, links, mentions, repeated chars, patterns and exclamations
	text := "EARN MONEY NOW!!!! 🤑 🤑 🤑 🤑 http://a.com http://b.com http://c.com @u1 @u2 @u3 @u4"
	resp := e.scoreHeuristic(text, e.SpamThreshold)
	assert.True(t, resp.Spam)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.Contains(t, resp.Details, "too many emojis (4)")
	assert.Contains(t, resp.Details, "too many links (3)")
	assert.Contains(t, resp.Details, "too many mentions (4)")
	assert.Contains(t, resp.Details, `repeated characters ("!" x4)`)
	assert.Contains(t, resp.Details, "too many exclamations (4)")
}

func TestEngine_ScoreHeuristicCustomLimits(t *testing.T) {
	e, err := NewEngine(Config{MaxEmoji: 1, MinMsgLen: 5})
	require.NoError(t, err)

	resp := e.scoreHeuristic("fine day 🤑 today 🤑", e.SpamThreshold)
	assert.False(t, resp.Spam)
	assert.InDelta(t, 0.2, resp.Confidence, 0.0001)
	assert.Equal(t, "too many emojis (2)", resp.Details)

	resp = e.scoreHeuristic("okay", e.SpamThreshold)
	assert.InDelta(t, 0.1, resp.Confidence, 0.0001)
	assert.Equal(t, "message too short", resp.Details)
}

func TestEngine_ScoreHeuristicThreshold(t *testing.T) {
	e, err := NewEngine(Config{})
	require.NoError(t, err)

	// 0.5 confidence, below the default threshold but flagged at a lowered one
	resp := e.scoreHeuristic("http://spam.ru", e.SpamThreshold)
	assert.False(t, resp.Spam)
	assert.InDelta(t, 0.5, resp.Confidence, 0.0001)

	resp = e.scoreHeuristic("http://spam.ru", 0.5)
	assert.True(t, resp.Spam)
	assert.InDelta(t, 0.5, resp.Confidence, 0.0001)
}
