package moderation

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedBayes(t *testing.T, minSpamProbability float64) *BayesClassifier {
	t.Helper()
	b := NewBayesClassifier(minSpamProbability)
	spam := strings.NewReader("win free money now, crypto investment guaranteed\n" +
		"free bitcoin, join crypto trading today\n" +
		"earn money from home, guaranteed income\n")
	ham := strings.NewReader("what time is the meeting tomorrow\n" +
		"thanks for the help with the project\n" +
		"does anyone know a good pizza place nearby\n")
	lr, err := b.LoadSamples(nil, []io.Reader{spam}, []io.Reader{ham})
	require.NoError(t, err)
	require.Equal(t, 3, lr.SpamSamples)
	require.Equal(t, 3, lr.HamSamples)
	return b
}

func TestBayesClassifier_NotTrained(t *testing.T) {
	b := NewBayesClassifier(0)
	_, _, _, err := b.Classify(context.Background(), "any text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not trained")
}

func TestBayesClassifier_Classify(t *testing.T) {
	b := trainedBayes(t, 0)

	t.Run("spam text", func(t *testing.T) {
		spam, confidence, details, err := b.Classify(context.Background(), "free crypto money guaranteed")
		require.NoError(t, err)
		assert.True(t, spam)
		assert.Greater(t, confidence, 0.5)
		assert.Contains(t, details, "probability of spam")
	})

	t.Run("ham text", func(t *testing.T) {
		spam, _, details, err := b.Classify(context.Background(), "thanks, the meeting about the project went well")
		require.NoError(t, err)
		assert.False(t, spam)
		assert.Contains(t, details, "probability of ham")
	})
}

func TestBayesClassifier_MinProbabilityCutoff(t *testing.T) {
	// an impossible cutoff suppresses spam classification but keeps the details
	b := trainedBayes(t, 101)

	spam, _, details, err := b.Classify(context.Background(), "free crypto money guaranteed")
	require.NoError(t, err)
	assert.False(t, spam, "spam probability below the cutoff")
	assert.Contains(t, details, "probability of spam")
}

func TestBayesClassifier_ExcludedTokens(t *testing.T) {
	b := NewBayesClassifier(0)
	excl := strings.NewReader("the\nand\nfor\n")
	spam := strings.NewReader("free money for you\n")
	ham := strings.NewReader("see you at the office\n")
	lr, err := b.LoadSamples(excl, []io.Reader{spam}, []io.Reader{ham})
	require.NoError(t, err)
	assert.Equal(t, 3, lr.ExcludedTokens)
	assert.Equal(t, 1, lr.SpamSamples)
	assert.Equal(t, 1, lr.HamSamples)

	spamRes, _, _, err := b.Classify(context.Background(), "free money")
	require.NoError(t, err)
	assert.True(t, spamRes)
}

func TestBayesClassifier_Reload(t *testing.T) {
	b := trainedBayes(t, 0)

	// retrain with flipped samples, the old model must be fully replaced
	spam := strings.NewReader("what time is the meeting tomorrow\n")
	ham := strings.NewReader("win free money now, crypto investment guaranteed\n")
	_, err := b.LoadSamples(nil, []io.Reader{spam}, []io.Reader{ham})
	require.NoError(t, err)

	spamRes, _, details, err := b.Classify(context.Background(), "free crypto money guaranteed")
	require.NoError(t, err)
	assert.False(t, spamRes)
	assert.Contains(t, details, "probability of ham")
}

func TestBayesClassifier_Tokenize(t *testing.T) {
	b := NewBayesClassifier(0)
	b.excludedTokens = map[string]struct{}{"and": {}}

	tbl := []struct {
		name string
		in   string
		out  map[string]int
	}{
		{"short tokens dropped", "go is ok but here longer words", map[string]int{"but": 1, "here": 1, "longer": 1, "words": 1}},
		{"punctuation trimmed", "hello, world! (test)", map[string]int{"hello": 1, "world": 1, "test": 1}},
		{"case folded and counted", "Spam spam SPAM", map[string]int{"spam": 3}},
		{"excluded token dropped", "this and that", map[string]int{"this": 1, "that": 1}},
		{"emoji stripped", "win🤑🤑 now", map[string]int{"win": 1, "now": 1}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, b.tokenize(tt.in))
		})
	}
}
