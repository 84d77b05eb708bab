package moderation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// emojiThreshold is a policy constant: any rune above it counts as an emoji.
// Intentionally an approximation, not a full emoji-grapheme parser.
const emojiThreshold = 0x1F600

var (
	urlRe     = regexp.MustCompile(`https?://[^\s]+`)
	mentionRe = regexp.MustCompile(`@\w+`)
	hashtagRe = regexp.MustCompile(`#\w+`)
)

// features is a fixed record of lexical counts and ratios of a message text.
// Extraction is pure and deterministic, empty text yields all-zero features.
type features struct {
	length           int // rune count
	wordCount        int
	emojiCount       int
	capsRatio        float64
	digitRatio       float64
	urlCount         int
	mentionCount     int
	hashtagCount     int
	exclamationCount int
	repeatedRuns     []string // human-readable descriptions of 3+ repeated runs
	patternMatches   int
	phraseMatches    int
}

// extractFeatures computes lexical features of a message text against the
// given spam patterns and phrases. No I/O, no error conditions.
func extractFeatures(text string, patterns []*regexp.Regexp, phrases []string) features {
	if text == "" {
		return features{}
	}

	runes := []rune(text)
	res := features{
		length:           len(runes),
		wordCount:        len(strings.Fields(text)),
		urlCount:         len(urlRe.FindAllString(text, -1)),
		mentionCount:     len(mentionRe.FindAllString(text, -1)),
		hashtagCount:     len(hashtagRe.FindAllString(text, -1)),
		exclamationCount: strings.Count(text, "!"),
	}

	caps, digits := 0, 0
	for _, r := range runes {
		if r > emojiThreshold {
			res.emojiCount++
		}
		if unicode.IsUpper(r) {
			caps++
		}
		if unicode.IsDigit(r) {
			digits++
		}
	}
	res.capsRatio = float64(caps) / float64(res.length)
	res.digitRatio = float64(digits) / float64(res.length)
	res.repeatedRuns = repeatedRuns(runes)

	lower := strings.ToLower(text)
	for _, p := range patterns {
		res.patternMatches += len(p.FindAllString(lower, -1))
	}
	for _, ph := range phrases {
		if strings.Contains(lower, ph) {
			res.phraseMatches++
		}
	}
	return res
}

// repeatedRuns finds runs of 3+ identical consecutive characters and returns
// a description per run, e.g. "'!' x5"
func repeatedRuns(runes []rune) []string {
	var res []string
	i := 0
	for i < len(runes) {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= 3 {
			res = append(res, fmt.Sprintf("%q x%d", string(runes[i]), j-i))
		}
		i = j
	}
	return res
}
