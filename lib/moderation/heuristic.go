package moderation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/guardbot/tg-guard/lib/check"
)

// default spam patterns applied by the heuristic scorer, reloadable via LoadPatterns
var defaultSpamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:earn|make|money|dollars?|cash|income|profit|revenue)\b`),
	regexp.MustCompile(`\b(?:work from home|work at home|home based|online job)\b`),
	regexp.MustCompile(`\b(?:click here|visit|buy now|order now|limited time)\b`),
	regexp.MustCompile(`\b(?:free|freebie|no cost|no charge|100% free)\b`),
	regexp.MustCompile(`\b(?:guarantee|guaranteed|promise|assure|ensure)\b`),
	regexp.MustCompile(`\b(?:act now|hurry|urgent|immediate|instant)\b`),
	regexp.MustCompile(`\b(?:investment|invest|trading|forex|bitcoin|crypto)\b`),
	regexp.MustCompile(`\b(?:weight loss|diet|fitness|health|supplement)\b`),
	regexp.MustCompile(`\b(?:loan|credit|debt|mortgage|refinance)\b`),
	regexp.MustCompile(`\b(?:insurance|coverage|policy|quote|premium)\b`),
	regexp.MustCompile(`купить|заказать|дешево|скидка|акция|предложение`),
	regexp.MustCompile(`заработать|деньги|доход|прибыль|бизнес`),
}

// default spam phrases, matched as case-insensitive substrings, reloadable via LoadPhrases
var defaultSpamPhrases = []string{
	"в личку", "писать в лс", "пишите в лс", "в личные сообщения",
	"личных сообщениях", "заработок удалённо", "заработок в интернете",
	"заработок в сети", "для удалённого заработка", "детали в лс",
	"ищу партнеров", "написать в лс", "подробности в личку",
	"заработать деньги", "быстрый заработок", "заработок без вложений",
	"работа на дому", "подработка", "дополнительный доход",
	"инвестиции", "криптовалюта", "бинарные опционы", "форекс",
}

// scoreHeuristic combines lexical features of the text into a local spam
// confidence using fixed increments. Pure, never fails, no I/O. The threshold
// is request-scoped, a per-chat override changes what the heuristic flags.
func (e *Engine) scoreHeuristic(text string, threshold float64) check.Response {
	st := time.Now()

	e.lock.RLock()
	patterns, phrases := e.spamPatterns, e.spamPhrases
	e.lock.RUnlock()

	f := extractFeatures(text, patterns, phrases)
	textLen := len([]rune(strings.TrimSpace(text)))

	violations := []string{}
	confidence := 0.0

	if f.emojiCount > e.MaxEmoji {
		violations = append(violations, fmt.Sprintf("too many emojis (%d)", f.emojiCount))
		confidence += 0.2
	}

	if f.capsRatio > e.MaxCapsRatio {
		violations = append(violations, fmt.Sprintf("too many caps (%.2f)", f.capsRatio))
		confidence += 0.3
	}

	if f.urlCount > e.MaxLinks {
		violations = append(violations, fmt.Sprintf("too many links (%d)", f.urlCount))
		confidence += 0.4
	}

	if f.mentionCount > e.MaxMentions {
		violations = append(violations, fmt.Sprintf("too many mentions (%d)", f.mentionCount))
		confidence += 0.2
	}

	if textLen < e.MinMsgLen {
		violations = append(violations, "message too short")
		confidence += 0.1
	}

	if f.urlCount > 0 && textLen < 20 {
		violations = append(violations, "links only message")
		confidence += 0.5
	}

	if len(f.repeatedRuns) > 0 {
		violations = append(violations, fmt.Sprintf("repeated characters (%s)", strings.Join(f.repeatedRuns, ", ")))
		confidence += 0.3
	}

	if f.wordCount > 0 {
		ratio := float64(f.patternMatches+f.phraseMatches) / float64(f.wordCount)
		if ratio > 1.0 {
			ratio = 1.0
		}
		if ratio > 0 {
			score := ratio * 0.3
			violations = append(violations, fmt.Sprintf("spam patterns detected (%.2f)", score))
			confidence += score
		}
	}

	if f.exclamationCount > 3 {
		violations = append(violations, fmt.Sprintf("too many exclamations (%d)", f.exclamationCount))
		confidence += 0.2
	}

	if f.digitRatio > 0.3 {
		violations = append(violations, fmt.Sprintf("too many digits (%.2f)", f.digitRatio))
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}

	details := "no violations detected"
	if len(violations) > 0 {
		details = strings.Join(violations, "; ")
	}

	return check.Response{
		Name:       "heuristic",
		Spam:       confidence >= threshold,
		Confidence: confidence,
		Details:    details,
		Elapsed:    time.Since(st),
	}
}
