// Package moderation implements an ensemble spam detection engine for chat
// messages. It combines a local heuristic scorer with optional external
// detectors (blocklist lookup, russian statistical classifier, local fallback
// classifier and an LLM moderation checker), aggregates their verdicts into a
// single decision and maps it to a recommended moderation action with a daily
// escalation policy for repeat offenders.
package moderation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/guardbot/tg-guard/lib/check"
)

//go:generate moq --out mocks/blocklist_checker.go --pkg mocks --skip-ensure --with-resets . BlocklistChecker
//go:generate moq --out mocks/stat_classifier.go --pkg mocks --skip-ensure --with-resets . StatClassifier
//go:generate moq --out mocks/fallback_classifier.go --pkg mocks --skip-ensure --with-resets . FallbackClassifier
//go:generate moq --out mocks/llm_checker.go --pkg mocks --skip-ensure --with-resets . LLMChecker
//go:generate moq --out mocks/whitelist_store.go --pkg mocks --skip-ensure --with-resets . WhitelistStore
//go:generate moq --out mocks/escalation_store.go --pkg mocks --skip-ensure --with-resets . EscalationStore
//go:generate moq --out mocks/result_sink.go --pkg mocks --skip-ensure --with-resets . ResultSink

// confidence reported for a positive blocklist hit
const blocklistConfidence = 0.95

// in confirm mode the llm is consulted when spam was detected below this confidence
const llmConfirmBelow = 0.7

// Engine is the ensemble spam detection engine, thread-safe.
// Detectors run sequentially, cheap local checks before expensive external
// calls, with early-exit and veto policies. The engine holds no mutable state
// across requests except the reloadable phrase/pattern lists and the recent
// clean-message history.
type Engine struct {
	Config

	blocklist  BlocklistChecker
	stat       StatClassifier
	fallback   FallbackClassifier
	llm        LLMChecker
	whitelist  WhitelistStore
	escalation EscalationStore
	sink       ResultSink

	hamHistory   *check.LastRequests
	spamPatterns []*regexp.Regexp
	spamPhrases  []string

	lock sync.RWMutex
}

// Config is a set of parameters for the Engine. Zero values are replaced with
// defaults by NewEngine, invalid values are rejected there and never clamped
// during detection.
type Config struct {
	SpamThreshold    float64 // confidence to classify a message as spam, 0.0 - 1.0
	MaxEmoji         int     // max number of emojis before the heuristic fires
	MaxCapsRatio     float64 // max ratio of uppercase characters, 0.0 - 1.0
	MaxLinks         int     // max number of links
	MaxMentions      int     // max number of mentions
	MinMsgLen        int     // messages shorter than this are penalized
	RussianThreshold float64 // min cyrillic ratio to route to the russian classifier, 0.0 - 1.0
	RuSpamMinLen     int     // min text length for the russian classifier
	FallbackMinLen   int     // min text length for the local fallback classifier
	LLMMinLen        int     // min text length for the llm checker
	MaxDailySpam     int     // daily spam events forcing a permanent ban

	// LLMVeto selects the llm consultation mode. When true the llm runs only if
	// spam was already detected and a clean llm verdict overrides the accumulated
	// decision back to clean, erasing confidence and reason. This is an
	// authoritative override by design, even over a blocklist hit. When false
	// (confirm mode, default) the llm runs when spam was not detected or detected
	// with low confidence, and can only add to the decision.
	LLMVeto bool

	// SkipDetected skips the statistical and fallback classifiers when an
	// earlier detector already flagged the message
	SkipDetected bool

	HistorySize    int // recent clean messages kept in memory for llm context
	LLMHistorySize int // number of recent messages passed to the llm, 0 disables history

	BlocklistTimeout time.Duration // timeout for the blocklist lookup
	RuSpamTimeout    time.Duration // timeout for the russian classifier call
	FallbackTimeout  time.Duration // timeout for the fallback classifier call
	LLMTimeout       time.Duration // timeout for the llm call
}

// BlocklistChecker is an external lookup of known-bad users.
type BlocklistChecker interface {
	Check(ctx context.Context, userID int64) (listed bool, err error)
}

// StatClassifier is an external statistical spam model for russian texts.
type StatClassifier interface {
	Classify(ctx context.Context, text string) (spam bool, confidence float64, err error)
}

// FallbackClassifier is a local ML fallback spam classifier.
type FallbackClassifier interface {
	Classify(ctx context.Context, text string) (spam bool, confidence float64, details string, err error)
}

// LLMChecker is an LLM-based moderation detector.
type LLMChecker interface {
	Check(ctx context.Context, text string, uc check.UserContext, history []check.Request) (spam bool, confidence float64, details string, err error)
}

// WhitelistStore answers if a user is pre-approved for a chat or globally.
type WhitelistStore interface {
	IsApproved(ctx context.Context, userID, chatID int64) bool
}

// EscalationStore keeps per-user rolling daily spam counters.
type EscalationStore interface {
	IncrementDailyCount(ctx context.Context, userID int64) (int, error)
	ResetDailyCount(ctx context.Context, userID int64) error
}

// ResultSink persists detection outcomes, fire-and-forget for the engine.
type ResultSink interface {
	Persist(ctx context.Context, req check.Request, v check.Verdict) error
}

// NewEngine makes a new Engine with the given config. Missing parameters are
// set to defaults, invalid ones are reported all at once.
func NewEngine(p Config) (*Engine, error) {
	if p.SpamThreshold == 0 {
		p.SpamThreshold = 0.6
	}
	if p.MaxEmoji == 0 {
		p.MaxEmoji = 3
	}
	if p.MaxCapsRatio == 0 {
		p.MaxCapsRatio = 0.7
	}
	if p.MaxLinks == 0 {
		p.MaxLinks = 2
	}
	if p.MaxMentions == 0 {
		p.MaxMentions = 3
	}
	if p.MinMsgLen == 0 {
		p.MinMsgLen = 10
	}
	if p.RussianThreshold == 0 {
		p.RussianThreshold = 0.3
	}
	if p.RuSpamMinLen == 0 {
		p.RuSpamMinLen = 10
	}
	if p.FallbackMinLen == 0 {
		p.FallbackMinLen = 50
	}
	if p.LLMMinLen == 0 {
		p.LLMMinLen = 10
	}
	if p.MaxDailySpam == 0 {
		p.MaxDailySpam = 3
	}
	if p.HistorySize == 0 {
		p.HistorySize = 100
	}
	if p.BlocklistTimeout == 0 {
		p.BlocklistTimeout = 2 * time.Second
	}
	if p.RuSpamTimeout == 0 {
		p.RuSpamTimeout = 5 * time.Second
	}
	if p.FallbackTimeout == 0 {
		p.FallbackTimeout = 5 * time.Second
	}
	if p.LLMTimeout == 0 {
		p.LLMTimeout = 10 * time.Second
	}

	errs := new(multierror.Error)
	if p.SpamThreshold < 0 || p.SpamThreshold > 1 {
		errs = multierror.Append(errs, fmt.Errorf("spam threshold %.2f outside [0, 1]", p.SpamThreshold))
	}
	if p.MaxCapsRatio < 0 || p.MaxCapsRatio > 1 {
		errs = multierror.Append(errs, fmt.Errorf("caps ratio %.2f outside [0, 1]", p.MaxCapsRatio))
	}
	if p.RussianThreshold < 0 || p.RussianThreshold > 1 {
		errs = multierror.Append(errs, fmt.Errorf("russian threshold %.2f outside [0, 1]", p.RussianThreshold))
	}
	if p.MaxDailySpam < 0 {
		errs = multierror.Append(errs, fmt.Errorf("max daily spam %d is negative", p.MaxDailySpam))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return &Engine{
		Config:       p,
		hamHistory:   check.NewLastRequests(p.HistorySize),
		spamPatterns: defaultSpamPatterns,
		spamPhrases:  defaultSpamPhrases,
	}, nil
}

// WithBlocklist sets an external blocklist checker.
func (e *Engine) WithBlocklist(b BlocklistChecker) { e.blocklist = b }

// WithStatClassifier sets an external statistical classifier for russian texts.
func (e *Engine) WithStatClassifier(s StatClassifier) { e.stat = s }

// WithFallbackClassifier sets a local fallback classifier.
func (e *Engine) WithFallbackClassifier(f FallbackClassifier) { e.fallback = f }

// WithLLM sets an llm moderation checker.
func (e *Engine) WithLLM(l LLMChecker) { e.llm = l }

// WithWhitelist sets a store of pre-approved users.
func (e *Engine) WithWhitelist(w WhitelistStore) { e.whitelist = w }

// WithEscalation sets a store of per-user daily spam counters.
func (e *Engine) WithEscalation(s EscalationStore) { e.escalation = s }

// WithSink sets a sink persisting detection outcomes.
func (e *Engine) WithSink(s ResultSink) { e.sink = s }

// Detect checks the message and returns the final verdict with recommended
// actions. It never fails: detector errors are folded into the corresponding
// response and detection continues with the remaining detectors. A message
// experiencing every detector failure is treated as clean, fail-open.
func (e *Engine) Detect(ctx context.Context, req check.Request, uc check.UserContext, chat check.ChatConfig) check.Verdict {
	start := time.Now()
	threshold := e.effectiveThreshold(chat)

	// pre-approved users are never checked, but the clean result is still persisted
	if e.whitelist != nil && e.whitelist.IsApproved(ctx, req.UserID, req.ChatID) {
		v := check.Verdict{MsgID: req.MsgID, UserID: req.UserID, Elapsed: time.Since(start),
			Meta: map[string]string{"approved": "true"}}
		e.persist(ctx, req, v)
		return v
	}

	lang := classifyLanguage(req.Text, e.RussianThreshold)
	textLen := len([]rune(strings.TrimSpace(req.Text)))

	var (
		responses []check.Response
		detected  bool
		maxConf   float64
		reason    check.Reason
	)

	// fold accumulates a detector response into the decision, monotonically
	fold := func(resp check.Response, r check.Reason) {
		responses = append(responses, resp)
		if !resp.Spam {
			return
		}
		detected = true
		if resp.Confidence > maxConf {
			maxConf = resp.Confidence
		}
		if reason == check.ReasonNone {
			reason = r
		}
	}

	// heuristics always run first, cheap and local
	hr := e.scoreHeuristic(req.Text, threshold)
	fold(hr, deriveReason(hr.Details))

	// blocklist lookup, consulted for new users even after a heuristic hit
	if e.blocklist != nil && (!detected || uc.New) {
		fold(e.runBlocklist(ctx, req.UserID), check.ReasonBlockedUser)
	}

	// russian statistical classifier, routed by language
	if e.stat != nil && lang == langRussian && textLen >= e.RuSpamMinLen && (!detected || !e.SkipDetected) {
		fold(e.runStat(ctx, req.Text), check.ReasonClassifier)
	}

	// local fallback classifier for longer texts
	if e.fallback != nil && (!detected || !e.SkipDetected) && textLen >= e.FallbackMinLen {
		fold(e.runFallback(ctx, req.Text), check.ReasonClassifier)
	}

	// llm moderation, new users only. veto mode consults the llm on detected
	// spam and lets a clean llm verdict erase the decision; confirm mode
	// consults it on clean or low-confidence results and can only add spam.
	if e.llm != nil && textLen >= e.LLMMinLen && uc.New {
		switch {
		case e.LLMVeto && detected:
			resp := e.runLLM(ctx, req.Text, uc)
			if resp.Error == "" && !resp.Spam {
				responses = append(responses, resp)
				detected, maxConf, reason = false, 0, check.ReasonNone
				log.Printf("[DEBUG] llm vetoed spam verdict for message %d from user %d", req.MsgID, req.UserID)
				break
			}
			fold(resp, check.ReasonLLMDetected)
		case !e.LLMVeto && (!detected || maxConf < llmConfirmBelow):
			fold(e.runLLM(ctx, req.Text, uc), check.ReasonLLMDetected)
		}
	}

	names := make([]string, 0, len(responses))
	for _, r := range responses {
		names = append(names, r.Name)
	}

	v := check.Verdict{
		MsgID:      req.MsgID,
		UserID:     req.UserID,
		Spam:       detected && maxConf >= threshold,
		Confidence: maxConf,
		Reason:     reason,
		Responses:  responses,
		Meta:       map[string]string{"language": string(lang), "detectors": strings.Join(names, ",")},
	}
	applyActions(&v, detected, threshold)

	// escalation ratchet: past the daily limit nothing can prevent the ban
	if detected && e.escalation != nil {
		count, err := e.escalation.IncrementDailyCount(ctx, req.UserID)
		switch {
		case err != nil:
			log.Printf("[WARN] failed to update daily spam count for user %d: %v", req.UserID, err)
		case count >= e.MaxDailySpam:
			log.Printf("[INFO] user %d hit daily spam limit (%d/%d), forcing ban", req.UserID, count, e.MaxDailySpam)
			v.Ban, v.Restrict, v.Delete, v.Warn = true, false, true, false
			v.Meta["escalated"] = "true"
		}
	}

	if !detected {
		e.hamHistory.Push(req)
	}

	v.Elapsed = time.Since(start)
	e.persist(ctx, req, v)
	return v
}

// effectiveThreshold merges the per-chat override with the engine default.
// Invalid overrides are ignored with a warning, not clamped.
func (e *Engine) effectiveThreshold(chat check.ChatConfig) float64 {
	if chat.SpamThreshold == 0 {
		return e.SpamThreshold
	}
	if chat.SpamThreshold < 0 || chat.SpamThreshold > 1 {
		log.Printf("[WARN] chat spam threshold %.2f outside [0, 1], using default %.2f", chat.SpamThreshold, e.SpamThreshold)
		return e.SpamThreshold
	}
	return chat.SpamThreshold
}

func (e *Engine) persist(ctx context.Context, req check.Request, v check.Verdict) {
	if e.sink == nil {
		return
	}
	if err := e.sink.Persist(ctx, req, v); err != nil {
		log.Printf("[WARN] failed to persist detection result for message %d: %v", req.MsgID, err)
	}
}

// runBlocklist wraps the external blocklist lookup into a detector response,
// a failed lookup degrades to a clean zero-confidence response.
func (e *Engine) runBlocklist(ctx context.Context, userID int64) check.Response {
	st := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.BlocklistTimeout)
	defer cancel()

	listed, err := e.blocklist.Check(ctx, userID)
	resp := check.Response{Name: "blocklist"}
	switch {
	case err != nil:
		resp.Details = "check failed"
		resp.Error = err.Error()
	case listed:
		resp.Spam = true
		resp.Confidence = blocklistConfidence
		resp.Details = "user blocked in the external blocklist"
	default:
		resp.Details = "user not listed"
	}
	resp.Elapsed = time.Since(st)
	return resp
}

func (e *Engine) runStat(ctx context.Context, text string) check.Response {
	st := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.RuSpamTimeout)
	defer cancel()

	spam, conf, err := e.stat.Classify(ctx, text)
	resp := check.Response{Name: "ruspam"}
	if err != nil {
		resp.Details = "classify failed"
		resp.Error = err.Error()
	} else {
		resp.Spam = spam
		resp.Confidence = conf
		resp.Details = fmt.Sprintf("classifier probability %.2f", conf)
	}
	resp.Elapsed = time.Since(st)
	return resp
}

func (e *Engine) runFallback(ctx context.Context, text string) check.Response {
	st := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.FallbackTimeout)
	defer cancel()

	spam, conf, details, err := e.fallback.Classify(ctx, text)
	resp := check.Response{Name: "classifier", Details: details}
	if err != nil {
		resp.Error = err.Error()
		resp.Spam, resp.Confidence = false, 0
	} else {
		resp.Spam = spam
		resp.Confidence = conf
	}
	resp.Elapsed = time.Since(st)
	return resp
}

func (e *Engine) runLLM(ctx context.Context, text string, uc check.UserContext) check.Response {
	st := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.LLMTimeout)
	defer cancel()

	var hist []check.Request
	if e.LLMHistorySize > 0 {
		hist = e.hamHistory.Last(e.LLMHistorySize)
	}

	spam, conf, details, err := e.llm.Check(ctx, text, uc, hist)
	resp := check.Response{Name: "openai", Details: details}
	if err != nil {
		resp.Error = err.Error()
		resp.Spam, resp.Confidence = false, 0
	} else {
		resp.Spam = spam
		resp.Confidence = conf
	}
	resp.Elapsed = time.Since(st)
	return resp
}

// LoadPhrases replaces the heuristic spam phrase list from the readers, one
// phrase per line, case-insensitive substring match. Returns the number of
// loaded phrases.
func (e *Engine) LoadPhrases(readers ...io.Reader) (int, error) {
	phrases := []string{}
	for t := range linesIterator(readers...) {
		phrases = append(phrases, strings.ToLower(t))
	}

	e.lock.Lock()
	e.spamPhrases = phrases
	e.lock.Unlock()
	return len(phrases), nil
}

// LoadPatterns replaces the heuristic spam pattern list from the readers, one
// regular expression per line. An invalid pattern fails the whole load.
func (e *Engine) LoadPatterns(readers ...io.Reader) (int, error) {
	patterns := []*regexp.Regexp{}
	for t := range linesIterator(readers...) {
		re, err := regexp.Compile(t)
		if err != nil {
			return 0, fmt.Errorf("invalid spam pattern %q: %w", t, err)
		}
		patterns = append(patterns, re)
	}

	e.lock.Lock()
	e.spamPatterns = patterns
	e.lock.Unlock()
	return len(patterns), nil
}

// linesIterator parses readers and yields non-empty trimmed lines.
func linesIterator(readers ...io.Reader) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for _, reader := range readers {
			scanner := bufio.NewScanner(reader)
			for scanner.Scan() {
				line := strings.Trim(scanner.Text(), " \n\r\t")
				if line == "" {
					continue
				}
				if !yield(line) {
					return
				}
			}
			if err := scanner.Err(); err != nil {
				log.Printf("[WARN] failed to read lines, error=%v", err)
			}
		}
	}
}
