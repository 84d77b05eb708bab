// Package check provides the value types shared between the moderation engine
// and its callers: the request to check, per-detector responses and the final
// verdict with recommended actions.
package check

import (
	"fmt"
	"strings"
	"time"
)

// Request is a request to check a message for spam.
type Request struct {
	MsgID  int64    `json:"msg_id"`  // message id, as known to the delivery layer
	UserID int64    `json:"user_id"` // author of the message
	ChatID int64    `json:"chat_id"` // chat the message was posted to
	Text   string   `json:"text"`    // raw message text
	Meta   MetaData `json:"meta"`    // structural meta-info, provided by the client
}

// MetaData is a structural meta-info about the message, provided by the client.
type MetaData struct {
	HasLinks    bool `json:"has_links"`    // true if the message contains links
	HasMentions bool `json:"has_mentions"` // true if the message contains mentions
	HasImages   bool `json:"has_images"`   // true if the message has images attached
	HasForward  bool `json:"has_forward"`  // true if the message is a forward
}

func (r *Request) String() string {
	return fmt.Sprintf("msg:%q, user:%d, chat:%d, links:%v, mentions:%v, images:%v, forward:%v",
		r.Text, r.UserID, r.ChatID, r.Meta.HasLinks, r.Meta.HasMentions, r.Meta.HasImages, r.Meta.HasForward)
}

// UserContext is a point-in-time snapshot of the message author, supplied by
// the caller and read-only to the engine.
type UserContext struct {
	MessageCount int     `json:"message_count"` // total messages seen from the user
	SpamScore    float64 `json:"spam_score"`    // running spam score, exponential moving average
	New          bool    `json:"new"`           // true if the user is considered new
	LLMPrompt    string  `json:"llm_prompt"`    // optional per-user/per-chat system prompt for the LLM detector
	LLMModel     string  `json:"llm_model"`     // optional per-user model override for the LLM detector
	LLMToken     string  `json:"-"`             // optional per-user LLM credential, never serialized
}

// ChatConfig is a per-chat override merged into a request-scoped copy of the
// engine configuration, never mutated in place.
type ChatConfig struct {
	SpamThreshold float64 `json:"spam_threshold"` // effective spam threshold for the chat, 0 means engine default
}

// Response is a result of a single detector.
type Response struct {
	Name       string        `json:"name"`       // name of the detector
	Spam       bool          `json:"spam"`       // true if the detector flagged the message
	Confidence float64       `json:"confidence"` // detector confidence, 0.0 - 1.0
	Details    string        `json:"details"`    // free-text details of the check
	Elapsed    time.Duration `json:"elapsed"`    // detector processing time
	Error      string        `json:"error,omitempty"` // error text if the detector failed, empty otherwise
}

func (r *Response) String() string {
	spamOrHam := "ham"
	if r.Spam {
		spamOrHam = "spam"
	}
	if r.Error != "" {
		return fmt.Sprintf("%s: %s, %.2f, %s, error: %s", r.Name, spamOrHam, r.Confidence, r.Details, r.Error)
	}
	return fmt.Sprintf("%s: %s, %.2f, %s", r.Name, spamOrHam, r.Confidence, r.Details)
}

// ResponsesToString converts a slice of detector responses to a string
func ResponsesToString(responses []Response) string {
	elems := []string{}
	for _, r := range responses {
		elems = append(elems, "{"+r.String()+"}")
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}

// Reason is a primary reason for a spam verdict.
type Reason string

// enum of all detection reasons
const (
	ReasonNone            Reason = ""
	ReasonTooManyEmoji    Reason = "too_many_emoji"
	ReasonTooManyLinks    Reason = "too_many_links"
	ReasonTooManyMentions Reason = "too_many_mentions"
	ReasonLinksOnly       Reason = "links_only"
	ReasonAbnormalSpacing Reason = "abnormal_spacing"
	ReasonClassifier      Reason = "classifier"
	ReasonLLMDetected     Reason = "llm_detected"
	ReasonBlockedUser     Reason = "blocked_user"
)

// Verdict is the final result of the ensemble detection for a single message.
// Constructed once per message, immutable after the action policy is applied.
type Verdict struct {
	MsgID      int64             `json:"msg_id"`
	UserID     int64             `json:"user_id"`
	Spam       bool              `json:"spam"`       // authoritative verdict, threshold-driven
	Confidence float64           `json:"confidence"` // max confidence among spam-flagged detectors
	Reason     Reason            `json:"reason"`     // primary reason of the verdict
	Responses  []Response        `json:"responses"`  // ordered list of detector responses

	// recommended actions, ban and restrict are mutually exclusive
	Ban      bool `json:"ban"`
	Restrict bool `json:"restrict"`
	Delete   bool `json:"delete"`
	Warn     bool `json:"warn"`

	Elapsed time.Duration     `json:"elapsed"`
	Meta    map[string]string `json:"meta,omitempty"` // detected language, invoked detectors and alike
}

func (v *Verdict) String() string {
	verdict := "clean"
	if v.Spam {
		verdict = "spam"
	}
	action := "none"
	switch {
	case v.Ban:
		action = "ban"
	case v.Restrict:
		action = "restrict"
	case v.Warn:
		action = "warn"
	}
	return fmt.Sprintf("%s: confidence %.2f, reason %q, action %s, checks %s",
		verdict, v.Confidence, string(v.Reason), action, ResponsesToString(v.Responses))
}
