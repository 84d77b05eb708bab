package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-pkgz/repeater"
)

// RuSpamClient is a client for an external RUSpam model inference service,
// implements StatClassifier. The service wraps the RUSpam/spamNS_v1 model and
// returns a spam probability for russian texts.
type RuSpamClient struct {
	client  HTTPClient
	params  RuSpamConfig
	retrier *repeater.Repeater
}

// RuSpamConfig contains parameters for RuSpamClient
type RuSpamConfig struct {
	API     string        // url of the inference endpoint
	Retries int           // attempts per call
	Delay   time.Duration // delay between attempts
}

// text preprocessing per the RUSpam model card, urls dropped and everything
// but cyrillic letters, digits and spaces replaced with a space
var (
	ruSpamURLRe      = regexp.MustCompile(`http\S+`)
	ruSpamCharsRe    = regexp.MustCompile(`[^А-Яа-я0-9 ]+`)
	ruSpamSpacesRe   = regexp.MustCompile(`\s+`)
	ruSpamMinCleaned = 3
)

type ruSpamRequest struct {
	Text string `json:"text"`
}

type ruSpamResp struct {
	Probability float64 `json:"probability"`
}

// NewRuSpamClient makes a russian spam classifier client
func NewRuSpamClient(client HTTPClient, params RuSpamConfig) *RuSpamClient {
	if params.Retries == 0 {
		params.Retries = 3
	}
	if params.Delay == 0 {
		params.Delay = 500 * time.Millisecond
	}
	return &RuSpamClient{client: client, params: params, retrier: repeater.NewDefault(params.Retries, params.Delay)}
}

// Classify sends the cleaned text to the inference service and returns the
// spam verdict with the model probability as confidence. Texts degenerating
// to almost nothing after cleaning are reported clean without a call.
func (r *RuSpamClient) Classify(ctx context.Context, text string) (spam bool, confidence float64, err error) {
	cleaned := cleanRussianText(text)
	if len([]rune(cleaned)) < ruSpamMinCleaned {
		return false, 0, nil
	}

	body, err := json.Marshal(ruSpamRequest{Text: cleaned})
	if err != nil {
		return false, 0, fmt.Errorf("failed to marshal ruspam request: %w", err)
	}

	var result ruSpamResp
	err = r.retrier.Do(ctx, func() error {
		req, e := http.NewRequestWithContext(ctx, http.MethodPost, r.params.API, bytes.NewReader(body))
		if e != nil {
			return fmt.Errorf("failed to make ruspam request: %w", e)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, e := r.client.Do(req)
		if e != nil {
			return fmt.Errorf("failed to send ruspam request: %w", e)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected ruspam status code: %d", resp.StatusCode)
		}
		if e := json.NewDecoder(resp.Body).Decode(&result); e != nil {
			return fmt.Errorf("failed to parse ruspam response: %w", e)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return result.Probability >= 0.5, result.Probability, nil
}

func cleanRussianText(text string) string {
	res := ruSpamURLRe.ReplaceAllString(text, "")
	res = ruSpamCharsRe.ReplaceAllString(res, " ")
	res = strings.ToLower(strings.TrimSpace(res))
	return ruSpamSpacesRe.ReplaceAllString(res, " ")
}
