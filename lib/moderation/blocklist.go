package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/go-pkgz/repeater"
)

//go:generate moq --out mocks/http_client.go --pkg mocks --skip-ensure . HTTPClient

// HTTPClient is a subset of http.Client used by the external detectors
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BlocklistClient is an external blocklist lookup (CAS-compatible API),
// implements BlocklistChecker. Results are cached with a TTL to avoid
// hammering the service for chatty users, failed lookups are retried.
type BlocklistClient struct {
	client  HTTPClient
	params  BlocklistConfig
	cache   cache.Cache[int64, bool]
	retrier *repeater.Repeater
}

// BlocklistConfig contains parameters for BlocklistClient
type BlocklistConfig struct {
	API       string        // base url of the blocklist service
	UserAgent string        // user agent for requests, optional
	CacheSize int           // max number of cached verdicts
	CacheTTL  time.Duration // how long a verdict is cached
	Retries   int           // attempts per lookup
	Delay     time.Duration // delay between attempts
}

type blocklistResp struct {
	OK          bool   `json:"ok"` // ok means user is a known spammer
	Description string `json:"description"`
}

// NewBlocklistClient makes a blocklist client for the given api base url
func NewBlocklistClient(client HTTPClient, params BlocklistConfig) *BlocklistClient {
	if params.CacheSize == 0 {
		params.CacheSize = 10000
	}
	if params.CacheTTL == 0 {
		params.CacheTTL = 15 * time.Minute
	}
	if params.Retries == 0 {
		params.Retries = 3
	}
	if params.Delay == 0 {
		params.Delay = 500 * time.Millisecond
	}
	return &BlocklistClient{
		client:  client,
		params:  params,
		cache:   cache.NewCache[int64, bool]().WithMaxKeys(params.CacheSize).WithTTL(params.CacheTTL),
		retrier: repeater.NewDefault(params.Retries, params.Delay),
	}
}

// Check reports if the user is listed in the external blocklist
func (b *BlocklistClient) Check(ctx context.Context, userID int64) (listed bool, err error) {
	if v, ok := b.cache.Get(userID); ok {
		return v, nil
	}

	var result blocklistResp
	err = b.retrier.Do(ctx, func() error {
		req, e := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/check?user_id=%d", b.params.API, userID), http.NoBody)
		if e != nil {
			return fmt.Errorf("failed to make blocklist request: %w", e)
		}
		if b.params.UserAgent != "" {
			req.Header.Set("User-Agent", b.params.UserAgent)
		}

		resp, e := b.client.Do(req)
		if e != nil {
			return fmt.Errorf("failed to send blocklist request: %w", e)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected blocklist status code: %d", resp.StatusCode)
		}
		if e := json.NewDecoder(resp.Body).Decode(&result); e != nil {
			return fmt.Errorf("failed to parse blocklist response: %w", e)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	b.cache.Set(userID, result.OK, b.params.CacheTTL)
	return result.OK, nil
}
