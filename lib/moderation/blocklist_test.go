package moderation

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardbot/tg-guard/lib/moderation/mocks"
)

func blResponse(code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body))}
}

func TestBlocklistClient_Check(t *testing.T) {
	t.Run("listed user", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "https://api.example.com/check?user_id=123", req.URL.String())
			return blResponse(http.StatusOK, `{"ok": true, "description": "spammer"}`), nil
		}}
		bl := NewBlocklistClient(client, BlocklistConfig{API: "https://api.example.com"})

		listed, err := bl.Check(context.Background(), 123)
		require.NoError(t, err)
		assert.True(t, listed)
		assert.Equal(t, 1, len(client.DoCalls()))
	})

	t.Run("clean user", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			return blResponse(http.StatusOK, `{"ok": false, "description": "not found"}`), nil
		}}
		bl := NewBlocklistClient(client, BlocklistConfig{API: "https://api.example.com"})

		listed, err := bl.Check(context.Background(), 123)
		require.NoError(t, err)
		assert.False(t, listed)
	})

	t.Run("cached verdict skips the api", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			return blResponse(http.StatusOK, `{"ok": true}`), nil
		}}
		bl := NewBlocklistClient(client, BlocklistConfig{API: "https://api.example.com"})

		for i := 0; i < 3; i++ {
			listed, err := bl.Check(context.Background(), 123)
			require.NoError(t, err)
			assert.True(t, listed)
		}
		assert.Equal(t, 1, len(client.DoCalls()), "one request, two cache hits")
	})

	t.Run("user agent set", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "guardbot/1.0", req.Header.Get("User-Agent"))
			return blResponse(http.StatusOK, `{"ok": false}`), nil
		}}
		bl := NewBlocklistClient(client, BlocklistConfig{API: "https://api.example.com", UserAgent: "guardbot/1.0"})
		_, err := bl.Check(context.Background(), 123)
		require.NoError(t, err)
	})

	t.Run("bad status is retried and fails", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			return blResponse(http.StatusInternalServerError, ""), nil
		}}
		bl := NewBlocklistClient(client, BlocklistConfig{API: "https://api.example.com", Retries: 2, Delay: time.Millisecond})

		_, err := bl.Check(context.Background(), 123)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected blocklist status code: 500")
		assert.Equal(t, 2, len(client.DoCalls()))
	})

	t.Run("transport error retried, then succeeds", func(t *testing.T) {
		attempts := 0
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("connection reset")
			}
			return blResponse(http.StatusOK, `{"ok": true}`), nil
		}}
		bl := NewBlocklistClient(client, BlocklistConfig{API: "https://api.example.com", Retries: 3, Delay: time.Millisecond})

		listed, err := bl.Check(context.Background(), 123)
		require.NoError(t, err)
		assert.True(t, listed)
		assert.Equal(t, 2, attempts)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			return blResponse(http.StatusOK, "not a json"), nil
		}}
		bl := NewBlocklistClient(client, BlocklistConfig{API: "https://api.example.com", Retries: 1, Delay: time.Millisecond})

		_, err := bl.Check(context.Background(), 123)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse blocklist response")
	})

	t.Run("failed lookup is not cached", func(t *testing.T) {
		attempts := 0
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			attempts++
			if attempts == 1 {
				return blResponse(http.StatusInternalServerError, ""), nil
			}
			return blResponse(http.StatusOK, `{"ok": true}`), nil
		}}
		bl := NewBlocklistClient(client, BlocklistConfig{API: "https://api.example.com", Retries: 1, Delay: time.Millisecond})

		_, err := bl.Check(context.Background(), 123)
		require.Error(t, err)

		listed, err := bl.Check(context.Background(), 123)
		require.NoError(t, err)
		assert.True(t, listed)
	})
}
