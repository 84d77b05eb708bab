package moderation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardbot/tg-guard/lib/moderation/mocks"
)

func TestCleanRussianText(t *testing.T) {
	tbl := []struct {
		name string
		in   string
		out  string
	}{
		{"plain russian", "Привет как дела", "привет как дела"},
		{"urls dropped", "смотри http://spam.ru/page тут", "смотри тут"},
		{"latin and punctuation dropped", "купи, buy now, дешево!!!", "купи дешево"},
		{"digits kept", "скидка 50 процентов", "скидка 50 процентов"},
		{"whitespace collapsed", "  деньги   быстро  ", "деньги быстро"},
		{"nothing left", "only english here!", ""},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, cleanRussianText(tt.in))
		})
	}
}

func TestRuSpamClient_Classify(t *testing.T) {
	t.Run("spam probability", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			var body struct {
				Text string `json:"text"`
			}
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "заработок без вложений", body.Text)
			return &http.Response{StatusCode: http.StatusOK,
				Body: io.NopCloser(strings.NewReader(`{"probability": 0.87}`))}, nil
		}}
		rc := NewRuSpamClient(client, RuSpamConfig{API: "http://localhost:8081/predict"})

		spam, conf, err := rc.Classify(context.Background(), "Заработок без вложений!")
		require.NoError(t, err)
		assert.True(t, spam)
		assert.Equal(t, 0.87, conf)
	})

	t.Run("ham probability", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK,
				Body: io.NopCloser(strings.NewReader(`{"probability": 0.12}`))}, nil
		}}
		rc := NewRuSpamClient(client, RuSpamConfig{API: "http://localhost:8081/predict"})

		spam, conf, err := rc.Classify(context.Background(), "привет как дела сегодня")
		require.NoError(t, err)
		assert.False(t, spam)
		assert.Equal(t, 0.12, conf)
	})

	t.Run("exactly at the cutoff", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK,
				Body: io.NopCloser(strings.NewReader(`{"probability": 0.5}`))}, nil
		}}
		rc := NewRuSpamClient(client, RuSpamConfig{API: "http://localhost:8081/predict"})

		spam, _, err := rc.Classify(context.Background(), "привет как дела сегодня")
		require.NoError(t, err)
		assert.True(t, spam)
	})

	t.Run("degenerate text skips the call", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			t.Fatal("should not be called")
			return nil, nil
		}}
		rc := NewRuSpamClient(client, RuSpamConfig{API: "http://localhost:8081/predict"})

		spam, conf, err := rc.Classify(context.Background(), "hi http://spam.ru")
		require.NoError(t, err)
		assert.False(t, spam)
		assert.Equal(t, 0.0, conf)
		assert.Equal(t, 0, len(client.DoCalls()))
	})

	t.Run("bad status", func(t *testing.T) {
		client := &mocks.HTTPClientMock{DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusBadGateway,
				Body: io.NopCloser(strings.NewReader(""))}, nil
		}}
		rc := NewRuSpamClient(client, RuSpamConfig{API: "http://localhost:8081/predict", Retries: 2, Delay: time.Millisecond})

		_, _, err := rc.Classify(context.Background(), "привет как дела сегодня")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected ruspam status code: 502")
		assert.Equal(t, 2, len(client.DoCalls()))
	})
}
