package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardbot/tg-guard/lib/check"
)

func TestDetections_PersistAndRead(t *testing.T) {
	ctx := context.Background()
	d, err := NewDetections(ctx, setupTestDB(t))
	require.NoError(t, err)

	req := check.Request{MsgID: 10, UserID: 123, ChatID: 100, Text: "buy crypto now"}
	v := check.Verdict{
		MsgID: 10, UserID: 123, Spam: true, Confidence: 0.95, Reason: check.ReasonClassifier,
		Responses: []check.Response{{Name: "heuristic", Spam: true, Confidence: 0.95, Details: "spam patterns detected"}},
	}
	require.NoError(t, d.Persist(ctx, req, v))

	recs, err := d.Read(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, len(recs))
	assert.Equal(t, int64(10), recs[0].MsgID)
	assert.Equal(t, int64(123), recs[0].UserID)
	assert.Equal(t, int64(100), recs[0].ChatID)
	assert.Equal(t, "buy crypto now", recs[0].Text)
	assert.True(t, recs[0].Spam)
	assert.InDelta(t, 0.95, recs[0].Confidence, 0.0001)
	assert.Equal(t, "classifier", recs[0].Reason)

	var checks []check.Response
	require.NoError(t, json.Unmarshal([]byte(recs[0].Checks), &checks))
	require.Equal(t, 1, len(checks))
	assert.Equal(t, "heuristic", checks[0].Name)
}

func TestDetections_ReadLimit(t *testing.T) {
	ctx := context.Background()
	d, err := NewDetections(ctx, setupTestDB(t))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		req := check.Request{MsgID: int64(i), UserID: 123, Text: fmt.Sprintf("message %d", i)}
		require.NoError(t, d.Persist(ctx, req, check.Verdict{MsgID: int64(i), UserID: 123}))
	}

	recs, err := d.Read(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, len(recs))

	recs, err = d.Read(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, len(recs), "non-positive limit falls back to default")
}

func TestDetections_UserStats(t *testing.T) {
	ctx := context.Background()
	d, err := NewDetections(ctx, setupTestDB(t))
	require.NoError(t, err)

	stats, err := d.UserStats(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MessageCount, "unseen user has zero stats")
	assert.Equal(t, 0.0, stats.SpamScore)

	req := check.Request{MsgID: 1, UserID: 123, Text: "first"}
	require.NoError(t, d.Persist(ctx, req, check.Verdict{MsgID: 1, UserID: 123, Spam: true, Confidence: 1.0}))

	stats, err = d.UserStats(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MessageCount)
	assert.InDelta(t, 0.1, stats.SpamScore, 0.0001, "alpha weighted confidence")

	req = check.Request{MsgID: 2, UserID: 123, Text: "second"}
	require.NoError(t, d.Persist(ctx, req, check.Verdict{MsgID: 2, UserID: 123, Confidence: 0.5}))

	stats, err = d.UserStats(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MessageCount)
	assert.InDelta(t, 0.1*1.0*0.9+0.1*0.5, stats.SpamScore, 0.0001, "moving average decays the old score")

	// clean messages decay the score towards zero
	req = check.Request{MsgID: 3, UserID: 123, Text: "third"}
	require.NoError(t, d.Persist(ctx, req, check.Verdict{MsgID: 3, UserID: 123}))

	stats, err = d.UserStats(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.MessageCount)
	assert.InDelta(t, (0.1*1.0*0.9+0.1*0.5)*0.9, stats.SpamScore, 0.0001)
}

func TestNewDetections_NilDB(t *testing.T) {
	_, err := NewDetections(context.Background(), nil)
	require.Error(t, err)
}
