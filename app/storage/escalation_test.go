package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpamCounters_Increment(t *testing.T) {
	ctx := context.Background()
	sc, err := NewSpamCounters(ctx, setupTestDB(t), 24*time.Hour)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		count, err := sc.IncrementDailyCount(ctx, 123)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	// another user has an independent counter
	count, err := sc.IncrementDailyCount(ctx, 456)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSpamCounters_WindowExpiry(t *testing.T) {
	ctx := context.Background()
	sc, err := NewSpamCounters(ctx, setupTestDB(t), time.Hour)
	require.NoError(t, err)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sc.now = func() time.Time { return base }

	count, err := sc.IncrementDailyCount(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = sc.IncrementDailyCount(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// past the window the counter restarts
	sc.now = func() time.Time { return base.Add(2 * time.Hour) }
	count, err = sc.IncrementDailyCount(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "expired counter restarts at 1")

	count, err = sc.IncrementDailyCount(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "fresh window accumulates again")
}

func TestSpamCounters_Reset(t *testing.T) {
	ctx := context.Background()
	sc, err := NewSpamCounters(ctx, setupTestDB(t), 24*time.Hour)
	require.NoError(t, err)

	_, err = sc.IncrementDailyCount(ctx, 123)
	require.NoError(t, err)
	_, err = sc.IncrementDailyCount(ctx, 123)
	require.NoError(t, err)

	require.NoError(t, sc.ResetDailyCount(ctx, 123))

	count, err := sc.Count(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = sc.IncrementDailyCount(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "counter starts over after reset")

	// resetting a missing counter is not an error
	require.NoError(t, sc.ResetDailyCount(ctx, 999))
}

func TestSpamCounters_Count(t *testing.T) {
	ctx := context.Background()
	sc, err := NewSpamCounters(ctx, setupTestDB(t), time.Hour)
	require.NoError(t, err)

	count, err := sc.Count(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "unseen user has zero counter")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sc.now = func() time.Time { return base }
	_, err = sc.IncrementDailyCount(ctx, 123)
	require.NoError(t, err)

	count, err = sc.Count(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	sc.now = func() time.Time { return base.Add(2 * time.Hour) }
	count, err = sc.Count(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "expired counter reads as zero")
}

func TestNewSpamCounters_NilDB(t *testing.T) {
	_, err := NewSpamCounters(context.Background(), nil, time.Hour)
	require.Error(t, err)
}
