package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guardbot/tg-guard/app/storage/engine"
)

// escalation commands
const (
	CmdIncrementSpamCounter engine.DBCmd = iota + 200
	CmdResetSpamCounter
	CmdGetSpamCounter
)

// escalationQueries holds all spam counter queries. The increment is a single
// atomic upsert: an expired counter restarts at 1 with a fresh reset time,
// a live one is bumped keeping its original window. Concurrent increments
// for the same user never lose updates.
var escalationQueries = engine.NewQueryMap().
	Add(CmdIncrementSpamCounter, engine.Query{
		Sqlite: `INSERT INTO spam_counters (user_id, count, reset_at) VALUES (?, 1, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				count = CASE WHEN spam_counters.reset_at <= ? THEN 1 ELSE spam_counters.count + 1 END,
				reset_at = CASE WHEN spam_counters.reset_at <= ? THEN excluded.reset_at ELSE spam_counters.reset_at END
			RETURNING count`,
		Postgres: `INSERT INTO spam_counters (user_id, count, reset_at) VALUES ($1, 1, $2)
			ON CONFLICT(user_id) DO UPDATE SET
				count = CASE WHEN spam_counters.reset_at <= $3 THEN 1 ELSE spam_counters.count + 1 END,
				reset_at = CASE WHEN spam_counters.reset_at <= $4 THEN excluded.reset_at ELSE spam_counters.reset_at END
			RETURNING count`,
	}).
	Add(CmdResetSpamCounter, engine.Query{
		Sqlite:   "DELETE FROM spam_counters WHERE user_id = ?",
		Postgres: "DELETE FROM spam_counters WHERE user_id = $1",
	}).
	Add(CmdGetSpamCounter, engine.Query{
		Sqlite:   "SELECT count FROM spam_counters WHERE user_id = ? AND reset_at > ?",
		Postgres: "SELECT count FROM spam_counters WHERE user_id = $1 AND reset_at > $2",
	})

const escalationSchema = `
	CREATE TABLE IF NOT EXISTS spam_counters (
		user_id  BIGINT PRIMARY KEY,
		count    INTEGER NOT NULL DEFAULT 0,
		reset_at TIMESTAMP NOT NULL
	)`

// SpamCounters is a store of rolling daily spam counters per user,
// thread-safe. A counter lives for the window duration from its first
// increment, the next offense after expiry restarts the window.
type SpamCounters struct {
	db     *engine.SQL
	lock   engine.RWLocker
	window time.Duration
	now    func() time.Time // replaced in tests
}

// NewSpamCounters creates a new SpamCounters store with the given window,
// 24h when zero
func NewSpamCounters(ctx context.Context, db *engine.SQL, window time.Duration) (*SpamCounters, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection is nil")
	}
	if window == 0 {
		window = 24 * time.Hour
	}
	if err := engine.InitDB(ctx, db, "spam_counters", escalationSchema); err != nil {
		return nil, fmt.Errorf("failed to init spam counters storage: %w", err)
	}
	return &SpamCounters{db: db, lock: db.MakeLock(), window: window, now: time.Now}, nil
}

// IncrementDailyCount bumps the user's counter and returns the new value.
// An expired counter restarts at 1.
func (sc *SpamCounters) IncrementDailyCount(ctx context.Context, userID int64) (int, error) {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	query, err := escalationQueries.Pick(sc.db.Type(), CmdIncrementSpamCounter)
	if err != nil {
		return 0, fmt.Errorf("failed to get increment query: %w", err)
	}

	now := sc.now().UTC()
	var count int
	err = sc.db.GetContext(ctx, &count, query, userID, now.Add(sc.window), now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to increment spam counter for user %d: %w", userID, err)
	}
	return count, nil
}

// ResetDailyCount drops the user's counter, used by admins on false positives
func (sc *SpamCounters) ResetDailyCount(ctx context.Context, userID int64) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	query, err := escalationQueries.Pick(sc.db.Type(), CmdResetSpamCounter)
	if err != nil {
		return fmt.Errorf("failed to get reset query: %w", err)
	}
	if _, err := sc.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to reset spam counter for user %d: %w", userID, err)
	}
	return nil
}

// Count returns the user's current counter, 0 if missing or expired
func (sc *SpamCounters) Count(ctx context.Context, userID int64) (int, error) {
	sc.lock.RLock()
	defer sc.lock.RUnlock()

	query, err := escalationQueries.Pick(sc.db.Type(), CmdGetSpamCounter)
	if err != nil {
		return 0, fmt.Errorf("failed to get count query: %w", err)
	}
	var count int
	if err := sc.db.GetContext(ctx, &count, query, userID, sc.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get spam counter for user %d: %w", userID, err)
	}
	return count, nil
}
