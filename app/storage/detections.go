package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/guardbot/tg-guard/app/storage/engine"
	"github.com/guardbot/tg-guard/lib/check"
)

// detections commands
const (
	CmdCreateDetectionsTables engine.DBCmd = iota + 300
	CmdAddDetection
	CmdReadDetections
	CmdUpdateUserStats
	CmdGetUserStats
)

// exponential moving average weight for the per-user spam score
const spamScoreAlpha = 0.1

// detectionsQueries holds all detections and user stats queries
var detectionsQueries = engine.NewQueryMap().
	Add(CmdCreateDetectionsTables, engine.Query{
		Sqlite: `
			CREATE TABLE IF NOT EXISTS detections (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				msg_id     BIGINT,
				user_id    BIGINT,
				chat_id    BIGINT,
				text       TEXT,
				spam       BOOLEAN,
				confidence REAL,
				reason     TEXT,
				checks     TEXT,
				timestamp  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_detections_uid ON detections(user_id);
			CREATE TABLE IF NOT EXISTS user_stats (
				user_id       BIGINT PRIMARY KEY,
				message_count INTEGER NOT NULL DEFAULT 0,
				spam_score    REAL NOT NULL DEFAULT 0,
				updated_at    TIMESTAMP
			)`,
		Postgres: `
			CREATE TABLE IF NOT EXISTS detections (
				id         SERIAL PRIMARY KEY,
				msg_id     BIGINT,
				user_id    BIGINT,
				chat_id    BIGINT,
				text       TEXT,
				spam       BOOLEAN,
				confidence REAL,
				reason     TEXT,
				checks     TEXT,
				timestamp  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_detections_uid ON detections(user_id);
			CREATE TABLE IF NOT EXISTS user_stats (
				user_id       BIGINT PRIMARY KEY,
				message_count INTEGER NOT NULL DEFAULT 0,
				spam_score    REAL NOT NULL DEFAULT 0,
				updated_at    TIMESTAMP
			)`,
	}).
	Add(CmdAddDetection, engine.Query{
		Sqlite: "INSERT INTO detections (msg_id, user_id, chat_id, text, spam, confidence, reason, checks, timestamp) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		Postgres: "INSERT INTO detections (msg_id, user_id, chat_id, text, spam, confidence, reason, checks, timestamp) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
	}).
	Add(CmdReadDetections, engine.Query{
		Sqlite:   "SELECT * FROM detections ORDER BY timestamp DESC LIMIT ?",
		Postgres: "SELECT * FROM detections ORDER BY timestamp DESC LIMIT $1",
	}).
	Add(CmdUpdateUserStats, engine.Query{
		Sqlite: `INSERT INTO user_stats (user_id, message_count, spam_score, updated_at) VALUES (?, 1, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				message_count = user_stats.message_count + 1,
				spam_score = user_stats.spam_score * 0.9 + excluded.spam_score,
				updated_at = excluded.updated_at`,
		Postgres: `INSERT INTO user_stats (user_id, message_count, spam_score, updated_at) VALUES ($1, 1, $2, $3)
			ON CONFLICT(user_id) DO UPDATE SET
				message_count = user_stats.message_count + 1,
				spam_score = user_stats.spam_score * 0.9 + excluded.spam_score,
				updated_at = excluded.updated_at`,
	}).
	Add(CmdGetUserStats, engine.Query{
		Sqlite:   "SELECT message_count, spam_score FROM user_stats WHERE user_id = ?",
		Postgres: "SELECT message_count, spam_score FROM user_stats WHERE user_id = $1",
	})

// Detections is an archive of detection results with per-user rolling stats,
// thread-safe. Implements the result sink of the detection engine.
type Detections struct {
	db   *engine.SQL
	lock engine.RWLocker
}

// DetectionRecord is a single archived detection result
type DetectionRecord struct {
	ID         int64     `db:"id"`
	MsgID      int64     `db:"msg_id"`
	UserID     int64     `db:"user_id"`
	ChatID     int64     `db:"chat_id"`
	Text       string    `db:"text"`
	Spam       bool      `db:"spam"`
	Confidence float64   `db:"confidence"`
	Reason     string    `db:"reason"`
	Checks     string    `db:"checks"` // json-encoded detector responses
	Timestamp  time.Time `db:"timestamp"`
}

// UserStats is the rolling per-user state used to build the user context:
// how many messages were seen and the moving average of spam confidence.
type UserStats struct {
	MessageCount int     `db:"message_count"`
	SpamScore    float64 `db:"spam_score"`
}

// NewDetections creates a new Detections store
func NewDetections(ctx context.Context, db *engine.SQL) (*Detections, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection is nil")
	}
	schema, err := detectionsQueries.Pick(db.Type(), CmdCreateDetectionsTables)
	if err != nil {
		return nil, fmt.Errorf("failed to get detections schema: %w", err)
	}
	if err := engine.InitDB(ctx, db, "detections", schema); err != nil {
		return nil, fmt.Errorf("failed to init detections storage: %w", err)
	}
	return &Detections{db: db, lock: db.MakeLock()}, nil
}

// Persist archives the verdict and updates the user's rolling stats, both in
// a single transaction. Clean verdicts count too, the message counter drives
// the new-user flag and the moving average needs every message.
func (d *Detections) Persist(ctx context.Context, req check.Request, v check.Verdict) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	checks, err := json.Marshal(v.Responses)
	if err != nil {
		return fmt.Errorf("failed to marshal checks: %w", err)
	}

	addQuery, err := detectionsQueries.Pick(d.db.Type(), CmdAddDetection)
	if err != nil {
		return fmt.Errorf("failed to get add query: %w", err)
	}
	statsQuery, err := detectionsQueries.Pick(d.db.Type(), CmdUpdateUserStats)
	if err != nil {
		return fmt.Errorf("failed to get stats query: %w", err)
	}

	tx, err := d.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx, addQuery, req.MsgID, req.UserID, req.ChatID, req.Text,
		v.Spam, v.Confidence, string(v.Reason), string(checks), now); err != nil {
		return fmt.Errorf("failed to insert detection: %w", err)
	}
	if _, err := tx.ExecContext(ctx, statsQuery, req.UserID, spamScoreAlpha*v.Confidence, now); err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Read returns the most recent detection records, newest first
func (d *Detections) Read(ctx context.Context, limit int) ([]DetectionRecord, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	query, err := detectionsQueries.Pick(d.db.Type(), CmdReadDetections)
	if err != nil {
		return nil, fmt.Errorf("failed to get read query: %w", err)
	}
	res := []DetectionRecord{}
	if err := d.db.SelectContext(ctx, &res, query, limit); err != nil {
		return nil, fmt.Errorf("failed to read detections: %w", err)
	}
	return res, nil
}

// UserStats returns the rolling stats for the user, zero values if unseen
func (d *Detections) UserStats(ctx context.Context, userID int64) (UserStats, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	query, err := detectionsQueries.Pick(d.db.Type(), CmdGetUserStats)
	if err != nil {
		return UserStats{}, fmt.Errorf("failed to get stats query: %w", err)
	}
	var res UserStats
	if err := d.db.GetContext(ctx, &res, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserStats{}, nil
		}
		return UserStats{}, fmt.Errorf("failed to get stats for user %d: %w", userID, err)
	}
	return res, nil
}
