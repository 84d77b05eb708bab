// Package storage provides sql-backed stores for the detection pipeline:
// the pre-approved users whitelist, daily spam counters for escalation and
// the archive of detection results with per-user rolling stats.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/guardbot/tg-guard/app/storage/engine"
)

// approved users commands
const (
	CmdAddApprovedUser engine.DBCmd = iota + 100
	CmdDelApprovedUser
	CmdIsApprovedUser
	CmdListApprovedUsers
)

// approvedQueries holds all approved users queries
var approvedQueries = engine.NewQueryMap().
	Add(CmdAddApprovedUser, engine.Query{
		Sqlite: "INSERT INTO approved_users (user_id, chat_id, name, timestamp) VALUES (?, ?, ?, ?) " +
			"ON CONFLICT(user_id, chat_id) DO UPDATE SET name = excluded.name",
		Postgres: "INSERT INTO approved_users (user_id, chat_id, name, timestamp) VALUES ($1, $2, $3, $4) " +
			"ON CONFLICT(user_id, chat_id) DO UPDATE SET name = excluded.name",
	}).
	Add(CmdDelApprovedUser, engine.Query{
		Sqlite:   "DELETE FROM approved_users WHERE user_id = ? AND chat_id = ?",
		Postgres: "DELETE FROM approved_users WHERE user_id = $1 AND chat_id = $2",
	}).
	Add(CmdIsApprovedUser, engine.Query{
		Sqlite:   "SELECT COUNT(*) FROM approved_users WHERE user_id = ? AND chat_id IN (0, ?)",
		Postgres: "SELECT COUNT(*) FROM approved_users WHERE user_id = $1 AND chat_id IN (0, $2)",
	}).
	AddSame(CmdListApprovedUsers, "SELECT user_id, chat_id, name, timestamp FROM approved_users ORDER BY timestamp DESC")

const approvedSchema = `
	CREATE TABLE IF NOT EXISTS approved_users (
		user_id   BIGINT NOT NULL,
		chat_id   BIGINT NOT NULL DEFAULT 0,
		name      TEXT DEFAULT '',
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, chat_id)
	);
	CREATE INDEX IF NOT EXISTS idx_approved_users_uid ON approved_users(user_id)`

// ApprovedUsers is a store of pre-approved (whitelisted) users, thread-safe.
// A record with chat_id 0 approves the user globally, any other value
// approves for that chat only.
type ApprovedUsers struct {
	db   *engine.SQL
	lock engine.RWLocker
}

// UserInfo is a whitelisted user record
type UserInfo struct {
	UserID    int64     `db:"user_id"`
	ChatID    int64     `db:"chat_id"`
	Name      string    `db:"name"`
	Timestamp time.Time `db:"timestamp"`
}

// NewApprovedUsers creates a new ApprovedUsers store
func NewApprovedUsers(ctx context.Context, db *engine.SQL) (*ApprovedUsers, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection is nil")
	}
	if err := engine.InitDB(ctx, db, "approved_users", approvedSchema); err != nil {
		return nil, fmt.Errorf("failed to init approved users storage: %w", err)
	}
	return &ApprovedUsers{db: db, lock: db.MakeLock()}, nil
}

// Add adds a user to the whitelist, chatID 0 for a global approval
func (au *ApprovedUsers) Add(ctx context.Context, userID, chatID int64, name string) error {
	au.lock.Lock()
	defer au.lock.Unlock()

	query, err := approvedQueries.Pick(au.db.Type(), CmdAddApprovedUser)
	if err != nil {
		return fmt.Errorf("failed to get add query: %w", err)
	}
	if _, err := au.db.ExecContext(ctx, query, userID, chatID, name, time.Now()); err != nil {
		return fmt.Errorf("failed to add approved user %d: %w", userID, err)
	}
	log.Printf("[INFO] user %s (%d) added to approved", name, userID)
	return nil
}

// Remove drops a user from the whitelist
func (au *ApprovedUsers) Remove(ctx context.Context, userID, chatID int64) error {
	au.lock.Lock()
	defer au.lock.Unlock()

	query, err := approvedQueries.Pick(au.db.Type(), CmdDelApprovedUser)
	if err != nil {
		return fmt.Errorf("failed to get delete query: %w", err)
	}
	res, err := au.db.ExecContext(ctx, query, userID, chatID)
	if err != nil {
		return fmt.Errorf("failed to remove approved user %d: %w", userID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("user %d is not approved in chat %d", userID, chatID)
	}
	return nil
}

// IsApproved reports if the user is approved for the chat or globally.
// Errors are treated as not approved, the detection pipeline fails open
// to the full check instead.
func (au *ApprovedUsers) IsApproved(ctx context.Context, userID, chatID int64) bool {
	au.lock.RLock()
	defer au.lock.RUnlock()

	query, err := approvedQueries.Pick(au.db.Type(), CmdIsApprovedUser)
	if err != nil {
		log.Printf("[WARN] failed to get approved check query: %v", err)
		return false
	}
	var count int
	if err := au.db.GetContext(ctx, &count, query, userID, chatID); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[WARN] failed to check approved user %d: %v", userID, err)
		}
		return false
	}
	return count > 0
}

// List returns all whitelisted users, newest first
func (au *ApprovedUsers) List(ctx context.Context) ([]UserInfo, error) {
	au.lock.RLock()
	defer au.lock.RUnlock()

	query, err := approvedQueries.Pick(au.db.Type(), CmdListApprovedUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to get list query: %w", err)
	}
	res := []UserInfo{}
	if err := au.db.SelectContext(ctx, &res, query); err != nil {
		return nil, fmt.Errorf("failed to list approved users: %w", err)
	}
	return res, nil
}
