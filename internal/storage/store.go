// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/haven-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound      = errors.New("key not found")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	sender     TEXT NOT NULL,
	body       TEXT NOT NULL,
	sentiment  TEXT,
	confidence REAL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
`

// =============================================================================
// STORE
// =============================================================================

// Store is the haven local database. It backs the session key-value
// interface and archives chat messages across restarts.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database location under the haven data
// directory (~/.haven/haven.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".haven", "haven.db"), nil
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// KEY-VALUE
// =============================================================================

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// =============================================================================
// MESSAGE ARCHIVE
// =============================================================================

// SaveMessage archives a chat message. Saving the same message twice
// updates it in place, so optimistic entries can be persisted before
// their reply lands.
func (s *Store) SaveMessage(msg *model.ChatMessage) error {
	var sentiment sql.NullString
	var confidence sql.NullFloat64
	if msg.HasSentiment() {
		sentiment = sql.NullString{String: string(*msg.Sentiment), Valid: true}
		confidence = sql.NullFloat64{Float64: *msg.Confidence, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO messages (id, sender, body, sentiment, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			body = excluded.body,
			sentiment = excluded.sentiment,
			confidence = excluded.confidence`,
		msg.ID, string(msg.Sender), msg.Text, sentiment, confidence,
		msg.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Messages returns archived messages oldest first. A limit of 0 means
// no limit.
func (s *Store) Messages(limit int) ([]*model.ChatMessage, error) {
	query := "SELECT id, sender, body, sentiment, confidence, created_at FROM messages ORDER BY created_at ASC"
	args := []any{}
	if limit > 0 {
		// Take the newest N, then flip back to chronological order
		query = `SELECT id, sender, body, sentiment, confidence, created_at FROM (
			SELECT id, sender, body, sentiment, confidence, created_at
			FROM messages ORDER BY created_at DESC LIMIT ?
		) ORDER BY created_at ASC`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var messages []*model.ChatMessage
	for rows.Next() {
		var (
			msg        model.ChatMessage
			sender     string
			sentiment  sql.NullString
			confidence sql.NullFloat64
			createdAt  string
		)
		if err := rows.Scan(&msg.ID, &sender, &msg.Text, &sentiment, &confidence, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		msg.Sender = model.Sender(sender)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			msg.Timestamp = ts
		}
		if sentiment.Valid && confidence.Valid {
			if parsed, ok := model.ParseSentiment(sentiment.String); ok {
				conf := confidence.Float64
				msg.Sentiment = &parsed
				msg.Confidence = &conf
			}
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return messages, nil
}

// ClearMessages drops the whole archive.
func (s *Store) ClearMessages() error {
	if _, err := s.db.Exec("DELETE FROM messages"); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}
