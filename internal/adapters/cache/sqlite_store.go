package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/email-sentiment/internal/core"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the CacheStore interface.
// Both entries live in one key/value table using the same text encodings as the file store.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) the SQLite cache database
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session_cache (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// SaveTimestamp overwrites the stored timestamp
func (s *SQLiteStore) SaveTimestamp(ctx context.Context, ts float64) error {
	return s.put(ctx, timestampKey, formatTimestamp(ts))
}

// LoadTimestamp returns the stored timestamp, 0 if none was saved
func (s *SQLiteStore) LoadTimestamp(ctx context.Context) (float64, error) {
	value, ok, err := s.get(ctx, timestampKey)
	if err != nil || !ok {
		return 0, err
	}
	return parseTimestamp(value)
}

// SaveSnapshot overwrites the stored snapshot
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snapshot core.MailboxSnapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	return s.put(ctx, snapshotKey, string(data))
}

// LoadSnapshot returns the stored snapshot, empty if none was saved
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (core.MailboxSnapshot, error) {
	value, ok, err := s.get(ctx, snapshotKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return core.MailboxSnapshot{}, nil
	}
	return decodeSnapshot([]byte(value))
}

func (s *SQLiteStore) put(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO session_cache (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM session_cache WHERE name = ?
	`, name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query %s: %w", name, err)
	}
	return value, true, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
		return err
	}
	return nil
}
