package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/email-sentiment/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the CacheStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL and creates the cache table if needed
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session_cache (
			name VARCHAR(64) PRIMARY KEY,
			value LONGTEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// SaveTimestamp overwrites the stored timestamp
func (s *MySQLStore) SaveTimestamp(ctx context.Context, ts float64) error {
	return s.put(ctx, timestampKey, formatTimestamp(ts))
}

// LoadTimestamp returns the stored timestamp, 0 if none was saved
func (s *MySQLStore) LoadTimestamp(ctx context.Context) (float64, error) {
	value, ok, err := s.get(ctx, timestampKey)
	if err != nil || !ok {
		return 0, err
	}
	return parseTimestamp(value)
}

// SaveSnapshot overwrites the stored snapshot
func (s *MySQLStore) SaveSnapshot(ctx context.Context, snapshot core.MailboxSnapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	return s.put(ctx, snapshotKey, string(data))
}

// LoadSnapshot returns the stored snapshot, empty if none was saved
func (s *MySQLStore) LoadSnapshot(ctx context.Context) (core.MailboxSnapshot, error) {
	value, ok, err := s.get(ctx, snapshotKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return core.MailboxSnapshot{}, nil
	}
	return decodeSnapshot([]byte(value))
}

func (s *MySQLStore) put(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_cache (name, value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE
			value = VALUES(value)
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}

func (s *MySQLStore) get(ctx context.Context, name string) (string, bool, error) {
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
func (s *MySQLStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL database", zap.Error(err))
		return err
	}
	return nil
}
