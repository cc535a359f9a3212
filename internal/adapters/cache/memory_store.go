package cache

import (
	"context"

	"github.com/mikey/email-sentiment/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the CacheStore interface.
// Entries are kept in their encoded form so callers never share slices with the store.
type MemoryStore struct {
	timestamp string
	snapshot  []byte
	logger    *zap.Logger
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		logger: logger,
	}
}

// SaveTimestamp stores the timestamp
func (s *MemoryStore) SaveTimestamp(ctx context.Context, ts float64) error {
	s.timestamp = formatTimestamp(ts)
	return nil
}

// LoadTimestamp returns the stored timestamp, 0 if none was saved
func (s *MemoryStore) LoadTimestamp(ctx context.Context) (float64, error) {
	if s.timestamp == "" {
		return 0, nil
	}
	return parseTimestamp(s.timestamp)
}

// SaveSnapshot stores a copy of the snapshot
func (s *MemoryStore) SaveSnapshot(ctx context.Context, snapshot core.MailboxSnapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	s.snapshot = data
	return nil
}

// LoadSnapshot returns a copy of the stored snapshot, empty if none was saved
func (s *MemoryStore) LoadSnapshot(ctx context.Context) (core.MailboxSnapshot, error) {
	if s.snapshot == nil {
		return core.MailboxSnapshot{}, nil
	}
	return decodeSnapshot(s.snapshot)
}
