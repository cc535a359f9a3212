package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mikey/email-sentiment/internal/core"
	"go.uber.org/zap"
)

// FileStore keeps the timestamp and the snapshot in two files.
// The timestamp file holds a single decimal numeral, the snapshot file a JSON object.
type FileStore struct {
	timestampPath string
	snapshotPath  string
	logger        *zap.Logger
}

// NewFileStore creates a file store, creating the parent directories if needed
func NewFileStore(timestampPath, snapshotPath string, logger *zap.Logger) (*FileStore, error) {
	for _, path := range []string{timestampPath, snapshotPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return &FileStore{
		timestampPath: timestampPath,
		snapshotPath:  snapshotPath,
		logger:        logger,
	}, nil
}

// SaveTimestamp overwrites the timestamp file
func (s *FileStore) SaveTimestamp(ctx context.Context, ts float64) error {
	return writeFileAtomic(s.timestampPath, []byte(formatTimestamp(ts)))
}

// LoadTimestamp reads the timestamp file, 0 if it does not exist
func (s *FileStore) LoadTimestamp(ctx context.Context) (float64, error) {
	data, err := os.ReadFile(s.timestampPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("No timestamp file, starting fresh", zap.String("path", s.timestampPath))
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read timestamp file: %w", err)
	}
	return parseTimestamp(string(data))
}

// SaveSnapshot overwrites the snapshot file
func (s *FileStore) SaveSnapshot(ctx context.Context, snapshot core.MailboxSnapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.snapshotPath, data)
}

// LoadSnapshot reads the snapshot file, empty if it does not exist
func (s *FileStore) LoadSnapshot(ctx context.Context) (core.MailboxSnapshot, error) {
	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("No snapshot file, starting empty", zap.String("path", s.snapshotPath))
			return core.MailboxSnapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return decodeSnapshot(data)
}

// writeFileAtomic writes data to a temporary file next to path and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
