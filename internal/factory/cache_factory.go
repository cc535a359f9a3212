package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/email-sentiment/internal/adapters/cache"
	"github.com/mikey/email-sentiment/internal/config"
	"github.com/mikey/email-sentiment/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates cache stores based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCacheStore creates a cache store based on the configuration
func (f *CacheFactory) CreateCacheStore() (core.CacheStore, error) {
	cacheCfg := f.cfg.GetCache()

	switch cacheCfg.Type {
	case "file":
		return cache.NewFileStore(cacheCfg.TimestampPath, cacheCfg.SnapshotPath, f.logger)
	case "memory":
		return cache.NewMemoryStore(f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(cacheCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return cache.NewSQLiteStore(cacheCfg.SQLitePath, f.logger)
	case "mysql":
		return cache.NewMySQLStore(cacheCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheCfg.Type)
	}
}
