package cachestore

import (
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
)

// Store is the durable per-source cache. Load returns found=false for a
// source that has never been saved; that is not an error. Save replaces
// the record atomically so a crash never leaves a partially written
// record visible to the next run.
type Store interface {
	Load(sourceID string) (record *models.CacheRecord, found bool, err error)
	Save(sourceID string, record *models.CacheRecord) error
	Close() error
}

// NewStore creates the cache backend selected by configuration.
func NewStore(cfg config.CacheConfig, logger zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.CacheBackendSQLite:
		return NewSQLiteStore(cfg, logger)
	case config.CacheBackendFile, "":
		return NewFileStore(cfg, logger)
	default:
		return nil, errorwrapper.NewError("unknown cache backend: %s", cfg.Backend)
	}
}
