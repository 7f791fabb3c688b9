package cachestore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
)

const recordFileName = "record.json"

// FileStore keeps one directory per source under the cache root, with
// the record serialized as JSON. Saves write to a temp file in the same
// directory and rename over the old record, so readers only ever see a
// complete record.
type FileStore struct {
	dir    string
	maxLen int
	logger zerolog.Logger
}

// NewFileStore creates a file-backed cache rooted at cfg.Dir.
func NewFileStore(cfg config.CacheConfig, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create cache directory")
	}
	return &FileStore{
		dir:    cfg.Dir,
		maxLen: cfg.MaxContentBytes,
		logger: logger.With().Str("component", "FileStore").Logger(),
	}, nil
}

// Load reads the record for a source. A missing directory or record file
// means the source has never been cached.
func (fs *FileStore) Load(sourceID string) (*models.CacheRecord, bool, error) {
	data, err := os.ReadFile(fs.recordPath(sourceID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errorwrapper.NewCacheError("load", sourceID, err)
	}

	var record models.CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, errorwrapper.NewCacheError("load", sourceID, err)
	}
	return &record, true, nil
}

// Save replaces the source's record atomically via temp-write and rename.
func (fs *FileStore) Save(sourceID string, record *models.CacheRecord) error {
	sourceDir := filepath.Join(fs.dir, sourceID)
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		return errorwrapper.NewCacheError("save", sourceID, err)
	}

	stored := *record
	stored.Content = models.TruncateContent(stored.Content, fs.maxLen)

	data, err := json.MarshalIndent(&stored, "", "  ")
	if err != nil {
		return errorwrapper.NewCacheError("save", sourceID, err)
	}

	tmp, err := os.CreateTemp(sourceDir, recordFileName+".tmp-*")
	if err != nil {
		return errorwrapper.NewCacheError("save", sourceID, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errorwrapper.NewCacheError("save", sourceID, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errorwrapper.NewCacheError("save", sourceID, err)
	}

	if err := os.Rename(tmpPath, fs.recordPath(sourceID)); err != nil {
		_ = os.Remove(tmpPath)
		return errorwrapper.NewCacheError("save", sourceID, err)
	}

	fs.logger.Debug().Str("source_id", sourceID).Msg("Cache record saved")
	return nil
}

// Close is a no-op for the file backend.
func (fs *FileStore) Close() error {
	return nil
}

func (fs *FileStore) recordPath(sourceID string) string {
	return filepath.Join(fs.dir, sourceID, recordFileName)
}
