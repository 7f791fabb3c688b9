package cachestore

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS source_cache (
	source_id     TEXT PRIMARY KEY,
	signature     TEXT NOT NULL,
	content       TEXT NOT NULL,
	etag          TEXT NOT NULL DEFAULT '',
	last_modified TEXT NOT NULL DEFAULT '',
	fetched_at    TEXT NOT NULL
);`

const upsertRecord = `
INSERT INTO source_cache (source_id, signature, content, etag, last_modified, fetched_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET
	signature     = excluded.signature,
	content       = excluded.content,
	etag          = excluded.etag,
	last_modified = excluded.last_modified,
	fetched_at    = excluded.fetched_at;`

// SQLiteStore keeps all cache records in a single SQLite database.
// Upserts run in implicit transactions, which gives the same
// record-level atomicity as the file backend's rename.
type SQLiteStore struct {
	db     *sql.DB
	maxLen int
	logger zerolog.Logger
}

// NewSQLiteStore opens (creating if needed) the cache database at
// cfg.SQLitePath and ensures the schema exists.
func NewSQLiteStore(cfg config.CacheConfig, logger zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to create cache database directory")
		}
	}

	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open cache database")
	}
	// The driver serializes access; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, errorwrapper.WrapError(err, "failed to initialize cache schema")
	}

	return &SQLiteStore{
		db:     db,
		maxLen: cfg.MaxContentBytes,
		logger: logger.With().Str("component", "SQLiteStore").Logger(),
	}, nil
}

// Load reads the record for a source. No row means never cached.
func (ss *SQLiteStore) Load(sourceID string) (*models.CacheRecord, bool, error) {
	row := ss.db.QueryRow(
		`SELECT signature, content, etag, last_modified, fetched_at FROM source_cache WHERE source_id = ?`,
		sourceID,
	)

	var record models.CacheRecord
	var fetchedAt string
	err := row.Scan(&record.Signature, &record.Content, &record.ETag, &record.LastModified, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errorwrapper.NewCacheError("load", sourceID, err)
	}

	if ts, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
		record.FetchedAt = ts
	}
	return &record, true, nil
}

// Save upserts the source's record.
func (ss *SQLiteStore) Save(sourceID string, record *models.CacheRecord) error {
	content := models.TruncateContent(record.Content, ss.maxLen)
	_, err := ss.db.Exec(upsertRecord,
		sourceID,
		record.Signature,
		content,
		record.ETag,
		record.LastModified,
		record.FetchedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return errorwrapper.NewCacheError("save", sourceID, err)
	}

	ss.logger.Debug().Str("source_id", sourceID).Msg("Cache record saved")
	return nil
}

// Close closes the underlying database.
func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
