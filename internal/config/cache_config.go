package config

// CacheConfig selects and configures the per-source cache backend.
// "file" stores one directory per source with atomic rename replace;
// "sqlite" stores records in a single database with upsert semantics.
type CacheConfig struct {
	Backend         string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,oneof=file sqlite"`
	Dir             string `json:"dir,omitempty" yaml:"dir,omitempty"`
	SQLitePath      string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	MaxContentBytes int    `json:"max_content_bytes,omitempty" yaml:"max_content_bytes,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultCacheConfig creates default cache configuration.
func NewDefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Backend:         DefaultCacheBackend,
		Dir:             DefaultCacheDir,
		SQLitePath:      DefaultCacheSQLitePath,
		MaxContentBytes: DefaultCacheMaxContentBytes,
	}
}
