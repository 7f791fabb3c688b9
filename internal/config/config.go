package config

const (
	// Fetcher defaults
	DefaultFetcherTimeoutSecs    = 20
	DefaultFetcherUserAgent      = "regulatory-data-bridge/1.0 (+https://github.com/aoteroDeployFarm/regulatory-data-bridge)"
	DefaultFetcherMaxContentSize = 5 * 1024 * 1024
	DefaultFetcherMaxRedirects   = 10

	// Extractor defaults
	DefaultExtractorSelector      = "main, article, section, h1, h2, h3"
	DefaultExtractorMinPDFTextLen = 16

	// Cache backends
	CacheBackendFile   = "file"
	CacheBackendSQLite = "sqlite"

	// Cache defaults
	DefaultCacheBackend         = CacheBackendFile
	DefaultCacheDir             = "data/cache"
	DefaultCacheSQLitePath      = "data/cache/cache.db"
	DefaultCacheMaxContentBytes = 512 * 1024

	// Batch defaults
	DefaultBatchConcurrency     = 8
	DefaultBatchRetryAttempts   = 2
	DefaultBatchRetryBaseMillis = 500
	DefaultBatchRetryMaxMillis  = 10000

	// Log defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// GlobalConfig aggregates all engine configuration sections.
type GlobalConfig struct {
	FetcherConfig   FetcherConfig   `json:"fetcher_config,omitempty" yaml:"fetcher_config,omitempty"`
	ExtractorConfig ExtractorConfig `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	CacheConfig     CacheConfig     `json:"cache_config,omitempty" yaml:"cache_config,omitempty"`
	BatchConfig     BatchConfig     `json:"batch_config,omitempty" yaml:"batch_config,omitempty"`
	LogConfig       LogConfig       `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig with all defaults applied.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		FetcherConfig:   NewDefaultFetcherConfig(),
		ExtractorConfig: NewDefaultExtractorConfig(),
		CacheConfig:     NewDefaultCacheConfig(),
		BatchConfig:     NewDefaultBatchConfig(),
		LogConfig:       NewDefaultLogConfig(),
	}
}
