package config

import "time"

// FetcherConfig defines HTTP fetch behavior for all sources.
type FetcherConfig struct {
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	MaxContentSize     int    `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"`
	FollowRedirects    bool   `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int    `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"omitempty,min=0"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// NewDefaultFetcherConfig creates default fetcher configuration.
func NewDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		TimeoutSeconds:     DefaultFetcherTimeoutSecs,
		UserAgent:          DefaultFetcherUserAgent,
		MaxContentSize:     DefaultFetcherMaxContentSize,
		FollowRedirects:    true,
		MaxRedirects:       DefaultFetcherMaxRedirects,
		InsecureSkipVerify: false,
	}
}

// Timeout returns the fetch timeout as a duration.
func (c FetcherConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
