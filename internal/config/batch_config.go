package config

import "time"

// BatchConfig defines how the orchestrator runs sources concurrently.
// Targets are rate-sensitive government servers, so concurrency defaults
// stay small.
type BatchConfig struct {
	Concurrency          int `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"omitempty,min=1"`
	RetryAttempts        int `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"omitempty,min=0"`
	RetryBaseDelayMillis int `json:"retry_base_delay_ms,omitempty" yaml:"retry_base_delay_ms,omitempty" validate:"omitempty,min=1"`
	RetryMaxDelayMillis  int `json:"retry_max_delay_ms,omitempty" yaml:"retry_max_delay_ms,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultBatchConfig creates default batch configuration.
func NewDefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Concurrency:          DefaultBatchConcurrency,
		RetryAttempts:        DefaultBatchRetryAttempts,
		RetryBaseDelayMillis: DefaultBatchRetryBaseMillis,
		RetryMaxDelayMillis:  DefaultBatchRetryMaxMillis,
	}
}

// RetryBaseDelay returns the base retry delay as a duration.
func (c BatchConfig) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMillis) * time.Millisecond
}

// RetryMaxDelay returns the retry delay cap as a duration.
func (c BatchConfig) RetryMaxDelay() time.Duration {
	return time.Duration(c.RetryMaxDelayMillis) * time.Millisecond
}
