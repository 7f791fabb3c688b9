package orchestrator

import (
	"context"
	"time"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/rs/zerolog"
)

// RetryPolicy retries transient fetch failures with capped exponential
// backoff. Non-transient errors (4xx other than 429, parse failures)
// return immediately.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	logger    zerolog.Logger
}

// NewRetryPolicy creates a retry policy from batch configuration.
func NewRetryPolicy(cfg config.BatchConfig, logger zerolog.Logger) RetryPolicy {
	return RetryPolicy{
		Attempts:  cfg.RetryAttempts,
		BaseDelay: cfg.RetryBaseDelay(),
		MaxDelay:  cfg.RetryMaxDelay(),
		logger:    logger.With().Str("component", "RetryPolicy").Logger(),
	}
}

// Do runs fn up to Attempts+1 times. Only transient fetch errors are
// retried; context cancellation aborts the backoff wait.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || !errorwrapper.IsTransientFetchError(err) {
			return err
		}
		if attempt >= p.Attempts {
			return err
		}

		delay := p.backoff(attempt)
		p.logger.Debug().
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Err(err).
			Msg("Transient fetch failure, retrying")

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
	}
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := p.BaseDelay << attempt
	if delay > p.MaxDelay || delay <= 0 {
		delay = p.MaxDelay
	}
	return delay
}
