package services

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/unations/tax-engine/internal/taxerr"
	"go.uber.org/zap"
)

// StoreRetry retries an operation once, with backoff, when it fails with
// StoreUnavailable. Every other error is returned immediately.
type StoreRetry struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	logger          *zap.Logger
}

// NewStoreRetry creates a single-retry policy starting at initial.
func NewStoreRetry(initial time.Duration, log *zap.Logger) StoreRetry {
	return StoreRetry{InitialInterval: initial, MaxInterval: 4 * initial, logger: log}
}

// Do runs fn, retrying once on StoreUnavailable.
func (r StoreRetry) Do(ctx context.Context, op string, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.InitialInterval
	b.MaxInterval = r.MaxInterval
	b.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !taxerr.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		if attempt == 1 && r.logger != nil {
			r.logger.Warn("Store unavailable, retrying once",
				zap.String("operation", op),
				zap.Error(err))
		}
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, 1), ctx))
}
