package services

import (
	"context"
	"errors"
	"time"

	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/taxerr"
)

// storeCaller bounds every store call with a timeout and retries it once
// when the store is unavailable.
type storeCaller struct {
	timeout time.Duration
	retry   StoreRetry
}

func (s storeCaller) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return s.retry.Do(ctx, op, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return classifyStoreError(op, fn(callCtx))
	})
}

func classifyStoreError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrStaleStatus), errors.Is(err, db.ErrUniqueViolation):
		return err
	default:
		return taxerr.StoreUnavailable(op, err)
	}
}
