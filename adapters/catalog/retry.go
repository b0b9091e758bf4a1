package catalog

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	core "warehouse-quote/core/catalog"
	"warehouse-quote/internal/errors"
)

// LoadWithRetry is LoadInto with exponential backoff for unavailable sources.
// Malformed catalogs and missing settings fail on the first attempt.
func LoadWithRetry(ctx context.Context, src Source, holder *core.Holder, maxElapsed time.Duration, logger *zap.Logger) (*core.Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 15 * time.Second
	policy.MaxElapsedTime = maxElapsed

	var snap *core.Snapshot
	err := backoff.RetryNotify(
		func() error {
			var err error
			snap, err = LoadInto(ctx, src, holder)
			if err != nil && !errors.IsType(err, errors.TypeUnavailable) {
				return backoff.Permanent(err)
			}
			return err
		},
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("catalog source unavailable, retrying",
				zap.String("source", src.Name()),
				zap.Error(err),
				zap.Duration("next_attempt_in", next),
			)
		},
	)
	if err != nil {
		return nil, err
	}
	return snap, nil
}
