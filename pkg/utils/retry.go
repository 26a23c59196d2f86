// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

// Package utils provides utility functions for the instrument approval service.
package utils

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	errs "github.com/councilsuite/instrument-approval-service/pkg/errors"
)

// RetryConfig holds retry configuration for operations
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// NewRetryConfig creates a RetryConfig with specified parameters
func NewRetryConfig(maxAttempts int, baseDelay, maxDelay time.Duration) RetryConfig {
	return RetryConfig{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
	}
}

// RetryOnConflict executes fn until it succeeds, returns a non-conflict error,
// or the attempt budget runs out. The delay between attempts follows
// baseDelay * 2^(attempt-1), capped at maxDelay.
//
// Only errors of kind Conflict are retried: a vote transaction that lost an
// optimistic-revision race reloads fresh state on the next attempt, while
// business rejections (AlreadyVoted, AlreadyResolved, ...) propagate at once.
func RetryOnConflict(ctx context.Context, config RetryConfig, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * config.BaseDelay
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}

			slog.WarnContext(ctx, "retrying after revision conflict",
				"attempt", attempt+1,
				"total_attempts", config.MaxAttempts,
				"retry_delay_ms", delay.Milliseconds(),
			)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled: %w", ctx.Err())
			}
		}

		err := fn()
		if err == nil {
			if attempt > 0 {
				slog.InfoContext(ctx, "retry succeeded",
					"attempt", attempt+1,
					"total_attempts", config.MaxAttempts,
				)
			}
			return nil
		}

		var conflictErr errs.Conflict
		if !stderrors.As(err, &conflictErr) {
			return err
		}

		lastErr = err
		slog.WarnContext(ctx, "attempt hit revision conflict",
			"attempt", attempt+1,
			"total_attempts", config.MaxAttempts,
			"error", err,
		)
	}

	return errs.NewConflict(fmt.Sprintf("conflict retry budget of %d attempts exhausted", config.MaxAttempts), lastErr)
}
