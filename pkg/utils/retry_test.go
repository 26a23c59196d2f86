// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/councilsuite/instrument-approval-service/pkg/errors"
)

func fastRetryConfig(attempts int) RetryConfig {
	return NewRetryConfig(attempts, time.Millisecond, 5*time.Millisecond)
}

func TestRetryOnConflictSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := RetryOnConflict(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryOnConflictRetriesConflicts(t *testing.T) {
	calls := 0
	err := RetryOnConflict(context.Background(), fastRetryConfig(3), func() error {
		calls++
		if calls < 3 {
			return errs.NewConflict("revision mismatch")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnConflictDoesNotRetryBusinessErrors(t *testing.T) {
	calls := 0
	err := RetryOnConflict(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return errs.NewAlreadyVoted("member already voted")
	})
	require.Error(t, err)
	assert.IsType(t, errs.AlreadyVoted{}, err)
	assert.Equal(t, 1, calls)
}

func TestRetryOnConflictExhaustsBudget(t *testing.T) {
	calls := 0
	err := RetryOnConflict(context.Background(), fastRetryConfig(2), func() error {
		calls++
		return errs.NewConflict("revision mismatch")
	})
	require.Error(t, err)
	assert.IsType(t, errs.Conflict{}, err)
	assert.Equal(t, 2, calls)
}

func TestRetryOnConflictHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryOnConflict(ctx, NewRetryConfig(5, 50*time.Millisecond, time.Second), func() error {
		calls++
		cancel()
		return errs.NewConflict("revision mismatch")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
