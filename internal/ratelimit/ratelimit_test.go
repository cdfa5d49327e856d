// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestExecute_SucceedsFirstAttempt(t *testing.T) {
	g := New(0, 5)

	calls := 0
	attempts, err := g.Execute(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestExecute_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	g := New(0, 0)

	calls := 0
	attempts, err := g.Execute(context.Background(), func() error {
		calls++
		return errBoom
	})

	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 1, exhausted.Attempts)
	assert.ErrorIs(t, err, errBoom)
}

func TestExecute_RetriesThenSucceeds(t *testing.T) {
	g := New(0, 5)

	calls := 0
	attempts, err := g.Execute(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestExecute_AttemptsNeverExceedBudget(t *testing.T) {
	g := New(0, 2)

	calls := 0
	attempts, err := g.Execute(context.Background(), func() error {
		calls++
		return errBoom
	})

	// 1 initial + 2 retries = 3 total attempts.
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
}

func TestExecute_SpacesConsecutiveCalls(t *testing.T) {
	delay := 20 * time.Millisecond
	g := New(delay, 0)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := g.Execute(context.Background(), func() error { return nil })
		require.NoError(t, err)
	}
	elapsed := time.Since(start)

	// First call is immediate, the next two wait out the spacing.
	assert.GreaterOrEqual(t, elapsed, 2*delay)
}

func TestExecute_SpacingAppliesAcrossRetries(t *testing.T) {
	delay := 15 * time.Millisecond
	g := New(delay, 2)

	start := time.Now()
	calls := 0
	attempts, err := g.Execute(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.GreaterOrEqual(t, elapsed, 2*delay)
}

func TestExecute_ContextCancelledDuringWait(t *testing.T) {
	g := New(500*time.Millisecond, 0)

	// Consume the initial token so the next call has to wait.
	_, err := g.Execute(context.Background(), func() error { return nil })
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	attempts, err := g.Execute(ctx, func() error {
		calls++
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, 0, attempts)
	assert.Equal(t, 0, calls)
}
