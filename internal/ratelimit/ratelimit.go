// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit spaces outbound requests and retries failed operations.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// ExhaustedError reports that an operation failed on every allowed attempt.
// It wraps the error from the final attempt.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("exhausted %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Gate serializes outbound requests behind a shared token bucket and applies
// a bounded, constant-delay retry policy. Every network call in the pipeline
// (search pages and downloads alike) goes through one Gate, so the courtesy
// spacing holds across the whole run. Spacing is measured from the previous
// request, so the first request is not delayed.
type Gate struct {
	limiter *rate.Limiter
	retries int
}

// New creates a Gate enforcing at least delay between consecutive requests.
// retries is the number of re-attempts after a failure; zero means exactly
// one attempt.
func New(delay time.Duration, retries int) *Gate {
	if retries < 0 {
		retries = 0
	}
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Gate{
		limiter: rate.NewLimiter(limit, 1),
		retries: retries,
	}
}

// Execute runs op, waiting on the shared limiter before every attempt. On
// failure it re-attempts up to the configured retry budget with the same
// constant spacing. It returns the number of attempts made; after the last
// failure the returned error is an *ExhaustedError wrapping the final one.
// A context cancellation during a wait is returned as-is.
func (g *Gate) Execute(ctx context.Context, op func() error) (int, error) {
	var err error
	for attempt := 1; attempt <= g.retries+1; attempt++ {
		if werr := g.limiter.Wait(ctx); werr != nil {
			return attempt - 1, werr
		}
		if err = op(); err == nil {
			return attempt, nil
		}
	}
	return g.retries + 1, &ExhaustedError{Attempts: g.retries + 1, Err: err}
}
