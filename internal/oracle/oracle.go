// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package oracle adapts the language-model classification oracle behind a
// narrow interface: structured text in, raw label text out. Stages own their
// prompts and parse responses strictly; the oracle never executes or
// interprets response content.
// See docs/ARCHITECTURE § Oracle Adapter.
package oracle

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Request is one oracle call: a system prompt establishing the task and a
// user prompt carrying the item under classification.
type Request struct {
	System string
	User   string

	// MaxTokens bounds the response length. Zero means the backend default.
	MaxTokens int

	// Temperature is the sampling temperature. Classification stages use 0.
	Temperature float64
}

// Backend performs a single oracle call. Implementations handle transport
// and authentication; tests supply a mock. Per the Strategy pattern used by
// the harvest backends.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// CallWithRetry invokes the backend with exponential backoff on failure.
// After maxRetries unsuccessful attempts the last error is returned; callers
// convert it into their stage's sentinel label rather than failing the batch.
func CallWithRetry(ctx context.Context, backend Backend, req Request, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			if err := Pause(ctx, backoff); err != nil {
				return "", err
			}
		}

		resp, err := backend.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// Pause blocks for d or until ctx is cancelled. Stages use it between
// consecutive calls to stay under provider rate limits.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
