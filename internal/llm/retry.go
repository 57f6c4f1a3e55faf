package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// RetryProvider repeats requests that failed for transient reasons. A
// learner is waiting on the reply, so the budget is small.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	var err error
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			wait := r.wait(attempt-1, err)
			slog.Debug("retrying llm request", "purpose", req.Purpose, "attempt", attempt+1, "wait", wait)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &invalidSeen) {
			return nil, err
		}
	}
	return nil, err
}

// retryable reports whether err may succeed on another attempt. A reply
// that failed the schema is asked for again once only.
func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var (
		truncated *TruncatedError
		rejected  *RejectedError
		invalid   *InvalidOutputError
	)
	switch {
	case errors.As(err, &truncated), errors.As(err, &rejected):
		return false
	case errors.As(err, &invalid):
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	}
	return true
}

// wait is the pause before the retry following attempt n, with 20% jitter.
// A rate limit hint from the provider wins.
func (r *RetryProvider) wait(n int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := r.config.InitialWait
	for i := 0; i < n && d < r.config.MaxWait; i++ {
		d = time.Duration(float64(d) * r.config.Multiplier)
	}
	if r.config.MaxWait > 0 && d > r.config.MaxWait {
		d = r.config.MaxWait
	}
	jitter := time.Duration(float64(d) * 0.2 * (2*rand.Float64() - 1))
	return max(d+jitter, 0)
}
