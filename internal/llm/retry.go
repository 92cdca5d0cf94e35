package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultMaxAttempts bounds the retry loop per call.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the linear backoff unit: attempt n sleeps n*base.
	DefaultBaseDelay = 2 * time.Second
)

// Retrier wraps a Client with bounded linear-backoff retry. Only errors
// tagged with a retryable kind (timeout, rate limit, server unavailable)
// are retried; everything else fails immediately. An exhausted or
// non-retryable call returns the last error — the caller treats that unit
// of work as failed for this run and picks it up again on the next one.
type Retrier struct {
	client      Client
	maxAttempts int
	baseDelay   time.Duration
	logger      *zap.Logger

	sleep func(time.Duration) // test seam
}

// NewRetrier creates a retrier around client. Zero maxAttempts or baseDelay
// fall back to the defaults.
func NewRetrier(client Client, maxAttempts int, baseDelay time.Duration, logger *zap.Logger) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrier{
		client:      client,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
		sleep:       time.Sleep,
	}
}

// Call sends the prompt, retrying transient failures. Backoff is linear:
// after attempt n (1-based) it sleeps n*baseDelay before attempt n+1.
func (r *Retrier) Call(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		text, err := r.client.CompleteWithSystem(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		kind := KindOf(err)
		if !kind.Retryable() {
			r.logger.Warn("llm call failed, not retryable",
				zap.String("kind", kind.String()),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return "", err
		}

		if attempt == r.maxAttempts {
			break
		}

		delay := time.Duration(attempt) * r.baseDelay
		r.logger.Warn("llm call failed, retrying",
			zap.String("kind", kind.String()),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		r.sleep(delay)
	}

	r.logger.Warn("llm call retries exhausted",
		zap.Int("attempts", r.maxAttempts),
		zap.Error(lastErr))
	return "", lastErr
}
