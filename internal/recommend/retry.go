package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/metrics"
)

// generate calls the service up to MaxAttempts times. Waits double from
// RetryDelay up to MaxRetryWait, with up to one RetryDelay of jitter added.
func (r *Requester) generate(ctx context.Context, logger *zap.Logger, client llm.Client, req llm.GroundedRequest) (*llm.GroundedResponse, error) {
	var lastErr error
	attempts := 0

	for attempts < r.opts.MaxAttempts {
		if attempts > 0 {
			wait := backoff(r.opts.RetryDelay, attempts) + r.jitter(r.opts.RetryDelay)
			logger.Warn("retrying reasoning service call",
				zap.Int("attempt", attempts+1),
				zap.Duration("wait", wait),
				zap.Error(lastErr),
			)
			if err := r.sleep(ctx, wait); err != nil {
				break
			}
		}

		attempts++
		resp, err := r.callOnce(ctx, client, req)
		if err == nil {
			metrics.ServiceAttempts.WithLabelValues("ok").Inc()
			return resp, nil
		}
		metrics.ServiceAttempts.WithLabelValues("error").Inc()
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return nil, &ServiceError{
		Message:  fmt.Sprintf("reasoning service call failed after %d attempt(s)", attempts),
		Attempts: attempts,
		Cause:    lastErr,
	}
}

func (r *Requester) callOnce(ctx context.Context, client llm.Client, req llm.GroundedRequest) (*llm.GroundedResponse, error) {
	if r.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.RequestTimeout)
		defer cancel()
	}
	return client.GenerateGrounded(ctx, req)
}

// backoff returns base doubled once per earlier retry, capped at MaxRetryWait.
func backoff(base time.Duration, retry int) time.Duration {
	wait := base
	for i := 1; i < retry && wait < MaxRetryWait; i++ {
		wait *= 2
	}
	return min(wait, MaxRetryWait)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(limit)))
}
