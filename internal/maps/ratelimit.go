package maps

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket shared by every call to one provider. Calls that
// fail with ErrRateLimited are retried with exponential backoff.
type Limiter struct {
	bucket     *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

// NewLimiter allows perSec calls per second with the given burst.
func NewLimiter(perSec float64, burst, maxRetries int, backoff time.Duration) *Limiter {
	if burst < 1 {
		burst = 1
	}
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &Limiter{
		bucket:     rate.NewLimiter(rate.Limit(perSec), burst),
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// Do waits for a token and runs call, retrying rate-limit rejections.
// A nil Limiter runs call once.
func (l *Limiter) Do(ctx context.Context, call func() error) error {
	if l == nil {
		return call()
	}
	for attempt := 0; ; attempt++ {
		if err := l.bucket.Wait(ctx); err != nil {
			return err
		}
		err := call()
		if err == nil || !errors.Is(err, ErrRateLimited) || attempt >= l.maxRetries {
			return err
		}
		timer := time.NewTimer(l.backoff << attempt)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
