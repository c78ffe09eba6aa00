package maps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterRetriesRateLimited(t *testing.T) {
	l := NewLimiter(1000, 1, 3, time.Millisecond)
	calls := 0
	err := l.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return ErrRateLimited
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestLimiterGivesUp(t *testing.T) {
	l := NewLimiter(1000, 1, 2, time.Millisecond)
	calls := 0
	err := l.Do(context.Background(), func() error {
		calls++
		return ErrRateLimited
	})
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, 3, calls)
}

func TestLimiterDoesNotRetryOtherErrors(t *testing.T) {
	l := NewLimiter(1000, 1, 3, time.Millisecond)
	boom := errors.New("boom")
	calls := 0
	err := l.Do(context.Background(), func() error {
		calls++
		return boom
	})
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestLimiterHonoursCancellation(t *testing.T) {
	l := NewLimiter(1000, 1, 5, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	err := l.Do(ctx, func() error {
		cancel()
		return ErrRateLimited
	})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNilLimiter(t *testing.T) {
	var l *Limiter
	calls := 0
	require.NoError(t, l.Do(context.Background(), func() error { calls++; return nil }))
	assert.Equal(t, 1, calls)
}
