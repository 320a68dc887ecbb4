package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/mchlmayer/thumbpro"
)

func fastConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:  maxAttempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoSuccess(t *testing.T) {
	callCount := 0

	result, err := Do(context.Background(), DefaultConfig(), func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnQuotaError(t *testing.T) {
	callCount := 0

	result, err := Do(context.Background(), fastConfig(3), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", ai.NewQuotaError("rate limited", 429, 0, nil)
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestDoRetryOnTemporaryTransportError(t *testing.T) {
	callCount := 0

	_, err := Do(context.Background(), fastConfig(2), func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.Error(t, err)
	assert.Equal(t, 2, callCount)
}

func TestDoNoRetryOnNonRetryableErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"policy", ai.NewPolicyBlockedError("blocked", "IMAGE_SAFETY")},
		{"unavailable", ai.NewModelUnavailableError("no backend available for image_synthesis", 0, nil)},
		{"malformed", ai.NewMalformedResponseError("no content")},
		{"opaque", errors.New("permanent error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			callCount := 0
			_, err := Do(context.Background(), fastConfig(5), func() (string, error) {
				callCount++
				return "", tt.err
			})

			assert.Equal(t, tt.err, err)
			assert.Equal(t, 1, callCount)
		})
	}
}

func TestDoExhaustsAttemptsOnQuota(t *testing.T) {
	callCount := 0
	quotaErr := ai.NewQuotaError("rate limited", 429, 0, nil)

	_, err := Do(context.Background(), fastConfig(3), func() (string, error) {
		callCount++
		return "", quotaErr
	})

	assert.Equal(t, 3, callCount)
	assert.Equal(t, quotaErr, err, "terminal error is the last quota error, unchanged")
	assert.True(t, ai.IsKind(err, ai.KindQuotaExceeded))
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", ai.NewQuotaError("rate limited", 429, 0, nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
	assert.Less(t, time.Since(start), 900*time.Millisecond, "cancellation should interrupt the wait")
}

func TestDoWithZeroMaxAttemptsRunsOnce(t *testing.T) {
	callCount := 0
	_, err := Do(context.Background(), Config{}, func() (string, error) {
		callCount++
		return "", ai.NewQuotaError("rate limited", 429, 0, nil)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDoHonorsRetryAfterFromError(t *testing.T) {
	cfg := Config{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}

	var callTimes []time.Time
	_, err := Do(context.Background(), cfg, func() (string, error) {
		callTimes = append(callTimes, time.Now())
		if len(callTimes) < 2 {
			return "", ai.NewQuotaError("rate limited", 429, 50*time.Millisecond, nil)
		}
		return "success", nil
	})

	require.NoError(t, err)
	require.Len(t, callTimes, 2)
	assert.GreaterOrEqual(t, callTimes[1].Sub(callTimes[0]), 45*time.Millisecond, "should honor RetryAfter of 50ms")
}

func TestDoWithEvents(t *testing.T) {
	t.Run("emits the full sequence on exhaustion", func(t *testing.T) {
		events := make(chan Event, 20)

		_, err := DoWithEvents(context.Background(), fastConfig(2), events, func() (string, error) {
			return "", ai.NewQuotaError("rate limited", 429, 0, nil)
		})
		close(events)
		require.Error(t, err)

		var types []EventType
		for ev := range events {
			types = append(types, ev.Type)
			assert.False(t, ev.Timestamp.IsZero())
		}
		assert.Equal(t, []EventType{
			EventAttemptStart, EventAttemptFailed, EventRetrying,
			EventAttemptStart, EventAttemptFailed,
			EventExhausted,
		}, types)
	})

	t.Run("retrying event carries delay and kind", func(t *testing.T) {
		events := make(chan Event, 20)
		calls := 0

		_, err := DoWithEvents(context.Background(), fastConfig(3), events, func() (int, error) {
			calls++
			if calls == 1 {
				return 0, ai.NewQuotaError("rate limited", 429, 0, nil)
			}
			return 42, nil
		})
		close(events)
		require.NoError(t, err)

		var retrying *Event
		for ev := range events {
			if ev.Type == EventRetrying {
				e := ev
				retrying = &e
			}
		}
		require.NotNil(t, retrying)
		assert.Equal(t, 1, retrying.Attempt)
		assert.Equal(t, ai.KindQuotaExceeded, retrying.Kind)
		assert.GreaterOrEqual(t, retrying.Delay, time.Millisecond)
	})

	t.Run("full channel does not block", func(t *testing.T) {
		events := make(chan Event) // unbuffered, never read
		result, err := DoWithEvents(context.Background(), fastConfig(1), events, func() (string, error) {
			return "ok", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "ok", result)
	})
}
