package retry

import (
	"context"
	"time"
)

// State is the bookkeeping of one Do call. It lives on the call's stack and
// is never shared between calls.
type State struct {
	// Attempt is the number of attempts made so far.
	Attempt int

	// NextDelay is the wait before the next attempt, 0 before the first failure.
	NextDelay time.Duration
}

// effectiveDelay returns the delay to use, honoring server's Retry-After if larger.
func effectiveDelay(configuredDelay time.Duration, err error) time.Duration {
	serverDelay := Classify(err).RetryAfter()
	if serverDelay > configuredDelay {
		return serverDelay
	}
	return configuredDelay
}

// Do executes fn with retry logic.
// It respects context cancellation during backoff waits.
// Returns the result on success, or the last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	return DoWithEvents(ctx, cfg, nil, fn)
}

// DoWithEvents is like Do but emits events for observability.
// Events are sent non-blocking; if the channel is full, events are dropped.
// Pass nil for events to disable event emission (equivalent to Do).
func DoWithEvents[T any](ctx context.Context, cfg Config, events chan<- Event, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var st State
	for st.Attempt < maxAttempts {
		st.Attempt++
		emit(events, Event{
			Type:        EventAttemptStart,
			Attempt:     st.Attempt,
			MaxAttempts: maxAttempts,
		})

		result, err := fn()
		if err == nil {
			emit(events, Event{
				Type:        EventSuccess,
				Attempt:     st.Attempt,
				MaxAttempts: maxAttempts,
			})
			return result, nil
		}

		lastErr = err
		retryable := IsRetryable(err)

		emit(events, Event{
			Type:        EventAttemptFailed,
			Attempt:     st.Attempt,
			MaxAttempts: maxAttempts,
			Error:       err,
			Kind:        Classify(err).Kind(),
			Retryable:   retryable && st.Attempt < maxAttempts,
		})

		if !retryable {
			return zero, err
		}

		// Don't sleep after the last attempt
		if !ShouldRetry(err, st.Attempt, maxAttempts) {
			break
		}

		st.NextDelay = effectiveDelay(cfg.Delay(st.Attempt-1), err)
		emit(events, Event{
			Type:        EventRetrying,
			Attempt:     st.Attempt,
			MaxAttempts: maxAttempts,
			Error:       err,
			Kind:        Classify(err).Kind(),
			Delay:       st.NextDelay,
			Retryable:   true,
		})

		timer := time.NewTimer(st.NextDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	emit(events, Event{
		Type:        EventExhausted,
		Attempt:     st.Attempt,
		MaxAttempts: maxAttempts,
		Error:       lastErr,
		Kind:        Classify(lastErr).Kind(),
	})

	return zero, lastErr
}
