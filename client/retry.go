package client

import (
	ai "github.com/mchlmayer/thumbpro"
	"github.com/mchlmayer/thumbpro/internal/retry"
)

// RetryEvent represents an observable occurrence during retry execution.
type RetryEvent = retry.Event

// RetryEventType identifies the kind of event occurring during retry execution.
type RetryEventType = retry.EventType

// Retry event type constants.
const (
	RetryEventAttemptStart  = retry.EventAttemptStart
	RetryEventAttemptFailed = retry.EventAttemptFailed
	RetryEventRetrying      = retry.EventRetrying
	RetryEventSuccess       = retry.EventSuccess
	RetryEventExhausted     = retry.EventExhausted
)

// toInternalRetryConfig converts an ai.RetryConfig, nil meaning the default.
func toInternalRetryConfig(cfg *ai.RetryConfig) retry.Config {
	if cfg == nil {
		return retry.DefaultConfig()
	}
	return retry.FromPublic(*cfg)
}

// IsRetryableError reports whether err is a quota or transient transport error
// that the client would retry.
func IsRetryableError(err error) bool {
	return retry.IsRetryable(err)
}
