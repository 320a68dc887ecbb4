package thumbpro

import "time"

// RetryConfig holds backoff configuration for quota and transient transport errors.
// Use DefaultRetryConfig() for sensible defaults or create custom configs.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (default: 4).
	// The initial request counts as attempt 1.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry (default: 2s).
	InitialDelay time.Duration

	// MaxDelay caps the base delay between retries (default: 30s).
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier (default: 2.0).
	Multiplier float64

	// Jitter adds up to this fraction of the base delay at random (default: 0.25).
	Jitter float64
}

// DefaultRetryConfig returns the default retry configuration.
//   - 4 max attempts
//   - 2 second initial delay
//   - 30 second max delay
//   - 2x exponential multiplier
//   - up to 25% additive jitter
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  4,
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.25,
	}
}

// DisabledRetryConfig returns a configuration that disables retries (single attempt).
func DisabledRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 1}
}
