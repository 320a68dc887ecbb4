// Package retry implements the backoff scheduler used around every generation
// request: bounded attempts with capped exponential backoff for quota and
// transient transport errors.
package retry

import (
	"math"
	"math/rand"
	"time"

	ai "github.com/mchlmayer/thumbpro"
)

// Config holds retry configuration parameters.
type Config struct {
	// MaxAttempts is the maximum number of attempts (default: 4).
	// The initial request counts as attempt 1.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry (default: 2s).
	InitialDelay time.Duration

	// MaxDelay caps the base delay between retries (default: 30s).
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier (default: 2.0).
	Multiplier float64

	// Jitter adds a random delay in [0, Jitter*base) on top of the base delay (default: 0.25).
	Jitter float64
}

// DefaultConfig returns the default retry configuration.
//   - 4 max attempts
//   - 2 second initial delay
//   - 30 second max delay
//   - 2x exponential multiplier
//   - up to 25% additive jitter
func DefaultConfig() Config {
	return FromPublic(ai.DefaultRetryConfig())
}

// Disabled returns a configuration that disables retries (single attempt).
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// FromPublic converts the root package's RetryConfig.
func FromPublic(cfg ai.RetryConfig) Config {
	return Config{
		MaxAttempts:  cfg.MaxAttempts,
		InitialDelay: cfg.InitialDelay,
		MaxDelay:     cfg.MaxDelay,
		Multiplier:   cfg.Multiplier,
		Jitter:       cfg.Jitter,
	}
}

// Backoff returns the base delay after the given attempt (0-indexed), without jitter.
// Formula: min(maxDelay, initialDelay * multiplier^attempt).
// Backoff is non-decreasing in attempt for multipliers >= 1 and plateaus at MaxDelay.
func (c Config) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if c.MaxDelay > 0 && (delay > float64(c.MaxDelay) || math.IsInf(delay, 1) || math.IsNaN(delay)) {
		delay = float64(c.MaxDelay)
	}
	return time.Duration(delay)
}

// Delay returns the wait after the given attempt (0-indexed): Backoff plus a
// uniformly random jitter in [0, Jitter*Backoff).
func (c Config) Delay(attempt int) time.Duration {
	base := c.Backoff(attempt)
	if c.Jitter <= 0 || base <= 0 {
		return base
	}
	return base + time.Duration(rand.Float64()*c.Jitter*float64(base))
}
