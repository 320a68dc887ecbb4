package retry

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	ai "github.com/mchlmayer/thumbpro"
)

// statusCoder is an interface for errors that have an HTTP status code.
type statusCoder interface {
	StatusCode() int
}

// IsRetryable reports whether err may be retried by the scheduler: quota errors,
// and transport errors whose underlying failure looks transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return Classify(err).Retryable()
}

// ShouldRetry reports whether another attempt is allowed after attemptsSoFar
// attempts have failed with err.
func ShouldRetry(err error, attemptsSoFar, maxAttempts int) bool {
	return attemptsSoFar < maxAttempts && IsRetryable(err)
}

// Classify returns err as a classified error. Errors already classified by an
// adapter are returned unchanged; anything else is categorized from its status
// code or network behaviour, and becomes a transport error otherwise.
func Classify(err error) *ai.Error {
	if err == nil {
		return nil
	}

	var e *ai.Error
	if errors.As(err, &e) {
		return e
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ai.NewTransportError("request cancelled", 0, false, err)
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		return classifyStatusCode(sc.StatusCode(), err)
	}

	if isTransientNetworkError(err) {
		return ai.NewTransportError("network error", 0, true, err)
	}
	return ai.NewTransportError("backend request failed", 0, false, err)
}

// classifyStatusCode maps an HTTP status code from an unwrapped error.
func classifyStatusCode(code int, err error) *ai.Error {
	switch {
	case code == 429:
		return ai.NewQuotaError("rate limited", code, 0, err)
	case code == 401:
		return ai.NewConfigurationError("credential rejected", err)
	case code == 403 || code == 404:
		return ai.NewModelUnavailableError("model unavailable", code, err)
	case code >= 500 && code < 600:
		return ai.NewTransportError("server error", code, true, err)
	default:
		return ai.NewTransportError("backend request failed", code, false, err)
	}
}

// isTransientNetworkError checks for network-level transient errors.
func isTransientNetworkError(err error) bool {
	// Check for timeout errors
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Check for URL errors (wrapping network errors)
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET, syscall.ECONNREFUSED, syscall.ETIMEDOUT:
			return true
		}
	}

	// Fallback for errors that only carry text
	errMsg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection reset",
		"connection refused",
		"timeout",
		"temporary failure",
		"unexpected eof",
	} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
