package openai

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go"

	ai "github.com/mchlmayer/thumbpro"
)

// wrapError classifies an OpenAI SDK error.
// It extracts status codes and Retry-After headers for proper retry handling.
func wrapError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		// Not an API error, classified at the client boundary
		return err
	}

	switch apiErr.Code {
	case "content_policy_violation", "moderation_blocked":
		return ai.NewPolicyBlockedError("request rejected by content policy", apiErr.Code).WithModel(model)
	case "model_not_found":
		return ai.NewModelUnavailableError("model not available for this API key", apiErr.StatusCode, err).WithModel(model)
	case "insufficient_quota", "billing_hard_limit_reached":
		// Billing exhaustion is not retryable; the selector moves to the next candidate.
		return ai.NewModelUnavailableError("billing quota exhausted for this API key", apiErr.StatusCode, err).WithModel(model)
	}

	return categorizeStatusCode(apiErr.StatusCode, parseRetryAfter(apiErr.Response), err).WithModel(model)
}

// categorizeStatusCode maps an HTTP status code to an error kind.
func categorizeStatusCode(code int, retryAfter time.Duration, err error) *ai.Error {
	switch {
	case code == 429:
		return ai.NewQuotaError("rate limited", code, retryAfter, err)
	case code == 403 || code == 404:
		return ai.NewModelUnavailableError("model not available for this API key", code, err)
	case code == 401:
		return ai.NewConfigurationError("API key rejected", err)
	case code >= 500 && code < 600:
		return ai.NewTransportError("server error", code, true, err)
	default:
		return ai.NewTransportError("request rejected", code, false, err)
	}
}

// parseRetryAfter extracts the Retry-After duration from an HTTP response.
// Returns 0 if the header is not present or cannot be parsed.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	// Try parsing as seconds (most common)
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP-date (RFC 7231)
	if t, err := http.ParseTime(header); err == nil {
		delay := time.Until(t)
		if delay > 0 {
			return delay
		}
	}

	return 0
}
