package anthropic

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	ai "github.com/mchlmayer/thumbpro"
)

// wrapError classifies an Anthropic SDK error.
// It extracts status codes and Retry-After headers for proper retry handling.
func wrapError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		// Not an API error, classified at the client boundary
		return err
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
	case code == 529 || (code >= 500 && code < 600):
		return ai.NewTransportError("server overloaded", code, true, err)
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
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil && time.Until(t) > 0 {
		return time.Until(t)
	}
	return 0
}
