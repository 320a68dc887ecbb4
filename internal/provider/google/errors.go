package google

import (
	"errors"

	"google.golang.org/genai"

	ai "github.com/mchlmayer/thumbpro"
)

// wrapError classifies a Google GenAI error from its HTTP and RPC status.
// Note: Google's genai.APIError doesn't expose headers, so Retry-After is not available.
func wrapError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) {
			// Not an API error (likely network), classified at the client boundary
			return err
		}
		apiErr = *apiErrPtr
	}

	if errorReason(apiErr.Details) == "API_KEY_INVALID" {
		return ai.NewConfigurationError("API key rejected", err).WithModel(model)
	}
	return categorize(apiErr.Code, apiErr.Status, err).WithModel(model)
}

// errorReason returns the reason of the google.rpc.ErrorInfo detail, if any.
func errorReason(details []map[string]any) string {
	for _, d := range details {
		if t, _ := d["@type"].(string); t != "type.googleapis.com/google.rpc.ErrorInfo" {
			continue
		}
		if reason, ok := d["reason"].(string); ok {
			return reason
		}
	}
	return ""
}

// categorize maps an HTTP status code and RPC status name to an error kind.
// The RPC status wins when both are present.
func categorize(code int, status string, err error) *ai.Error {
	switch status {
	case "RESOURCE_EXHAUSTED":
		return ai.NewQuotaError("quota exceeded", code, 0, err)
	case "NOT_FOUND", "PERMISSION_DENIED", "FAILED_PRECONDITION":
		return ai.NewModelUnavailableError("model not available for this API key", code, err)
	case "UNAUTHENTICATED":
		return ai.NewConfigurationError("API key rejected", err)
	case "UNAVAILABLE", "INTERNAL", "DEADLINE_EXCEEDED":
		return ai.NewTransportError("server error", code, true, err)
	}

	switch {
	case code == 429:
		return ai.NewQuotaError("quota exceeded", code, 0, err) // Rate limited
	case code == 404 || code == 403:
		return ai.NewModelUnavailableError("model not available for this API key", code, err)
	case code == 401:
		return ai.NewConfigurationError("API key rejected", err)
	case code >= 500 && code < 600:
		return ai.NewTransportError("server error", code, true, err)
	default:
		return ai.NewTransportError("request rejected", code, false, err)
	}
}
