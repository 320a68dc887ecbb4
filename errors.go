package thumbpro

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies errors by how they should be handled.
type ErrorKind string

const (
	// KindConfiguration indicates missing or rejected credentials.
	// Raised at initialization; never retried.
	KindConfiguration ErrorKind = "configuration"

	// KindQuotaExceeded indicates the backend signaled rate or volume limiting.
	// Retried with backoff up to the configured bound.
	KindQuotaExceeded ErrorKind = "quota_exceeded"

	// KindPolicyBlocked indicates the backend refused the input on content-safety grounds.
	KindPolicyBlocked ErrorKind = "policy_blocked"

	// KindModelUnavailable indicates the candidate model is not accessible to this
	// credential. The model selector advances to the next candidate.
	KindModelUnavailable ErrorKind = "model_unavailable"

	// KindMalformedResponse indicates the response lacked the expected fields or parts.
	KindMalformedResponse ErrorKind = "malformed_response"

	// KindInterrupted indicates generation stopped for a non-safety reason other than
	// normal completion.
	KindInterrupted ErrorKind = "interrupted"

	// KindTransport indicates a network or protocol failure. Retried only when Temporary.
	KindTransport ErrorKind = "transport"

	// KindInvalidInput indicates the request itself was invalid.
	KindInvalidInput ErrorKind = "invalid_input"
)

// CategorizedError is an error that provides information about how it should be handled.
type CategorizedError interface {
	error
	Kind() ErrorKind
	Retryable() bool           // true for quota errors and temporary transport errors
	StatusCode() int           // HTTP status code if applicable, 0 otherwise
	RetryAfter() time.Duration // suggested retry delay from server, 0 if not available
}

// Error is a classified error produced at the backend-adapter boundary.
type Error struct {
	Class        ErrorKind
	Msg          string
	Model        string        // candidate model that produced the error, if any
	Code         int           // HTTP status code, 0 if not applicable
	FinishReason string        // backend terminal status for policy/interrupted errors
	RetryDelay   time.Duration // from Retry-After header, 0 if not available
	Temporary    bool          // transport errors only: underlying failure looks transient
	Cause        error         // underlying error, kept as diagnostic detail
}

// Error returns the error message.
func (e *Error) Error() string {
	msg := e.Msg
	if e.Model != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Model)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns the error kind.
func (e *Error) Kind() ErrorKind {
	return e.Class
}

// Retryable reports whether the backoff scheduler may retry the operation.
func (e *Error) Retryable() bool {
	switch e.Class {
	case KindQuotaExceeded:
		return true
	case KindTransport:
		return e.Temporary
	default:
		return false
	}
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// RetryAfter returns the suggested retry delay, or 0 if not available.
func (e *Error) RetryAfter() time.Duration {
	return e.RetryDelay
}

// UserMessage renders the error as guidance for the person using the UI.
func (e *Error) UserMessage() string {
	switch e.Class {
	case KindConfiguration:
		return "The image service is not configured. Check the API key and restart."
	case KindQuotaExceeded:
		return "The image service is busy right now. Please try again shortly."
	case KindPolicyBlocked:
		if e.FinishReason != "" {
			return fmt.Sprintf("The request was blocked by the content policy (%s). Try softening or rephrasing the prompt.", e.FinishReason)
		}
		return "The request was blocked by the content policy. Try softening or rephrasing the prompt."
	case KindModelUnavailable:
		return "No image model is currently available for this account."
	case KindInvalidInput:
		return e.Msg
	default:
		return fmt.Sprintf("Image generation failed: %s", e.Error())
	}
}

// WithModel returns a copy of e attributed to the given candidate model.
func (e *Error) WithModel(model string) *Error {
	c := *e
	c.Model = model
	return &c
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Class: kind, Msg: msg, Cause: cause}
}

// NewConfigurationError creates an error for missing or rejected credentials.
func NewConfigurationError(msg string, cause error) *Error {
	return &Error{Class: KindConfiguration, Msg: msg, Cause: cause}
}

// NewQuotaError creates a retryable rate-limit error.
func NewQuotaError(msg string, statusCode int, retryAfter time.Duration, cause error) *Error {
	return &Error{
		Class:      KindQuotaExceeded,
		Msg:        msg,
		Code:       statusCode,
		RetryDelay: retryAfter,
		Cause:      cause,
	}
}

// NewPolicyBlockedError creates a content-safety refusal carrying the backend status.
func NewPolicyBlockedError(msg, reason string) *Error {
	return &Error{Class: KindPolicyBlocked, Msg: msg, FinishReason: reason}
}

// NewModelUnavailableError creates an error for a model this credential cannot use.
func NewModelUnavailableError(msg string, statusCode int, cause error) *Error {
	return &Error{Class: KindModelUnavailable, Msg: msg, Code: statusCode, Cause: cause}
}

// NewMalformedResponseError creates an error for a response without usable content.
func NewMalformedResponseError(msg string) *Error {
	return &Error{Class: KindMalformedResponse, Msg: msg}
}

// NewInterruptedError creates an error for a non-normal, non-safety terminal status.
func NewInterruptedError(reason string) *Error {
	return &Error{
		Class:        KindInterrupted,
		Msg:          fmt.Sprintf("generation stopped unexpectedly (finish reason: %s)", reason),
		FinishReason: reason,
	}
}

// NewTransportError creates a network or protocol error.
func NewTransportError(msg string, statusCode int, temporary bool, cause error) *Error {
	return &Error{
		Class:     KindTransport,
		Msg:       msg,
		Code:      statusCode,
		Temporary: temporary,
		Cause:     cause,
	}
}

// NewInvalidInputError creates an error for an invalid request.
func NewInvalidInputError(msg string) *Error {
	return &Error{Class: KindInvalidInput, Msg: msg}
}

// KindOf returns the kind of the outermost categorized error in err's chain,
// or the empty kind if there is none.
func KindOf(err error) ErrorKind {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Kind()
	}
	return ""
}

// IsKind reports whether err is categorized as kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// IsRetryable reports whether err is categorized as retryable.
func IsRetryable(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Retryable()
	}
	return false
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// RetryAfterOf returns the retry delay from a categorized error, or 0.
func RetryAfterOf(err error) time.Duration {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.RetryAfter()
	}
	return 0
}

// ImageError represents an error while decoding an inbound reference image.
type ImageError struct {
	Op     string // "decode", "sniff", "read", "crop" or "encode"
	Source string // "base64", "data-url" or a file name
	Err    error
}

// Error returns a formatted error message describing the image processing failure.
func (e *ImageError) Error() string {
	return fmt.Sprintf("image %s error for %s: %v", e.Op, e.Source, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ImageError) Unwrap() error {
	return e.Err
}
