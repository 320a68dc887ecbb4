package client

import (
	"time"

	ai "github.com/mchlmayer/thumbpro"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before a generation request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after a generation request completes successfully.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when a generation request fails.
	EventRequestError EventType = "request_error"

	// EventRetry fires when a retry event occurs (forwarded from the backoff scheduler).
	EventRetry EventType = "retry"

	// EventFallback fires when a candidate model is skipped for the next one.
	EventFallback EventType = "fallback"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Operation identifies the request ("text_to_image", "reference_edit").
	Operation string

	// RequestID correlates the events of one logical request.
	RequestID string

	// Provider and Model identify the candidate involved, when known.
	Provider ai.Provider
	Model    string

	// Duration is the elapsed time for completed and failed requests.
	Duration time.Duration

	// Error contains the error for EventRequestError and EventFallback.
	Error error

	// RetryEvent contains the underlying retry event for EventRetry.
	RetryEvent *RetryEvent

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}
