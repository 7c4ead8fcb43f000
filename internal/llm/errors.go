package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyResponse is returned when the model call succeeded at the transport
// level but produced no usable text.
var ErrEmptyResponse = errors.New("model returned no usable text")

// TransportError wraps a network or connectivity failure reaching the model.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// QuotaError is returned when the model rejects a request due to rate limit
// or quota exhaustion. RetryAfter is zero when the provider gave no hint.
type QuotaError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *QuotaError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("model quota exhausted (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("model quota exhausted: %v", e.Err)
}

func (e *QuotaError) Unwrap() error {
	return e.Err
}
