package eventsvc

import (
	"errors"
	"fmt"
)

// IllegalArgumentError reports a request rejected by validation before any
// ledger or network I/O happened. Field names the offending input.
type IllegalArgumentError struct {
	Field  string
	Reason string
}

func (e *IllegalArgumentError) Error() string {
	return fmt.Sprintf("illegal argument %q: %s", e.Field, e.Reason)
}

func illegalArg(field, reason string) error {
	return &IllegalArgumentError{Field: field, Reason: reason}
}

// IsIllegalArgument reports whether err carries an IllegalArgumentError.
// The HTTP layer maps these to 400 responses.
func IsIllegalArgument(err error) bool {
	var iae *IllegalArgumentError
	return errors.As(err, &iae)
}

// NotificationEndpointError reports a failed webhook delivery. StatusCode is
// zero when the request never reached the endpoint. Delivery failures are
// logged and surfaced on the subscription handle; they never stop the
// listener.
type NotificationEndpointError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *NotificationEndpointError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("notification endpoint %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("notification endpoint %s: %v", e.Endpoint, e.Err)
}

func (e *NotificationEndpointError) Unwrap() error { return e.Err }
