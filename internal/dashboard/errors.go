package dashboard

import (
	"errors"
	"fmt"
)

// GenericErrorMessage is shown for every failure except a 404 with a detail.
const GenericErrorMessage = "Could not fetch weather data. Please try again."

// NotFoundError is a 404 from the backend that carried a detail message.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return e.Detail
}

// TransportError covers network failures, timeouts and unexpected statuses.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is a payload that could not be decoded or failed
// shape validation.
type MalformedResponseError struct {
	Op     string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ErrorMessage maps a fetch failure to the text shown to the user.
func ErrorMessage(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) && nf.Detail != "" {
		return nf.Detail
	}
	return GenericErrorMessage
}
