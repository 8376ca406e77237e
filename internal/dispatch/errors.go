package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperation marks a Resolve call with an operation outside the
	// enumerated set.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrMissingParam marks a descriptor build aborted because a required
	// identifier was absent.
	ErrMissingParam = errors.New("missing parameter")
	// ErrNetwork marks transport-level failures.
	ErrNetwork = errors.New("network failure")
	// ErrHTTP marks responses with status >= 400.
	ErrHTTP = errors.New("http error")
	// ErrParse marks response bodies that were not valid JSON where JSON was
	// expected.
	ErrParse = errors.New("parse failure")
)

// HTTPError carries a failed response's status and parsed JSON error body.
type HTTPError struct {
	Operation string
	Status    int
	Body      json.RawMessage
}

func (e *HTTPError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("%s returned %d: %s", e.Operation, e.Status, e.Body)
	}
	return fmt.Sprintf("%s returned %d", e.Operation, e.Status)
}

func (e *HTTPError) Unwrap() error { return ErrHTTP }

// AsHTTPError extracts an *HTTPError from an error chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

func missingParam(op Operation, name string) error {
	return fmt.Errorf("%w: %s requires %s", ErrMissingParam, op, name)
}

// DecodeJSON unmarshals data into out, tagging failures with ErrParse.
func DecodeJSON(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}
