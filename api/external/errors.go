/* errors.go
 * Contains the error taxonomy for fetching entity lists: non 2xx responses, transport failures and unparseable bodies.
 * All three are shown to the user verbatim, the types exist so callers and metrics can tell them apart
 */

package external

import (
	"context"
	"errors"
	"fmt"

	"octofit-tracker/observability"
)

// HTTPStatusError is returned when the API answers with a non 2xx status
type HTTPStatusError struct {
	Status int
	URL    string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// TransportError is returned when the request could not be built, sent or its body read
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a response body is not valid JSON, or does not decode into the expected records
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Outcome maps an error returned by this package to its metric label
// Preconditions: Receives an error, or nil
// Postconditions: Returns one of the observability.Outcome* values
func Outcome(err error) string {
	var statusErr *HTTPStatusError
	var parseErr *ParseError

	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return observability.OutcomeCanceled
	case errors.As(err, &statusErr):
		return observability.OutcomeHTTPStatus
	case errors.As(err, &parseErr):
		return observability.OutcomeParse
	default:
		return observability.OutcomeTransport
	}
}
