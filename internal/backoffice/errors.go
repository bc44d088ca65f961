package backoffice

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Category normalizes upstream call failures. The gateway collapses all of
// them into one generic kind at the caller boundary; the finer categories
// exist for logs, metrics, and future refinement.
type Category string

const (
	// CategoryTimeout indicates the backoffice took too long to respond.
	CategoryTimeout Category = "timeout"

	// CategoryOutage indicates the backoffice could not be reached.
	CategoryOutage Category = "outage"

	// CategoryBadStatus indicates an unexpected HTTP status.
	CategoryBadStatus Category = "bad_status"

	// CategoryMalformed indicates the backoffice returned a body the gateway
	// could not parse.
	CategoryMalformed Category = "malformed"

	// CategoryRejected indicates a client-error status on a verification
	// call. Not escalated: the upstream's own validation message is returned
	// to the caller in a soft envelope.
	CategoryRejected Category = "rejected"

	// CategoryInternal indicates an unexpected gateway-side failure.
	CategoryInternal Category = "internal"
)

// Error wraps a backoffice call failure with its normalized category, the
// operation that failed, and (for rejections) the upstream response body.
type Error struct {
	Category   Category
	Op         string
	Status     int
	Body       json.RawMessage
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("backoffice %s [%s]: %s: %v", e.Op, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("backoffice %s [%s]: %s", e.Op, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func newError(category Category, op, message string, underlying error) *Error {
	return &Error{Category: category, Op: op, Message: message, Underlying: underlying}
}

// GetCategory extracts the failure category from an error.
func GetCategory(err error) Category {
	var be *Error
	if errors.As(err, &be) {
		return be.Category
	}
	return CategoryInternal
}

// AsRejection returns the upstream response body when err is a verification
// rejection (upstream 4xx on a verification call).
func AsRejection(err error) (json.RawMessage, bool) {
	var be *Error
	if errors.As(err, &be) && be.Category == CategoryRejected {
		return be.Body, true
	}
	return nil, false
}
