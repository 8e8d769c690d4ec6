package cep

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the lookup service flags the code as unknown.
var ErrNotFound = errors.New("cep: postal code not found")

// ErrorCategory classifies lookup failures.
type ErrorCategory string

const (
	// ErrorTransport covers network failures before a response was read.
	ErrorTransport ErrorCategory = "transport"
	// ErrorStatus covers non-2xx responses.
	ErrorStatus ErrorCategory = "status"
	// ErrorDecode covers bodies that are not the expected JSON shape.
	ErrorDecode ErrorCategory = "decode"
)

// LookupError wraps a failed lookup with its category.
type LookupError struct {
	Category   ErrorCategory
	Code       string
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Err != nil:
		return fmt.Sprintf("cep: lookup %s [%s]: status %d: %v", e.Code, e.Category, e.StatusCode, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("cep: lookup %s [%s]: status %d", e.Code, e.Category, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("cep: lookup %s [%s]: %v", e.Code, e.Category, e.Err)
	default:
		return fmt.Sprintf("cep: lookup %s [%s]", e.Code, e.Category)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// Category extracts the failure category, or "" when err is not a
// *LookupError.
func Category(err error) ErrorCategory {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Category
	}
	return ""
}
