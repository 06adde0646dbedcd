// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types and error handling utilities.
//
// Two tiers. Recoverable failures are returned as the sentinel errors
// below, or as opaque platform errors passed through unchanged.
// Contract violations that may have exposed memory beyond the model's
// own bounds checking (token misuse, a completion reporting more bytes
// than were offered, out-of-bounds access on an unchecked fast path)
// are panics, never error returns.

package api

import "fmt"

// Sentinel errors shared across the library.
var (
	// ErrCanceled reports that the target primitive's last owning
	// reference vanished before the operation started.
	ErrCanceled = fmt.Errorf("target primitive already closed")

	// ErrContractViolation reports an elementary write that consumed
	// fewer bytes than it was offered. No memory was exposed, so the
	// caller may recover.
	ErrContractViolation = fmt.Errorf("elementary operation wrote fewer bytes than offered")

	// ErrCapacityExhausted reports a fill against a builder with no
	// remaining reserved capacity.
	ErrCapacityExhausted = fmt.Errorf("reserved capacity exhausted")

	// ErrFacadeClosed reports a submission against a stopped platform facade.
	ErrFacadeClosed = fmt.Errorf("platform facade is closed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeCanceled
	ErrCodeContractViolation
	ErrCodeCapacityExhausted
	ErrCodePlatform
	ErrCodeInternal
)

// Error represents a structured error with code and context, used by
// platform facades when a bare sentinel is not enough.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
