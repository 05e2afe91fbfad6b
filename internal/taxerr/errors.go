// Package taxerr defines the error taxonomy shared by the engine, its stores and the API layer.
package taxerr

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Code classifies an engine error.
type Code string

const (
	CodeUnknownJurisdiction   Code = "unknown_jurisdiction"
	CodeInvalidExemptionClaim Code = "invalid_exemption_claim"
	CodeInvalidRequest        Code = "invalid_request"
	CodeInvalidReturnState    Code = "invalid_return_state"
	CodePeriodOverlap         Code = "period_overlap"
	CodeStoreUnavailable      Code = "store_unavailable"
	CodeNotFound              Code = "not_found"
	CodeInvariantViolation    Code = "invariant_violation"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrUnknownJurisdiction   = &Error{Code: CodeUnknownJurisdiction, Message: "unknown jurisdiction"}
	ErrInvalidExemptionClaim = &Error{Code: CodeInvalidExemptionClaim, Message: "invalid exemption claim"}
	ErrInvalidRequest        = &Error{Code: CodeInvalidRequest, Message: "invalid request"}
	ErrInvalidReturnState    = &Error{Code: CodeInvalidReturnState, Message: "invalid return state"}
	ErrPeriodOverlap         = &Error{Code: CodePeriodOverlap, Message: "period overlap"}
	ErrStoreUnavailable      = &Error{Code: CodeStoreUnavailable, Message: "store unavailable"}
	ErrNotFound              = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInvariantViolation    = &Error{Code: CodeInvariantViolation, Message: "invariant violation"}
)

// FieldError points at a single offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the concrete error type of the taxonomy.
type Error struct {
	Code    Code
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(parts, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// UnknownJurisdiction reports a jurisdiction code missing from the rate table.
func UnknownJurisdiction(code string) error {
	return &Error{
		Code:    CodeUnknownJurisdiction,
		Message: fmt.Sprintf("unknown jurisdiction %q", code),
		Fields:  []FieldError{{Field: "jurisdiction", Message: "not present in rate table"}},
	}
}

// InvalidExemptionClaim reports malformed exemption identifiers.
func InvalidExemptionClaim(fields ...FieldError) error {
	return &Error{Code: CodeInvalidExemptionClaim, Message: "invalid exemption claim", Fields: fields}
}

// InvalidRequest reports a malformed request outside of exemption claims.
func InvalidRequest(fields ...FieldError) error {
	return &Error{Code: CodeInvalidRequest, Message: "invalid request", Fields: fields}
}

// InvalidReturnState reports an illegal filing transition.
func InvalidReturnState(returnID, status, action string) error {
	return &Error{
		Code:    CodeInvalidReturnState,
		Message: fmt.Sprintf("cannot %s return %s in status %s", action, returnID, status),
	}
}

// PeriodOverlap reports calculations already claimed by another return.
func PeriodOverlap(format string, args ...interface{}) error {
	return &Error{Code: CodePeriodOverlap, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing record.
func NotFound(resource, id string) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// StoreUnavailable wraps a collaborator failure or timeout. Errors that are
// already classified pass through unchanged.
func StoreUnavailable(op string, err error) error {
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	return &Error{Code: CodeStoreUnavailable, Message: op + " failed", Err: err}
}

// InvariantViolation reports a broken monetary or state invariant. It carries
// a stack trace.
func InvariantViolation(format string, args ...interface{}) error {
	return pkgerrors.WithStack(&Error{
		Code:    CodeInvariantViolation,
		Message: "invariant violation: " + fmt.Sprintf(format, args...),
	})
}

// CodeOf returns the taxonomy code of err, or "" when err is unclassified.
func CodeOf(err error) Code {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// FieldsOf returns the field-level details of err, if any.
func FieldsOf(err error) []FieldError {
	var te *Error
	if errors.As(err, &te) {
		return te.Fields
	}
	return nil
}

// IsRetryable reports whether the caller may retry the operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
