package intake

import (
	"errors"
	"fmt"
)

// Sentinel kinds for rejected records.
var (
	ErrValidation  = errors.New("invalid case record")
	ErrUnscoreable = errors.New("case is unscoreable")
	ErrBadAge      = errors.New("age must be a finite non-negative number")
)

// ValidationError reports a field whose value is outside its domain.
type ValidationError struct {
	CaseNo string
	Field  string
	Value  string
	Rule   string // failed validation tag, e.g. "required" or "offense"
}

func (e *ValidationError) Error() string {
	if e.Rule == "required" {
		return fmt.Sprintf("case %q: %s is required", e.CaseNo, e.Field)
	}
	return fmt.Sprintf("case %q: %s value %q is not allowed", e.CaseNo, e.Field, e.Value)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// UnscoreableError reports a record whose age cannot be scored.
type UnscoreableError struct {
	CaseNo string
	Value  string
	Err    error
}

func (e *UnscoreableError) Error() string {
	return fmt.Sprintf("case %q: age %q: %v", e.CaseNo, e.Value, e.Err)
}

// Unwrap lets errors.Is match ErrUnscoreable and the underlying cause.
func (e *UnscoreableError) Unwrap() []error { return []error{ErrUnscoreable, e.Err} }
