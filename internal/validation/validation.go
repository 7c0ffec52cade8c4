// Package validation runs request input through small composable rules and
// reports every failing field at once.
package validation

import (
	"strings"

	"github.com/SscSPs/social_media_app/internal/apperrors"
)

// Kind classifies why a field was rejected.
type Kind string

const (
	KindRequired Kind = "required"
	KindFormat   Kind = "format"
	KindLength   Kind = "length"
	KindWeak     Kind = "weak"
	KindMismatch Kind = "mismatch"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Rule checks one field and returns nil when it passes.
type Rule func() *FieldError

// Result is the outcome of running a pipeline.
type Result struct {
	Errors []FieldError
}

// Run evaluates the rules in order. Only the first failure per field is kept.
func Run(rules ...Rule) Result {
	var res Result
	seen := make(map[string]bool)
	for _, rule := range rules {
		fe := rule()
		if fe == nil || seen[fe.Field] {
			continue
		}
		seen[fe.Field] = true
		res.Errors = append(res.Errors, *fe)
	}
	return res
}

// OK reports whether every rule passed.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Err returns nil when the result is OK, otherwise an *Error matching apperrors.ErrValidation.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Fields: r.Errors}
}

// Error is a failed validation result.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error {
	return apperrors.ErrValidation
}

// ByField indexes the failures by field name, the shape used in error responses.
func (e *Error) ByField() map[string]FieldError {
	out := make(map[string]FieldError, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f
	}
	return out
}
