package errors

import (
	"errors"
	"fmt"
	"strconv"
)

// Category classifies an error to guide handling strategy.
type Category int

const (
	CategoryCritical Category = iota
	CategoryRecoverable
	CategoryOptional
)

func (c Category) String() string {
	switch c {
	case CategoryCritical:
		return "critical"
	case CategoryRecoverable:
		return "recoverable"
	case CategoryOptional:
		return "optional"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Error wraps an underlying error with a handling category and optional context.
type Error struct {
	Category Category
	Err      error
	Context  ErrorContext
}

// Error renders the cause prefixed by the field and offending value when known,
// e.g. `memory_to_monitor "10XB": unknown SI prefix 'X'`.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Context.Field != "" && e.Context.Value != "":
		return fmt.Sprintf("%s %s: %v", e.Context.Field, strconv.Quote(e.Context.Value), e.Err)
	case e.Context.Field != "":
		return fmt.Sprintf("%s: %v", e.Context.Field, e.Err)
	case e.Context.Operation != "":
		return fmt.Sprintf("%s: %v", e.Context.Operation, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap exposes the wrapped root cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New constructs an Error with the provided category, cause, and context.
func New(category Category, err error, context ErrorContext) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Category: category,
		Err:      err,
		Context:  context,
	}
}

// WrapRecoverable wraps an existing error as recoverable while merging context maps.
func WrapRecoverable(err error, operation string, contexts ...ErrorContext) *Error {
	if err == nil {
		return nil
	}
	ctx := ErrorContext{Operation: operation}
	for _, c := range contexts {
		ctx = ctx.Merge(c)
	}
	return New(CategoryRecoverable, err, ctx)
}

// FieldError annotates a recoverable error with the configuration field and raw value.
func FieldError(err error, field, value string) *Error {
	return WrapRecoverable(err, "parse_field", ErrorContext{Field: field, Value: value})
}

// IsCritical reports whether err carries the critical category anywhere in its chain.
func IsCritical(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Category == CategoryCritical
}
