package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime Category = "runtime"
	CategoryStorage Category = "storage"
	CategoryRouting Category = "routing"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// DotError is a structured error with a code, an explanation and a hint.
type DotError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Explanation is the registered long-form description.
	Explanation string

	// Detail is instance-specific context, such as the offending value.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DotError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DotError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DotError with the same code.
func (e *DotError) Is(target error) bool {
	t, ok := target.(*DotError)
	if !ok || t == nil {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithDetail adds instance-specific context to a copy of the error.
func (e *DotError) WithDetail(format string, args ...any) *DotError {
	c := *e
	if len(args) > 0 {
		c.Detail = fmt.Sprintf(format, args...)
	} else {
		c.Detail = format
	}
	return &c
}

// WithSuggestion adds a fix suggestion to a copy of the error.
func (e *DotError) WithSuggestion(s string) *DotError {
	c := *e
	c.Suggestion = s
	return &c
}

// Wrap returns a copy of the error wrapping err.
func (e *DotError) Wrap(err error) *DotError {
	c := *e
	c.Wrapped = err
	return &c
}

// New creates a DotError from a registered error code.
func New(code string) *DotError {
	template, ok := registry[code]
	if !ok {
		return &DotError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DotError{
		Code:        code,
		Category:    template.Category,
		Message:     template.Message,
		Explanation: template.Explanation,
		DocURL:      template.DocURL,
	}
}

// Newf creates a new DotError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DotError {
	return &DotError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DotError. An error that already
// carries a DotError is returned as that DotError.
func FromError(err error, code string) *DotError {
	if err == nil {
		return nil
	}
	var de *DotError
	if stderrors.As(err, &de) {
		return de
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first DotError in err's chain, or "".
func Code(err error) string {
	var de *DotError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}
