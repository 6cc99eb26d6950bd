// Package errors provides sentinel errors for the forge CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates an answer or selection failed validation.
	// Validation errors are recovered locally: the wizard re-presents
	// the same step with the message inline.
	ErrValidation = errors.New("validation error")

	// ErrBuild indicates a completed answer set could not be folded
	// into a generation request (missing required field).
	ErrBuild = errors.New("build error")

	// ErrRender indicates template rendering failed before any write
	// (missing variable, path collision between bundles).
	ErrRender = errors.New("render error")

	// ErrIO indicates a filesystem failure during the write phase.
	ErrIO = errors.New("io error")

	// ErrCancelled indicates the operator aborted the wizard.
	ErrCancelled = errors.New("cancelled")

	// ErrNotFound indicates a workspace, bundle, or file was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError captures structured error information for user-facing output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path or step id (optional).
	Location string

	// Field is the field name for build errors (optional).
	Field string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewBuildError creates a build error naming the missing field.
func NewBuildError(message, field string) error {
	return &DetailError{
		Type:    "build failed",
		Message: message,
		Field:   field,
		Cause:   ErrBuild,
	}
}

// NewRenderError creates a render error with the offending location.
func NewRenderError(message, location string) error {
	return &DetailError{
		Type:     "render failed",
		Message:  message,
		Location: location,
		Cause:    ErrRender,
	}
}

// NewIOError creates an io error with the offending path and a remedy hint.
func NewIOError(message, path, hint string, cause error) error {
	return &DetailError{
		Type:     "write failed",
		Message:  message,
		Location: path,
		Hint:     hint,
		Cause:    fmt.Errorf("%w: %w", ErrIO, cause),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
