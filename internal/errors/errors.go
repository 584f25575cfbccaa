// Package errors provides a lightweight structured error type (FontBuilderError)
// for category-based classification in the CLI and build orchestrator.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a fontbuilder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External tool errors
	CategoryTool ErrorCategory = "tool"

	// Build and processing errors
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryCanceled ErrorCategory = "canceled"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"
)

// FontBuilderError is a structured error with category, retryability, and context
type FontBuilderError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for FontBuilderError
type ContextFields map[string]any

// Error implements the error interface
func (e *FontBuilderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *FontBuilderError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *FontBuilderError) WithContext(key string, value any) *FontBuilderError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new FontBuilderError
func New(category ErrorCategory, severity ErrorSeverity, message string) *FontBuilderError {
	return &FontBuilderError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new FontBuilderError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *FontBuilderError {
	return &FontBuilderError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost FontBuilderError in err's chain.
func As(err error) (*FontBuilderError, bool) {
	var fbe *FontBuilderError
	if stdErrors.As(err, &fbe) {
		return fbe, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if fbe, ok := As(err); ok {
		return fbe.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if fbe, ok := As(err); ok {
		return fbe.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a FontBuilderError
func GetCategory(err error) ErrorCategory {
	if fbe, ok := As(err); ok {
		return fbe.Category
	}
	return CategoryInternal
}
