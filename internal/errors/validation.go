package errors

import "fmt"

// ValidationError represents a rejected part of a model description
type ValidationError struct {
	*BaseError
	Field      string      // offending element, e.g. "fields[2].name"
	Value      interface{} // the value that failed validation
	Constraint string      // the validation constraint that failed
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, constraint string) *ValidationError {
	message := fmt.Sprintf("invalid %s %q: %s", field, fmt.Sprint(value), constraint)

	return &ValidationError{
		BaseError:  New(ValidationErrorCode, message),
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// UsageError reports a malformed invocation; the CLI prints usage for it
type UsageError struct {
	*BaseError
}

// NewUsageError creates a new usage error
func NewUsageError(format string, args ...interface{}) *UsageError {
	return &UsageError{BaseError: Newf(UsageErrorCode, format, args...)}
}

// RegistrationError reports that the composition root could not be patched
type RegistrationError struct {
	*BaseError
	Symbol string // module symbol that was being registered
	File   string // composition file
}

// NewRegistrationError creates a new registration error
func NewRegistrationError(symbol, file, reason string) *RegistrationError {
	message := fmt.Sprintf("could not register %s in %s: %s", symbol, file, reason)
	return &RegistrationError{
		BaseError: New(RegistrationErrorCode, message),
		Symbol:    symbol,
		File:      file,
	}
}
