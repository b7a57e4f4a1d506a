package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error wrapping patterns used throughout the generator

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName)
}

// WrapSchemaError wraps model schema file errors
func WrapSchemaError(path string, cause error) *BaseError {
	return Wrap(SchemaErrorCode, "invalid model schema", cause).
		WithLocation(SourceLocation{File: path}).
		WithSuggestion("Check the schema file against the documented name/fields/relations/seed layout")
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configFile, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration", operation)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithLocation(SourceLocation{File: configFile})
}

// AddToMultiple adds an error to a MultipleErrors, creating it if nil
func AddToMultiple(multiple **MultipleErrors, err GeneratorError) {
	if *multiple == nil {
		*multiple = NewMultipleErrors()
	}
	(*multiple).Add(err)
}

// AddValidationError adds a validation error to a collection
func AddValidationError(multiple **MultipleErrors, field string, value interface{}, constraint string) {
	AddToMultiple(multiple, NewValidationError(field, value, constraint))
}

// CodeOf returns the code of the first GeneratorError in err's chain
func CodeOf(err error) ErrorCode {
	var gen GeneratorError
	if stderrors.As(err, &gen) {
		return gen.ErrorCode()
	}
	return UnknownErrorCode
}

// IsUsage reports whether err is a usage error
func IsUsage(err error) bool {
	return CodeOf(err) == UsageErrorCode
}

// As is errors.As from the standard library, re-exported so callers need one
// errors import
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is from the standard library
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
