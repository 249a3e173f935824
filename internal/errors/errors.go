// Package errors defines the typed failure values surfaced by the processing
// pipeline. Every condition is recoverable by the caller; the pipeline never
// produces user-facing text, only structured errors the presentation layer
// maps to messages.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Ingestion failures
	ErrTypeHeaderNotFound  ErrorType = "HEADER_NOT_FOUND"
	ErrTypeMissingColumns  ErrorType = "MISSING_COLUMNS"
	ErrTypeMalformedSource ErrorType = "MALFORMED_SOURCE"
	ErrTypeAmbiguousSheet  ErrorType = "AMBIGUOUS_SHEET"
	ErrTypeInvalidSheet    ErrorType = "INVALID_SHEET_CHOICE"

	// Aggregation failures
	ErrTypeNoValidData ErrorType = "NO_VALID_DATA"

	// Ambient failures
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper constructors for the pipeline failure taxonomy

// NewHeaderNotFoundError reports that no line or sheet row matched the
// configured header signature.
func NewHeaderNotFoundError(source string) *AppError {
	return NewAppError(ErrTypeHeaderNotFound, "header row not found", nil).
		WithContext("source", source)
}

// NewMissingColumnsError reports required columns absent from the detected
// header. The missing names are retrievable via MissingColumns.
func NewMissingColumnsError(names []string) *AppError {
	return NewAppError(ErrTypeMissingColumns,
		fmt.Sprintf("required columns missing: %s", strings.Join(names, ", ")), nil).
		WithContext("columns", names)
}

// NewMalformedSourceError reports an empty or unparseable source.
func NewMalformedSourceError(message string, cause error) *AppError {
	return NewAppError(ErrTypeMalformedSource, message, cause)
}

// NewAmbiguousSheetError reports that the header signature occurs on more
// than one sheet and no sheet was selected. The candidate names are
// retrievable via SheetCandidates.
func NewAmbiguousSheetError(candidates []string) *AppError {
	return NewAppError(ErrTypeAmbiguousSheet,
		fmt.Sprintf("header signature found on multiple sheets: %s", strings.Join(candidates, ", ")), nil).
		WithContext("candidates", candidates)
}

// NewInvalidSheetError reports a selected sheet that is not among the
// candidates carrying the header signature.
func NewInvalidSheetError(choice string, candidates []string) *AppError {
	return NewAppError(ErrTypeInvalidSheet,
		fmt.Sprintf("sheet %q does not contain the header signature", choice), nil).
		WithContext("choice", choice).
		WithContext("candidates", candidates)
}

// NewNoValidDataError reports a cleaned table with zero retained rows.
func NewNoValidDataError() *AppError {
	return NewAppError(ErrTypeNoValidData, "no rows with a valid numeric value remain after cleaning", nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err (or anything it wraps) is an AppError of the
// given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if !As(err, &appErr) {
		return false
	}
	return appErr.Type == t
}

// MissingColumns extracts the missing column names from a
// MISSING_COLUMNS error, or nil for any other error.
func MissingColumns(err error) []string {
	return contextStrings(err, ErrTypeMissingColumns, "columns")
}

// SheetCandidates extracts the candidate sheet names from an
// AMBIGUOUS_SHEET or INVALID_SHEET_CHOICE error, or nil otherwise.
func SheetCandidates(err error) []string {
	if names := contextStrings(err, ErrTypeAmbiguousSheet, "candidates"); names != nil {
		return names
	}
	return contextStrings(err, ErrTypeInvalidSheet, "candidates")
}

func contextStrings(err error, t ErrorType, key string) []string {
	var appErr *AppError
	if !As(err, &appErr) || appErr.Type != t {
		return nil
	}
	names, _ := appErr.Context[key].([]string)
	return names
}
