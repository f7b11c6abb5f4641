package relationaldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Error types for different categories of database errors
var (
	// Configuration errors
	ErrMissingHost           = errors.New("database host is required")
	ErrMissingDatabase       = errors.New("database name is required")
	ErrMissingUsername       = errors.New("database username is required")
	ErrInvalidPort           = errors.New("invalid database port")
	ErrInvalidDriver         = errors.New("invalid database driver")
	ErrInvalidMaxOpenConns   = errors.New("max open connections must be >= 0")
	ErrInvalidMaxIdleConns   = errors.New("max idle connections must be >= 0")
	ErrMaxIdleExceedsMaxOpen = errors.New("max idle connections cannot exceed max open connections")
	ErrInvalidTimeout        = errors.New("timeout must be positive")

	// Connection errors
	ErrDatabaseClosed = errors.New("database connection is closed")

	// Data errors
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrInvalidDataFormat = errors.New("invalid data format")

	// Query errors
	ErrInvalidLimit = errors.New("invalid query limit")
)

// ErrorType represents different categories of database errors
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeConfiguration
	ErrorTypeConnection
	ErrorTypeTransaction
	ErrorTypeData
	ErrorTypeConstraint
	ErrorTypeQuery
	ErrorTypeSchema
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeConnection:
		return "connection"
	case ErrorTypeTransaction:
		return "transaction"
	case ErrorTypeData:
		return "data"
	case ErrorTypeConstraint:
		return "constraint"
	case ErrorTypeQuery:
		return "query"
	case ErrorTypeSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// DatabaseError provides detailed information about database errors
type DatabaseError struct {
	Type      ErrorType `json:"type"`
	Operation string    `json:"operation"`
	Message   string    `json:"message"`
	Cause     error     `json:"cause,omitempty"`
	Retryable bool      `json:"retryable"`
}

// Error implements the error interface
func (e *DatabaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause error
func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(errorType ErrorType, operation, message string, cause error) *DatabaseError {
	return &DatabaseError{
		Type:      errorType,
		Operation: operation,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryableError(errorType, cause),
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(operation, message string, cause error) *DatabaseError {
	return NewDatabaseError(ErrorTypeConfiguration, operation, message, cause)
}

// NewConnectionError creates a connection error
func NewConnectionError(operation, message string, cause error) *DatabaseError {
	return NewDatabaseError(ErrorTypeConnection, operation, message, cause)
}

// NewTransactionError creates a transaction error
func NewTransactionError(operation, message string, cause error) *DatabaseError {
	return NewDatabaseError(ErrorTypeTransaction, operation, message, cause)
}

// NewDataError creates a data error
func NewDataError(operation, message string, cause error) *DatabaseError {
	return NewDatabaseError(ErrorTypeData, operation, message, cause)
}

// NewConstraintError creates a constraint error
func NewConstraintError(operation, message string, cause error) *DatabaseError {
	return NewDatabaseError(ErrorTypeConstraint, operation, message, cause)
}

// NewQueryError creates a query error
func NewQueryError(operation, message string, cause error) *DatabaseError {
	return NewDatabaseError(ErrorTypeQuery, operation, message, cause)
}

// NewSchemaError creates a schema error
func NewSchemaError(operation, message string, cause error) *DatabaseError {
	return NewDatabaseError(ErrorTypeSchema, operation, message, cause)
}

func isRetryableError(errorType ErrorType, cause error) bool {
	if cause == nil {
		return false
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(cause, context.Canceled) || errors.Is(cause, sql.ErrNoRows) {
		return false
	}

	switch errorType {
	case ErrorTypeConnection:
		return true
	case ErrorTypeTransaction:
		msg := strings.ToLower(cause.Error())
		return strings.Contains(msg, "deadlock") ||
			strings.Contains(msg, "database is locked") ||
			strings.Contains(msg, "serialization")
	}
	return false
}

// IsConstraintError reports whether err is a constraint violation.
func IsConstraintError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr) && dbErr.Type == ErrorTypeConstraint
}

// IsRetryable reports whether err may succeed if retried.
func IsRetryable(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr) && dbErr.Retryable
}

// isUniqueViolation recognizes unique-key failures from both drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint failed: unique")
}
