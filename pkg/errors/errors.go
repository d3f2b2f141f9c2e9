package custom_error

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is returned when a request is missing a required field or
// carries a value outside the allowed set. Nothing has been written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError is returned when a precondition on stored state does not hold,
// e.g. an item that is already assigned or a table that changed since it was read.
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// LookupError reports a key that has no matching row.
type LookupError struct {
	Table string
	Key   string
	Value string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no row in %s with %s=%q", e.Table, e.Key, e.Value)
}

type BackendError struct {
	Op    string
	Table string
	Err   error
}

func (e *BackendError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func NewLookupError(table, key, value string) error {
	return &LookupError{Table: table, Key: key, Value: value}
}

// WrapBackend wraps a storage failure unless it already carries a domain type.
func WrapBackend(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var conflict *ConflictError
	var backend *BackendError
	if errors.As(err, &conflict) || errors.As(err, &backend) {
		return err
	}
	return &BackendError{Op: op, Table: table, Err: err}
}

// HTTPStatus picks the response code for an error returned by a service.
func HTTPStatus(err error) int {
	var validation *ValidationError
	var conflict *ConflictError
	var lookup *LookupError
	var backend *BackendError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &lookup):
		return http.StatusNotFound
	case errors.As(err, &backend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
