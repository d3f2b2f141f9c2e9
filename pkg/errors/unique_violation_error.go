package custom_error

import "fmt"

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23505")
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23503")
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

// WrapDBError maps PostgreSQL error codes onto typed errors. A unique
// violation on a table row means another writer got there first, so it is
// also reported as a conflict.
func WrapDBError(message, code string) error {
	switch code {
	case "23505":
		return &ConflictError{
			Message: message,
			Err:     &UniqueViolationError{message: message, code: code},
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: "Value is already used by other resources " + message,
			code:    code,
		}
	default:
		return &BackendError{
			Op:  "postgres",
			Err: fmt.Errorf("uncategorized error occurred with code %s: %s", code, message),
		}
	}
}
