// Package errs defines the application errors of the contacts service. Every error carries a
// code that the HTTP layer maps to a status, and a message that is sent to the client.
package errs

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EMALFORMED = "malformed"
	EINVALID   = "invalid"
	ENOTFOUND  = "not_found"
	ESTORAGE   = "storage"
	EINTERNAL  = "internal"
)

// Error is an application error. Err is the underlying cause, if any.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("application error: code=%s message=%s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns an application error with a formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Malformed reports a request body that cannot be decoded as a JSON object.
func Malformed(cause error) *Error {
	return &Error{Code: EMALFORMED, Message: "Invalid JSON", Err: cause}
}

// Missing reports a required field that is absent or empty.
func Missing(field string) *Error {
	return Errorf(EINVALID, "Missing required field: %s", field)
}

// NotFound reports that no contact with the given id exists.
func NotFound(id int64) *Error {
	return Errorf(ENOTFOUND, "Contact with ID %d not found", id)
}

// Storage wraps a failure of the persistence layer. The message is the description of the
// cause.
func Storage(cause error) *Error {
	return &Error{Code: ESTORAGE, Message: cause.Error(), Err: cause}
}

// ErrorCode returns the code of the first application error in err's chain, EINTERNAL for any
// other error, and an empty string for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the first application error in err's chain. For any other
// error the error text itself is returned.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
