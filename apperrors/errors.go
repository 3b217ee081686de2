// Package apperrors defines the error taxonomy shared by services and
// controllers, plus the single translation point for storage-layer errors.
package apperrors

import (
	"errors"
	"net/http"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Error carries an HTTP status alongside a caller-safe message. Services
// return *Error for every expected failure; anything else reaching the
// controller boundary is treated as an internal fault.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Unauthorized signals missing or invalid authentication (401).
func Unauthorized(message string) *Error {
	return newError(http.StatusUnauthorized, message)
}

// Forbidden signals a role or ownership denial (403).
func Forbidden(message string) *Error {
	return newError(http.StatusForbidden, message)
}

// NotFound signals an absent entity (404).
func NotFound(message string) *Error {
	return newError(http.StatusNotFound, message)
}

// Conflict signals a uniqueness violation. The API reports these as 400,
// matching the validation failure class.
func Conflict(message string) *Error {
	return newError(http.StatusBadRequest, message)
}

// Invalid signals a malformed request body or parameter (400).
func Invalid(message string) *Error {
	return newError(http.StatusBadRequest, message)
}

// Internal signals an unexpected fault (500).
func Internal(message string) *Error {
	return newError(http.StatusInternalServerError, message)
}

// mysqlDuplicateEntry is the server error code for a unique-key violation.
const mysqlDuplicateEntry = 1062

// FromStore translates a storage-layer error into the taxonomy. It is the
// only place engine-specific error shapes are inspected: record-not-found
// becomes NotFound, duplicate-key becomes Conflict, everything else is an
// internal fault. A nil error passes through as nil.
func FromStore(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMessage)
	}
	if IsDuplicate(err) {
		return Conflict("Resource already exists")
	}
	return Internal("Internal server error")
}

// IsDuplicate reports whether err is a uniqueness-constraint violation.
// GORM dialects translate these to ErrDuplicatedKey when TranslateError is
// on; the raw MySQL driver error is checked as a fallback.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	return false
}
