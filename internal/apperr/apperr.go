// Package apperr holds the error taxonomy shared by every HTTP-facing usecase.
// Clients branch on Code, so the set of codes is part of the API contract.
package apperr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeUnexpected          Code = "ER_UNEXP"
	CodeEmailExists         Code = "ER_EMAIL_EXISTS"
	CodePhoneExists         Code = "ER_PN_EXISTS"
	CodeEmailNotRegistered  Code = "ER_EMAIL_NOT_REG"
	CodePhoneNotRegistered  Code = "ER_PN_NOT_REG"
	CodeInvalidPassword     Code = "ER_INVALID_PASS"
	CodeSecretKeyAbsent     Code = "ER_SECRET_KEY_ABSENT"
	CodeUnauthorized        Code = "ER_UNAUTHORIZED"
	CodeForbidden           Code = "ER_FORBIDDEN"
	CodeProductDoesNotExist Code = "ER_PRODUCT_DOES_NOT_EXIST"
	CodeQuantityNotUpdated  Code = "ER_PRODUCT_QUANTITY_NOT_UPDATED"
	CodeProductNotDeleted   Code = "ER_PRODUCT_NOT_DELETED"
	CodeProductNotFound     Code = "ER_PRODUCT_NOT_FOUND"
	CodeProductNotFetched   Code = "ER_PRODUCT_NOT_FETCHED"
	CodeFileNotImage        Code = "ER_FILE_NOT_IMAGE"
	CodeFileNotUploaded     Code = "ER_FILE_NOT_UPLOADED"
	CodeBadRequest          Code = "ER_BAD_REQUEST"
)

// Error is a failure that already knows how it must be presented to the client.
type Error struct {
	Status  int
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code Code, msg string) *Error {
	return &Error{Status: status, Code: code, Message: msg}
}

// Wrap attaches the underlying cause without changing what the client sees.
func Wrap(status int, code Code, msg string, err error) *Error {
	return &Error{Status: status, Code: code, Message: msg, Err: err}
}

// Unexpected hides the cause from the client; it stays reachable through Unwrap
// for logging.
func Unexpected(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeUnexpected, Message: "Internal server error!", Err: err}
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, msg)
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, "Unauthorized!")
}

func Forbidden() *Error {
	return New(http.StatusForbidden, CodeForbidden, "Forbidden!")
}

// As returns err as *Error, turning anything unknown into an unexpected error.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Unexpected(err)
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
