package customerrors

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

var (
	ErrUsernameAlreadyExists = &Error{Code: 409, Message: "username already exists"}
	ErrEmailAlreadyExists    = &Error{Code: 409, Message: "email already exists"}
	ErrInvalidCredentials    = &Error{Code: 401, Message: "invalid credentials"}
	ErrInvalidToken          = &Error{Code: 401, Message: "token invalid, please log in again"}
	ErrNotResourceOwner      = &Error{Code: 403, Message: "not the owner of this resource"}
	ErrUserNotFound          = &Error{Code: 404, Message: "user not found"}
	ErrSubjectNotFound       = &Error{Code: 404, Message: "subject not found"}
	ErrPostNotFound          = &Error{Code: 404, Message: "post not found"}
	ErrEmptyPassword         = &Error{Code: 400, Message: "password can not be empty"}
	ErrBadRequest            = &Error{Code: 400, Message: "bad request"}
	ErrInvalidEmail          = &Error{Code: 400, Message: "invalid email"}
	ErrInvalidID             = &Error{Code: 400, Message: "invalid id"}
	ErrInternalServer        = &Error{Code: 500, Message: "internal server error"}
	ErrDbUnreacheable        = &Error{Code: 503, Message: "database unreachable"}
)

func GetStatus(err error) int {
	if customErr, ok := err.(*Error); ok {
		return customErr.Code
	}

	switch {
	case err == jwt.ErrSignatureInvalid, err == jwt.ErrTokenExpired, err == jwt.ErrTokenMalformed:
		return 401

	default:
		return 500
	}
}

func GetMessage(err error) string {
	if customErr, ok := err.(*Error); ok {
		return customErr.Message
	} else {
		return err.Error()
	}
}
