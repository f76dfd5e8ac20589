package dto

import (
	customerrors "forum/internal/customErrors"

	"github.com/go-playground/validator/v10"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *CreateUserRequest) Validate() error {
	err := validator.New().Struct(r)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			switch fieldErr.Field() {
			case "Password":
				return customerrors.ErrEmptyPassword
			case "Email":
				return customerrors.ErrInvalidEmail
			}
		}
	}
	return customerrors.ErrBadRequest
}

// TokenResponse is the Token output type at the API boundary: the opaque
// signed token plus the username it was issued to.
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
