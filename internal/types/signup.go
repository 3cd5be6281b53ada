package types

import "github.com/go-playground/validator/v10"

// validate is shared by every request type; validator caches struct metadata.
var validate = validator.New()

// SignupRequest represents the sign-up form. Nothing is stored; the form is
// only validated.
type SignupRequest struct {
	Name            string `json:"name" validate:"required,min=1"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	return validate.Struct(r)
}

// SignupResponse is returned when the sign-up form passes validation.
type SignupResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// LoginRequest represents the log-in form. Credentials are only checked for
// shape; there is no account store.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// LoginResponse is returned when the log-in form passes validation.
type LoginResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
