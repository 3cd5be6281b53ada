package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-mentor/internal/chat"
	"github.com/jonathan/career-mentor/internal/responder"
	"github.com/jonathan/career-mentor/internal/upload"
)

// ErrViewNotFound indicates an unknown or expired view id
type ErrViewNotFound struct {
	Kind string
	ID   string
}

func (e *ErrViewNotFound) Error() string {
	return fmt.Sprintf("%s view not found: %s", e.Kind, e.ID)
}

// ErrPasswordMismatch indicates the confirmation differs from the password
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "Passwords do not match"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrViewNotFound:
		return http.StatusNotFound
	case *ErrValidation, *ErrPasswordMismatch, *upload.ValidationError, validator.ValidationErrors:
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, upload.ErrInvalidFileType),
		errors.Is(err, upload.ErrFileTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, chat.ErrBusy),
		errors.Is(err, upload.ErrNoSession),
		errors.Is(err, upload.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, chat.ErrClosed), errors.Is(err, upload.ErrClosed):
		return http.StatusGone
	case errors.Is(err, responder.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, responder.ErrRemote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage renders validator failures as one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}

// ErrorInfo is the JSON form of a responder failure.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func errorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{Kind: string(responder.KindOf(err)), Message: err.Error()}
}
