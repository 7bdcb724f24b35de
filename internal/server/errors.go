package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-pulse/internal/editing"
	"github.com/jonathan/career-pulse/internal/schemas"
	"github.com/jonathan/career-pulse/internal/store"
)

// ResumeNotFoundMessage is the body text for unknown resume identifiers.
const ResumeNotFoundMessage = "Resume not found"

// ErrResumeNotFound indicates no resume has the requested identifier
type ErrResumeNotFound struct {
	ID string
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts validator output into an ErrValidation for the first failing field.
func validationError(err error) *ErrValidation {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrResumeNotFound
		validation *ErrValidation
		index      *editing.IndexError
		field      *editing.FieldError
		shape      *schemas.ValidationError
	)
	switch {
	case errors.As(err, &notFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &index):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &field), errors.As(err, &shape):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the client-facing text for err.
func errorMessage(err error) string {
	var notFound *ErrResumeNotFound
	if errors.As(err, &notFound) || errors.Is(err, store.ErrNotFound) {
		return ResumeNotFoundMessage
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
