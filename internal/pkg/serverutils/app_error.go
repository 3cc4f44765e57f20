package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is the service-level error taxonomy. Synchronous pipeline failures are
// returned to the caller with a stable code; the error handler middleware maps them
// to HTTP responses.
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

const (
	CodeEmptyInput           = "EMPTY_INPUT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeUnsupportedFormat    = "UNSUPPORTED_FORMAT"
	CodeTranscriptionFailed  = "TRANSCRIPTION_FAILED"
	CodeClassificationFailed = "CLASSIFICATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
)

func ErrEmptyInput() *AppError {
	return &AppError{
		Code:    CodeEmptyInput,
		Status:  fiber.StatusBadRequest,
		Message: "either text or audio must be provided",
	}
}

func ErrUnauthorized(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Status:  fiber.StatusUnauthorized,
		Message: message,
	}
}

func ErrUnsupportedFormat(contentType string) *AppError {
	return &AppError{
		Code:    CodeUnsupportedFormat,
		Status:  fiber.StatusUnsupportedMediaType,
		Message: fmt.Sprintf("audio content type %q is not supported", contentType),
	}
}

func ErrTranscriptionFailed(err error) *AppError {
	return &AppError{
		Code:    CodeTranscriptionFailed,
		Status:  fiber.StatusBadGateway,
		Message: "audio transcription failed",
		Err:     err,
	}
}

func ErrClassificationFailed(err error) *AppError {
	return &AppError{
		Code:    CodeClassificationFailed,
		Status:  fiber.StatusBadGateway,
		Message: "note classification failed",
		Err:     err,
	}
}

func ErrNotFound(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Status:  fiber.StatusNotFound,
		Message: message,
	}
}

// AsAppError unwraps err to an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
