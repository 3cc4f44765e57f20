package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp(err error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/", func(ctx *fiber.Ctx) error {
		return err
	})
	return app
}

func decodeError(t *testing.T, app *fiber.App) (int, ErrorBody) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerAppErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"empty input", ErrEmptyInput(), fiber.StatusBadRequest, CodeEmptyInput},
		{"unauthorized", ErrUnauthorized("missing token"), fiber.StatusUnauthorized, CodeUnauthorized},
		{"unsupported format", ErrUnsupportedFormat("video/mp4"), fiber.StatusUnsupportedMediaType, CodeUnsupportedFormat},
		{"transcription failed", ErrTranscriptionFailed(errors.New("whisper down")), fiber.StatusBadGateway, CodeTranscriptionFailed},
		{"classification failed", ErrClassificationFailed(errors.New("model down")), fiber.StatusBadGateway, CodeClassificationFailed},
		{"not found", ErrNotFound("note not found"), fiber.StatusNotFound, CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := decodeError(t, errorApp(tt.err))

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Status)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestErrorHandlerFiberError(t *testing.T) {
	status, body := decodeError(t, errorApp(fiber.NewError(fiber.StatusBadRequest, "bad payload")))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "bad payload", body.Message)
}

func TestErrorHandlerUnknownError(t *testing.T) {
	status, body := decodeError(t, errorApp(errors.New("boom")))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Message, "internal detail must not leak")
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrTranscriptionFailed(cause)

	assert.ErrorIs(t, err, cause)

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, CodeTranscriptionFailed, appErr.Code)
}
