package serverutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedApp(handlerRan *bool) *fiber.App {
	app := fiber.New()
	app.Use(JwtMiddleware)
	app.Get("/", func(ctx *fiber.Ctx) error {
		*handlerRan = true
		return ctx.JSON(SuccessResponse("ok", ctx.Locals("user_id").(string)))
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJwtMiddlewareRejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name       string
		authHeader string
	}{
		{"missing token", ""},
		{"malformed bearer", "Bearer not-a-jwt"},
		{"wrong signature", "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"user_id": "abc"})},
		{"missing user_id claim", "Bearer " + signToken(t, "test-secret", jwt.MapClaims{"sub": "abc"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerRan := false
			app := protectedApp(&handlerRan)

			req := httptest.NewRequest("GET", "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body ErrorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, CodeUnauthorized, body.Status)
			assert.False(t, handlerRan, "handler must not run behind a rejected token")
		})
	}
}

func TestJwtMiddlewareScopesUserId(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	handlerRan := false
	app := protectedApp(&handlerRan)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", jwt.MapClaims{"user_id": "user-1"}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response[string]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, handlerRan)
	assert.Equal(t, "user-1", body.Data)
}
