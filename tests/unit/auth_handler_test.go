package unit

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swapr-backend/internal/handler"
	"swapr-backend/internal/middleware"
	"swapr-backend/internal/service/auth"
	"swapr-backend/tests/mocks"
)

func newAuthTestApp(authService auth.Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	h := handler.NewAuthHandler(authService)
	app.Post("/api/auth/login", h.Login)
	return app
}

func TestLoginHandler_InvalidCredentialsIsBadRequest(t *testing.T) {
	authService := new(mocks.MockAuthService)
	authService.On("Login", mock.Anything, mock.Anything).Return(nil, nil, auth.ErrInvalidCredentials)

	app := newAuthTestApp(authService)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email": "ana@example.com", "password": "wrong"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
