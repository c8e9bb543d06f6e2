package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roster-hq/roster/internal/identity"
	"github.com/roster-hq/roster/internal/logging"
)

func appWithError(dev bool, err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(dev, logging.Discard())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func fetch(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorHandlerDomainMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{identity.ErrDuplicateEmail, http.StatusBadRequest, "Email already exists"},
		{identity.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{identity.ErrAccountDeactivated, http.StatusForbidden, "Account is deactivated. Please contact admin."},
		{identity.ErrSelfDeactivation, http.StatusBadRequest, "Cannot deactivate your own account"},
		{identity.ErrNotFound, http.StatusNotFound, "User not found"},
		{fiber.NewError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
	}

	for _, tc := range cases {
		status, body := fetch(t, appWithError(false, tc.err))
		assert.Equal(t, tc.status, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.message, body["message"])
	}
}

func TestErrorHandlerHidesInternalDetail(t *testing.T) {
	internal := errors.New("pg: connection refused")

	status, body := fetch(t, appWithError(false, internal))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body["message"])

	status, body = fetch(t, appWithError(true, internal))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "pg: connection refused", body["message"])
}
