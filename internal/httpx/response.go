package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/roster-hq/roster/internal/identity"
)

// OK writes a success envelope with the given payload fields.
func OK(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// Fail writes a failure envelope.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// ErrorHandler renders every error escaping a handler as a
// {success:false, message} envelope. Domain errors map to their status codes;
// anything unrecognized becomes a generic 500 with the detail withheld unless
// the service runs in development mode.
func ErrorHandler(dev bool, logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)

		if status == http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
			if !dev {
				message = "Internal Server Error"
			}
		}
		return Fail(c, status, message)
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}

	switch {
	case errors.Is(err, identity.ErrDuplicateEmail):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, identity.ErrAccountDeactivated):
		return http.StatusForbidden, "Account is deactivated. Please contact admin."
	case errors.Is(err, identity.ErrSelfDeactivation):
		return http.StatusBadRequest, "Cannot deactivate your own account"
	case errors.Is(err, identity.ErrNotFound):
		return http.StatusNotFound, "User not found"
	}
	return http.StatusInternalServerError, err.Error()
}
