package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/roster-hq/roster/internal/auth"
	"github.com/roster-hq/roster/internal/httpx"
	"github.com/roster-hq/roster/internal/identity"
)

// Protect resolves the bearer token on each request to an active user and
// rejects everything else before the handler runs. A valid token whose
// subject has been deleted or deactivated is refused here; tokens are not
// revocable on their own.
func Protect(tokens *auth.TokenService, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authz, "Bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "Not authorized, no token provided")
		}

		subjectID, err := tokens.Verify(strings.TrimSpace(authz[len("Bearer "):]))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return fiber.NewError(http.StatusUnauthorized, "Token expired")
			}
			return fiber.NewError(http.StatusUnauthorized, "Invalid token")
		}

		user, err := repo.FindByID(c.UserContext(), subjectID)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "User not found")
		}
		if user.Status == identity.StatusInactive {
			return fiber.NewError(http.StatusForbidden, "Account is deactivated")
		}

		user.PasswordHash = nil
		httpx.SetCurrentUser(c, user)
		return c.Next()
	}
}

// RequireRole restricts a route to users holding the given role. It must run
// after Protect.
func RequireRole(role identity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := httpx.CurrentUser(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "Not authorized, no token provided")
		}
		if user.Role != role {
			return fiber.NewError(http.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}
