package httpx

import (
	"github.com/gofiber/fiber/v2"

	"github.com/roster-hq/roster/internal/identity"
)

const currentUserKey = "current_user"

// SetCurrentUser attaches the resolved account to the request. The caller is
// expected to strip the credential hash first.
func SetCurrentUser(c *fiber.Ctx, user identity.User) {
	c.Locals(currentUserKey, user)
}

// CurrentUser returns the account attached by the session guard.
func CurrentUser(c *fiber.Ctx) (identity.User, bool) {
	user, ok := c.Locals(currentUserKey).(identity.User)
	return user, ok
}
