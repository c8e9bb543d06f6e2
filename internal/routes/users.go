package routes

import (
	"errors"
	"net/http"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/roster-hq/roster/internal/httpx"
	"github.com/roster-hq/roster/internal/identity"
)

var (
	passwordLower = regexp.MustCompile(`[a-z]`)
	passwordUpper = regexp.MustCompile(`[A-Z]`)
	passwordDigit = regexp.MustCompile(`[0-9]`)
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (r updateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In("active", "inactive").Error("status must be 'active' or 'inactive'")),
	)
}

type updateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (r updateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Length(2, 50).Error("full name must be between 2 and 50 characters")),
		validation.Field(&r.Email,
			is.Email.Error("please provide a valid email address")),
	)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r changePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword,
			validation.Required.Error("current password is required")),
		validation.Field(&r.NewPassword,
			validation.Required.Error("new password is required"),
			validation.Length(8, 0).Error("new password must be at least 8 characters long"),
			validation.Match(passwordLower).Error("new password must contain a lowercase letter"),
			validation.Match(passwordUpper).Error("new password must contain an uppercase letter"),
			validation.Match(passwordDigit).Error("new password must contain a number")),
	)
}

// RegisterUserRoutes wires the roster and profile endpoints. Every route sits
// behind the session guard; roster management additionally requires the admin
// role.
func RegisterUserRoutes(r fiber.Router, svc *identity.Service, guard, adminOnly fiber.Handler) {
	group := r.Group("/users", guard)

	group.Get("/", adminOnly, func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)

		users, pagination, err := svc.List(c.UserContext(), page, limit)
		if err != nil {
			return err
		}
		profiles := make([]identity.Profile, 0, len(users))
		for _, user := range users {
			profiles = append(profiles, user.Public())
		}
		return httpx.OK(c, http.StatusOK, fiber.Map{
			"users":      profiles,
			"pagination": pagination,
		})
	})

	group.Put("/:id/status", adminOnly, func(c *fiber.Ctx) error {
		var req updateStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := req.Validate(); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		requester, ok := httpx.CurrentUser(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "Not authorized, no token provided")
		}

		status := identity.Status(req.Status)
		user, err := svc.UpdateStatus(c.UserContext(), requester.ID, c.Params("id"), status)
		if err != nil {
			return err
		}

		message := "User deactivated successfully"
		if status == identity.StatusActive {
			message = "User activated successfully"
		}
		return httpx.OK(c, http.StatusOK, fiber.Map{
			"message": message,
			"user":    user.Public(),
		})
	})

	group.Put("/profile", func(c *fiber.Ctx) error {
		var req updateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := req.Validate(); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		requester, ok := httpx.CurrentUser(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "Not authorized, no token provided")
		}

		user, err := svc.UpdateProfile(c.UserContext(), requester.ID, req.FullName, req.Email)
		if err != nil {
			return err
		}
		return httpx.OK(c, http.StatusOK, fiber.Map{
			"message": "Profile updated successfully",
			"user":    user.Public(),
		})
	})

	group.Put("/change-password", func(c *fiber.Ctx) error {
		var req changePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := req.Validate(); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		requester, ok := httpx.CurrentUser(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "Not authorized, no token provided")
		}

		if err := svc.ChangePassword(c.UserContext(), requester.ID, req.CurrentPassword, req.NewPassword); err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				return fiber.NewError(http.StatusUnauthorized, "Current password is incorrect")
			}
			return err
		}
		return httpx.OK(c, http.StatusOK, fiber.Map{
			"message": "Password changed successfully",
		})
	})
}
