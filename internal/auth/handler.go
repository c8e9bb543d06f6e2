package auth

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
	hasLower = regexp.MustCompile(`[a-z]`)
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasDigit = regexp.MustCompile(`[0-9]`)
)

// Handler exposes signup, login and current-user endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(2, 50).Error("full name must be between 2 and 50 characters")),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("please provide a valid email address")),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 0).Error("password must be at least 8 characters long"),
			validation.Match(hasLower).Error("password must contain a lowercase letter"),
			validation.Match(hasUpper).Error("password must contain an uppercase letter"),
			validation.Match(hasDigit).Error("password must contain a number")),
	)
}

// Signup registers a new account. The first account ever created becomes
// the admin.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.svc.Signup(c.UserContext(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateEmail) {
			return fiber.NewError(http.StatusBadRequest, "User already exists")
		}
		return err
	}
	return httpx.OK(c, http.StatusCreated, fiber.Map{
		"message": "User created successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("please provide a valid email address")),
		validation.Field(&r.Password,
			validation.Required.Error("password is required")),
	)
}

// Login verifies credentials and returns a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// Me returns the account resolved by the session guard.
func (h *Handler) Me(c *fiber.Ctx) error {
	user, ok := httpx.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Not authorized, no token provided")
	}
	return httpx.OK(c, http.StatusOK, fiber.Map{"user": user.Public()})
}
