package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/roster-hq/roster/internal/auth"
)

// RegisterAuthRoutes wires signup, login and the current-user endpoint.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, guard fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/signup", h.Signup)
	group.Post("/login", h.Login)
	group.Get("/me", guard, h.Me)
}
