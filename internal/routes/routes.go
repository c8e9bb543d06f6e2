package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/roster-hq/roster/internal/auth"
	"github.com/roster-hq/roster/internal/config"
	"github.com/roster-hq/roster/internal/httpx"
	"github.com/roster-hq/roster/internal/identity"
	"github.com/roster-hq/roster/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Dev mode runs on in-memory fallbacks; everywhere else the backing
	// services are mandatory.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return httpx.OK(c, http.StatusOK, fiber.Map{"message": "Server is running"})
	})
	RegisterHealthRoutes(app, d)

	var repo identity.Repository
	if d.DB != nil {
		repo = identity.NewPostgresRepository(d.DB)
	} else {
		repo = identity.NewMemoryRepository()
	}

	hasher := auth.NewPasswordHasher(d.Cfg.BcryptCost)
	tokens := auth.NewTokenService(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	authSvc := auth.NewService(repo, hasher, tokens)
	rosterSvc := identity.NewService(repo, hasher)

	guard := middleware.Protect(tokens, repo)
	adminOnly := middleware.RequireRole(identity.RoleAdmin)

	api := app.Group("/api")
	RegisterAuthRoutes(api, auth.NewHandler(authSvc), guard)
	RegisterUserRoutes(api, rosterSvc, guard, adminOnly)

	return nil
}
