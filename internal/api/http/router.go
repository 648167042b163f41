package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/competition-service/internal/api/http/handlers"
	"github.com/spec-kit/competition-service/internal/auth"
	"github.com/spec-kit/competition-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Competitions   *handlers.CompetitionsHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	admin := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAdmin()}

	comps := app.Group("/competitions")
	comps.Get("/", cfg.Competitions.List)
	comps.Get("/:id", cfg.AuthMiddleware.Optional, cfg.Competitions.Get)
	comps.Get("/:id/athletes", cfg.Competitions.Athletes)
	comps.Post("/", append(admin, cfg.Competitions.Create)...)
	comps.Put("/:id", append(admin, cfg.Competitions.Update)...)
	comps.Delete("/:id", append(admin, cfg.Competitions.Delete)...)

	app.Get("/calendar", cfg.Competitions.Calendar)

	app.Get("/leagues", cfg.Catalog.Leagues)
	app.Get("/leagues/:code", cfg.Catalog.League)

	app.Get("/gyms", cfg.Catalog.Gyms)
	app.Post("/gyms", append(admin, cfg.Catalog.CreateGym)...)
}
