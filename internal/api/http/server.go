package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/competition-service/internal/config"
	"github.com/spec-kit/competition-service/internal/observability"
)

// NewApp builds the fiber application with global middlewares attached.
func NewApp(cfg config.AppConfig, logger *zap.Logger, metrics *observability.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
		BodyLimit:             1 << 20,
	})
	RegisterMiddlewares(app, logger, metrics, cfg.RequestTimeout())
	return app
}
