package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/competition-service/internal/api/http"
	"github.com/spec-kit/competition-service/internal/api/http/handlers"
	"github.com/spec-kit/competition-service/internal/auth"
	"github.com/spec-kit/competition-service/internal/config"
	"github.com/spec-kit/competition-service/internal/events"
	"github.com/spec-kit/competition-service/internal/feed"
	"github.com/spec-kit/competition-service/internal/observability"
	"github.com/spec-kit/competition-service/internal/persistence"
	"github.com/spec-kit/competition-service/internal/repository"
	"github.com/spec-kit/competition-service/internal/roster"
	"github.com/spec-kit/competition-service/internal/service"
	"github.com/spec-kit/competition-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Warn("running without a database; listing endpoints will fail")
	} else if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	fetcher := feed.NewFetcher(cfg.Feed, feed.NewRedisCache(redis.Client), logger, metrics)

	userRepo := repository.NewUserRepository(pool)
	gymRepo := repository.NewGymRepository(pool)
	competitionRepo := repository.NewCompetitionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartFeedInvalidation(dispatcher, fetcher, logger)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	competitionService := service.NewCompetitionService(service.CompetitionDependencies{
		CompetitionRepo: competitionRepo,
		GymRepo:         gymRepo,
		Dispatcher:      dispatcher,
		Location:        cfg.App.Location(),
		Logger:          logger,
	})
	rosterService := service.NewRosterService(service.RosterDependencies{
		CompetitionRepo: competitionRepo,
		Feeds:           fetcher,
		Options: roster.Options{
			NameColumn:     cfg.Feed.NameColumn,
			DivisionColumn: cfg.Feed.DivisionColumn,
			SideTag:        cfg.Feed.SideTag,
		},
		Metrics: metrics,
		Logger:  logger,
	})
	gymService := service.NewGymService(gymRepo)

	var warmer *worker.RosterWarmer
	if cfg.Feed.WarmCron != "" && pool != nil {
		warmer = worker.NewRosterWarmer(competitionRepo, fetcher, cfg.App.Location(), 5*time.Minute, logger)
		if err := warmer.Start(cfg.Feed.WarmCron); err != nil {
			logger.Fatal("invalid FEED_WARM_CRON", zap.Error(err))
		}
	}

	app := httptransport.NewApp(cfg.App, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Competitions:   handlers.NewCompetitionsHandler(competitionService, rosterService),
		Catalog:        handlers.NewCatalogHandler(gymService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if warmer != nil {
		warmer.Stop(shutdownCtx)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
