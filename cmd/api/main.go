package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dennis-koster/dlf-graphql-example/internal/api/graphqlapi"
	httptransport "github.com/dennis-koster/dlf-graphql-example/internal/api/http"
	"github.com/dennis-koster/dlf-graphql-example/internal/api/http/handlers"
	"github.com/dennis-koster/dlf-graphql-example/internal/auth"
	"github.com/dennis-koster/dlf-graphql-example/internal/config"
	"github.com/dennis-koster/dlf-graphql-example/internal/events"
	"github.com/dennis-koster/dlf-graphql-example/internal/manifest"
	"github.com/dennis-koster/dlf-graphql-example/internal/observability"
	"github.com/dennis-koster/dlf-graphql-example/internal/persistence"
	"github.com/dennis-koster/dlf-graphql-example/internal/repository"
	"github.com/dennis-koster/dlf-graphql-example/internal/resolver"
	"github.com/dennis-koster/dlf-graphql-example/internal/service"
	"github.com/dennis-koster/dlf-graphql-example/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(
		dispatcher,
		service.NewNotificationService(dispatcher, logger, cfg.Notification),
		events.NewRedisForwarder(redis, cfg.Notification.RedisChannel, cfg.Notification.PublishTimeout()),
	)

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	manifestReader := manifest.NewReader(cfg.App.Root, cfg.Manifest.Path)
	logger.Info("version manifest", zap.String("path", manifestReader.Path()))

	registry, err := resolver.NewDefaultRegistry(resolver.Dependencies{
		Users:      userRepo,
		Hasher:     auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Passwords:  auth.NewRandomPasswordGenerator(cfg.Auth.GeneratedPasswordLength),
		Manifest:   manifestReader,
		Dispatcher: dispatcher,
		Logger:     logger,
	}, cfg.Manifest)
	if err != nil {
		logger.Fatal("failed to bind resolvers", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	executor, err := graphqlapi.NewExecutor(graphqlapi.Dependencies{
		Registry: registry,
		Users:    userRepo,
		Metrics:  metrics,
		Logger:   logger,
		Paging:   cfg.GraphQL,
	})
	if err != nil {
		logger.Fatal("failed to build graphql schema", zap.Error(err))
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	versionResolver := resolver.NewVersionResolver(manifestReader, cfg.Manifest, logger)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, versionResolver, pg, redis),
		GraphQL: graphqlapi.NewHandler(executor),
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
