package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/dennis-koster/dlf-graphql-example/internal/api/graphqlapi"
	"github.com/dennis-koster/dlf-graphql-example/internal/api/http/handlers"
	"github.com/dennis-koster/dlf-graphql-example/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	GraphQL *graphqlapi.Handler
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/graphql", cfg.GraphQL.Post)
	app.Get("/graphql", cfg.GraphQL.Get)

	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
}
