// Package graphqlapi mounts the resolver registry on a graphql-go executor.
// The executor owns argument coercion, field selection and pagination.
package graphqlapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/dennis-koster/dlf-graphql-example/internal/config"
	"github.com/dennis-koster/dlf-graphql-example/internal/domain"
	"github.com/dennis-koster/dlf-graphql-example/internal/observability"
	"github.com/dennis-koster/dlf-graphql-example/internal/repository"
	"github.com/dennis-koster/dlf-graphql-example/internal/resolver"
	"github.com/dennis-koster/dlf-graphql-example/pkg/util/errorutil"
)

// Dependencies bundles what the executor needs.
type Dependencies struct {
	Registry *resolver.Registry
	Users    repository.UserRepository
	Metrics  *observability.Metrics
	Logger   *zap.Logger
	Paging   config.GraphQLConfig
}

// Executor runs GraphQL requests against the bound resolvers.
type Executor struct {
	schema   graphql.Schema
	registry *resolver.Registry
	users    repository.UserRepository
	metrics  *observability.Metrics
	logger   *zap.Logger
	paging   config.GraphQLConfig
}

// NewExecutor builds the schema and binds each field to the registry.
func NewExecutor(deps Dependencies) (*Executor, error) {
	if deps.Registry == nil || deps.Users == nil {
		return nil, errors.New("graphql: registry and user repository are required")
	}
	e := &Executor{
		registry: deps.Registry,
		users:    deps.Users,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		paging:   deps.Paging,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.paging.DefaultPageSize <= 0 {
		e.paging.DefaultPageSize = 15
	}
	if e.paging.MaxPageSize < e.paging.DefaultPageSize {
		e.paging.MaxPageSize = e.paging.DefaultPageSize
	}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    e.queryType(),
		Mutation: e.mutationType(),
	})
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	e.schema = schema
	return e, nil
}

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type:    graphql.NewNonNull(graphql.ID),
			Resolve: userField(func(u domain.User) any { return u.ID }),
		},
		"name": &graphql.Field{
			Type:    graphql.NewNonNull(graphql.String),
			Resolve: userField(func(u domain.User) any { return u.Name }),
		},
		"email": &graphql.Field{
			Type:    graphql.NewNonNull(graphql.String),
			Resolve: userField(func(u domain.User) any { return u.Email }),
		},
		"createdAt": &graphql.Field{
			Type:    graphql.NewNonNull(dateTimeScalar),
			Resolve: userField(func(u domain.User) any { return u.CreatedAt }),
		},
		"updatedAt": &graphql.Field{
			Type:    graphql.NewNonNull(dateTimeScalar),
			Resolve: userField(func(u domain.User) any { return u.UpdatedAt }),
		},
	},
})

func userField(get func(domain.User) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		switch u := p.Source.(type) {
		case domain.User:
			return get(u), nil
		case *domain.User:
			return get(*u), nil
		}
		return nil, fmt.Errorf("unexpected source %T", p.Source)
	}
}

func (e *Executor) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			resolver.FieldUsers: &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Args: graphql.FieldConfigArgument{
					"createdAfter": &graphql.ArgumentConfig{Type: dateTimeScalar},
					"first":        &graphql.ArgumentConfig{Type: graphql.Int},
					"page":         &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: e.resolveUsers,
			},
			resolver.FieldAPIVersion: &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: e.bind(resolver.FieldAPIVersion),
			},
		},
	})
}

func (e *Executor) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			resolver.FieldResetUserPassword: &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"password": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: e.bind(resolver.FieldResetUserPassword),
			},
		},
	})
}

func (e *Executor) bind(field string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		return e.call(p.Context, field, resolver.Args(p.Args))
	}
}

// resolveUsers obtains the query handle from the bound resolver, then pages
// and executes it.
func (e *Executor) resolveUsers(p graphql.ResolveParams) (any, error) {
	args := resolver.Args{}
	if v, ok := p.Args["createdAfter"]; ok {
		args["createdAfter"] = v
	}
	handle, err := e.call(p.Context, resolver.FieldUsers, args)
	if err != nil {
		return nil, err
	}
	query, ok := handle.(repository.UserQuery)
	if !ok {
		return nil, e.internal(resolver.FieldUsers, fmt.Errorf("unexpected handle %T", handle))
	}

	page := e.page(p.Args)
	users, err := e.users.Find(p.Context, query, page)
	if err != nil {
		return nil, e.internal(resolver.FieldUsers, fmt.Errorf("find users: %w", err))
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (e *Executor) page(args map[string]any) repository.Page {
	first := e.paging.DefaultPageSize
	if v, ok := args["first"].(int); ok && v > 0 {
		first = v
	}
	if first > e.paging.MaxPageSize {
		first = e.paging.MaxPageSize
	}
	page := 1
	if v, ok := args["page"].(int); ok && v > 1 {
		page = v
	}
	return repository.Page{Limit: first, Offset: (page - 1) * first}
}

// call dispatches through the registry, records metrics and turns failures
// into client-safe domain errors.
func (e *Executor) call(ctx context.Context, field string, args resolver.Args) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	result, err := e.registry.Resolve(ctx, field, args)
	if err == nil {
		e.metrics.RecordResolver(field, "ok", time.Since(start))
		return result, nil
	}

	de := errorutil.ToDomainError(err)
	e.metrics.RecordResolver(field, de.Code, time.Since(start))
	if de.HTTPStatus >= 500 {
		return nil, e.internal(field, err)
	}
	return nil, de
}

func (e *Executor) internal(field string, err error) error {
	de := errorutil.ToDomainError(err)
	e.logger.Error("resolver failed", zap.String("field", field), zap.Error(err))
	return errorutil.NewDomainError(de.Code, de.Message, de.HTTPStatus, nil)
}

// Request is a GraphQL request document with its variables.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Execute runs req.
func (e *Executor) Execute(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}
