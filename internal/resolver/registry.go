package resolver

import (
	"go.uber.org/zap"

	"github.com/dennis-koster/dlf-graphql-example/internal/auth"
	"github.com/dennis-koster/dlf-graphql-example/internal/config"
	"github.com/dennis-koster/dlf-graphql-example/internal/events"
	"github.com/dennis-koster/dlf-graphql-example/internal/repository"
)

// Dependencies are the collaborators shared by the resolvers.
type Dependencies struct {
	Users      repository.UserRepository
	Hasher     auth.Hasher
	Passwords  auth.PasswordGenerator
	Manifest   ManifestSource
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDefaultRegistry binds every field of the schema.
func NewDefaultRegistry(deps Dependencies, manifestCfg config.ManifestConfig) (*Registry, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := NewRegistry()
	bindings := []struct {
		field string
		res   Resolver
	}{
		{FieldUsers, NewUserFilterResolver()},
		{FieldResetUserPassword, NewPasswordResetResolver(PasswordResetDependencies{
			Users:      deps.Users,
			Hasher:     deps.Hasher,
			Passwords:  deps.Passwords,
			Dispatcher: deps.Dispatcher,
			Logger:     logger,
		})},
		{FieldAPIVersion, NewVersionResolver(deps.Manifest, manifestCfg, logger)},
	}
	for _, b := range bindings {
		if err := reg.Register(b.field, b.res); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
