package resolver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dennis-koster/dlf-graphql-example/internal/config"
	"github.com/dennis-koster/dlf-graphql-example/internal/domain"
	"github.com/dennis-koster/dlf-graphql-example/pkg/util/errorutil"
)

// ManifestSource loads the version manifest.
type ManifestSource interface {
	Read() (domain.VersionManifest, error)
}

// VersionResolver reports the deployed version from the manifest, read on
// every call.
type VersionResolver struct {
	manifest ManifestSource
	fallback string
	onError  config.ManifestOnError
	logger   *zap.Logger
}

// NewVersionResolver constructs the resolver.
func NewVersionResolver(manifest ManifestSource, cfg config.ManifestConfig, logger *zap.Logger) *VersionResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	onError := cfg.OnError
	if onError == "" {
		onError = config.ManifestOnErrorFail
	}
	return &VersionResolver{
		manifest: manifest,
		fallback: cfg.Fallback,
		onError:  onError,
		logger:   logger,
	}
}

// APIVersion returns the manifest version, or the fallback literal when the
// manifest has none.
func (r *VersionResolver) APIVersion(_ context.Context) (string, error) {
	m, err := r.manifest.Read()
	if err != nil {
		if r.onError == config.ManifestOnErrorFallback {
			r.logger.Warn("manifest unavailable; reporting fallback version", zap.Error(err))
			return r.fallback, nil
		}
		return "", errorutil.NewInternalError(fmt.Errorf("read version manifest: %w", err))
	}
	if !m.HasVersion() {
		return r.fallback, nil
	}
	return m.Version, nil
}

// Resolve implements Resolver.
func (r *VersionResolver) Resolve(ctx context.Context, _ Args) (any, error) {
	return r.APIVersion(ctx)
}
