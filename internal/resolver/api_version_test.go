package resolver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dennis-koster/dlf-graphql-example/internal/config"
	"github.com/dennis-koster/dlf-graphql-example/internal/domain"
	"github.com/dennis-koster/dlf-graphql-example/internal/manifest"
	"github.com/dennis-koster/dlf-graphql-example/pkg/util/errorutil"
)

func testManifestConfig() config.ManifestConfig {
	return config.ManifestConfig{Path: "manifest.json", Fallback: "onbekend", OnError: config.ManifestOnErrorFail}
}

func TestAPIVersionFromManifestFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(`{"version": "2.3.1"}`), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	res := NewVersionResolver(manifest.NewReader(dir, "manifest.json"), testManifestConfig(), nil)
	got, err := res.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "2.3.1" {
		t.Fatalf("expected 2.3.1, got %v", got)
	}
}

func TestAPIVersionFallsBackWhenVersionAbsent(t *testing.T) {
	res := NewVersionResolver(stubManifest{manifest: domain.VersionManifest{Name: "app"}}, testManifestConfig(), nil)
	got, err := res.APIVersion(context.Background())
	if err != nil {
		t.Fatalf("api version: %v", err)
	}
	if got != "onbekend" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestAPIVersionTreatsEmptyVersionAsAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(`{"name": "app", "version": ""}`), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	res := NewVersionResolver(manifest.NewReader(dir, "manifest.json"), testManifestConfig(), nil)
	got, err := res.APIVersion(context.Background())
	if err != nil {
		t.Fatalf("api version: %v", err)
	}
	if got != "onbekend" {
		t.Fatalf("expected fallback for empty version, got %q", got)
	}
}

func TestAPIVersionReadFailure(t *testing.T) {
	readErr := &fs.PathError{Op: "open", Path: "manifest.json", Err: fs.ErrNotExist}

	t.Run("fail", func(t *testing.T) {
		res := NewVersionResolver(stubManifest{err: readErr}, testManifestConfig(), nil)
		_, err := res.APIVersion(context.Background())
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected wrapped read error, got %v", err)
		}
		if de := errorutil.ToDomainError(err); de.Code != errorutil.CodeInternal {
			t.Fatalf("expected INTERNAL_ERROR, got %s", de.Code)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		cfg := testManifestConfig()
		cfg.OnError = config.ManifestOnErrorFallback
		res := NewVersionResolver(stubManifest{err: readErr}, cfg, nil)
		got, err := res.APIVersion(context.Background())
		if err != nil {
			t.Fatalf("api version: %v", err)
		}
		if got != "onbekend" {
			t.Fatalf("expected fallback, got %q", got)
		}
	})
}

func TestAPIVersionMalformedManifestFailsByDefault(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(`{"version":`), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	cfg := testManifestConfig()
	cfg.OnError = ""
	res := NewVersionResolver(manifest.NewReader(dir, "manifest.json"), cfg, nil)
	if _, err := res.APIVersion(context.Background()); !errors.Is(err, manifest.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
