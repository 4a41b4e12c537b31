// Package manifest reads the static build manifest that records the
// deployed version.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dennis-koster/dlf-graphql-example/internal/domain"
)

// ErrMalformed is returned when the manifest is not a JSON object or its
// version is not a string.
var ErrMalformed = errors.New("manifest: malformed")

// Reader loads the manifest from a fixed location. It does not cache.
type Reader struct {
	path string
}

// NewReader resolves path against root unless path is absolute.
func NewReader(root, path string) *Reader {
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return &Reader{path: path}
}

// Path returns the resolved manifest location.
func (r *Reader) Path() string {
	return r.path
}

// Read loads and decodes the manifest.
func (r *Reader) Read() (domain.VersionManifest, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return domain.VersionManifest{}, fmt.Errorf("read manifest %s: %w", r.path, err)
	}
	return Parse(raw)
}

// Parse decodes manifest bytes. Missing or null keys yield empty fields.
func Parse(raw []byte) (domain.VersionManifest, error) {
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return domain.VersionManifest{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if attrs == nil {
		return domain.VersionManifest{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}

	var (
		m   domain.VersionManifest
		err error
	)
	if m.Name, err = stringAttr(attrs, "name"); err != nil {
		return domain.VersionManifest{}, err
	}
	if m.Version, err = stringAttr(attrs, "version"); err != nil {
		return domain.VersionManifest{}, err
	}
	return m, nil
}

func stringAttr(attrs map[string]json.RawMessage, key string) (string, error) {
	raw, ok := attrs[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %q is not a string", ErrMalformed, key)
	}
	return s, nil
}
