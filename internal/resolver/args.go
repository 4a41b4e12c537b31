package resolver

import (
	"fmt"
	"time"

	"github.com/dennis-koster/dlf-graphql-example/pkg/util/errorutil"
)

// Layouts accepted for timestamp arguments passed as strings, including the
// "Y-m-d H:i:s" form emitted by Lighthouse-style DateTime scalars.
var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// ParseTimestamp parses s with the first matching accepted layout. Layouts
// without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func optionalTimestamp(args Args, key string) (*time.Time, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case string:
		if t, err := ParseTimestamp(v); err == nil {
			return &t, nil
		}
		return nil, errorutil.NewValidationError(fmt.Sprintf("argument %q is not a valid timestamp", key), map[string]any{key: v})
	default:
		return nil, errorutil.NewValidationError(fmt.Sprintf("argument %q must be a timestamp", key), nil)
	}
}

func requiredString(args Args, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", errorutil.NewValidationError(fmt.Sprintf("argument %q is required", key), nil)
	}
	s, ok := raw.(string)
	if !ok {
		return "", errorutil.NewValidationError(fmt.Sprintf("argument %q must be a string", key), nil)
	}
	return s, nil
}

func optionalString(args Args, key string) (*string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, errorutil.NewValidationError(fmt.Sprintf("argument %q must be a string", key), nil)
	}
	return &s, nil
}
