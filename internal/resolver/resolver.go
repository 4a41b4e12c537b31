// Package resolver holds the GraphQL field resolvers. Each resolver is bound
// to one schema field through a Registry; the executor owns parsing,
// coercion, field selection and pagination.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Field names bound by this package.
const (
	FieldUsers             = "users"
	FieldResetUserPassword = "resetUserPassword"
	FieldAPIVersion        = "apiVersion"
)

// ErrUnknownField is returned when no resolver is bound to a field.
var ErrUnknownField = errors.New("resolver: unknown field")

// Args are the field arguments after the executor's scalar coercion.
type Args map[string]any

// Resolver handles a single schema field.
type Resolver interface {
	Resolve(ctx context.Context, args Args) (any, error)
}

// Func adapts a function to the Resolver interface.
type Func func(ctx context.Context, args Args) (any, error)

// Resolve calls f.
func (f Func) Resolve(ctx context.Context, args Args) (any, error) {
	return f(ctx, args)
}

// Registry maps schema field names to resolvers.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]Resolver)}
}

// Register binds res to field. A field can be bound once.
func (r *Registry) Register(field string, res Resolver) error {
	if field == "" || res == nil {
		return errors.New("resolver: field and resolver are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resolvers[field]; exists {
		return fmt.Errorf("resolver: field %q already registered", field)
	}
	r.resolvers[field] = res
	return nil
}

// Lookup returns the resolver bound to field.
func (r *Registry) Lookup(field string) (Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resolvers[field]
	return res, ok
}

// Resolve dispatches to the resolver bound to field.
func (r *Registry) Resolve(ctx context.Context, field string, args Args) (any, error) {
	res, ok := r.Lookup(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return res.Resolve(ctx, args)
}

// Fields lists bound field names in sorted order.
func (r *Registry) Fields() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields := make([]string, 0, len(r.resolvers))
	for field := range r.resolvers {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
