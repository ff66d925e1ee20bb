package crypto

import (
	"fmt"
	"slices"
)

// Registry is an immutable name-to-primitive lookup table. It is populated
// once during Load and never mutated afterward, so concurrent lookups need
// no synchronization.
type Registry[T any] struct {
	kind    string
	entries map[string]T
}

func newRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, entries: make(map[string]T)}
}

// add registers a primitive under name. Load-time only.
func (r *Registry[T]) add(name string, primitive T) error {
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %s key %q", ErrDuplicateKeyName, r.kind, name)
	}
	r.entries[name] = primitive
	return nil
}

// Get returns the primitive registered under name. A missing name returns an
// error wrapping ErrKeyNotFound, distinct from all crypto failures, so
// callers can tell "never configured" from "configured but broken".
func (r *Registry[T]) Get(name string) (T, error) {
	primitive, ok := r.entries[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s key %q", ErrKeyNotFound, r.kind, name)
	}
	return primitive, nil
}

// Contains reports whether a primitive is registered under name.
func (r *Registry[T]) Contains(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered key names in sorted order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
