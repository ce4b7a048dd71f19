package wirejson

import (
	"fmt"
	"reflect"
)

// Registry maps domain types to their codecs: at most one active codec per
// type. It is built once at startup and treated as read-only afterwards, so
// lookups need no locking.
type Registry struct {
	entries map[reflect.Type]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[reflect.Type]any{}}
}

// Register stores the codec for T. Registering a second codec for the same
// type is a configuration error and fails fast.
func Register[T any](r *Registry, c Codec[T]) error {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("wirejson: codec already registered for %s", key)
	}
	r.entries[key] = c
	return nil
}

// MustRegister is Register that panics on duplicate registration.
func MustRegister[T any](r *Registry, c Codec[T]) {
	if err := Register(r, c); err != nil {
		panic(err)
	}
}

// CodecFor retrieves the codec registered for T.
func CodecFor[T any](r *Registry) (Codec[T], bool) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	c, ok := v.(Codec[T])
	return c, ok
}
