// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"sync"
)

// defaultRegistry backs the package level accessors. It is built
// lazily, on the first accessor call, so merely declaring accessors at
// package scope performs no I/O.
var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	r, err := New()
	if err != nil {
		return nil, err
	}
	return NewRegistry(r), nil
})

// Default returns the process wide [Registry], constructing it on
// first use with the default resolver options. It panics if a default
// dotenv file exists but cannot be loaded.
//
// Code which needs substitutable sources should construct its own
// [Resolver] and [Registry] instead.
func Default() *Registry {
	reg, err := defaultRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}

// Required returns a required accessor for key bound to the process
// wide registry. See [Bind].
func Required[T any](key string, chain Chain) func() T {
	return func() T {
		return Bind[T](Default(), key, chain)()
	}
}

// Optional returns an optional accessor for key bound to the process
// wide registry. See [BindOptional].
func Optional[T any](key string, chain Chain) func() (T, bool) {
	return func() (T, bool) {
		return BindOptional[T](Default(), key, chain)()
	}
}

// String returns a required string accessor for key bound to the
// process wide registry.
func String(key string) func() string {
	return Required[string](key, nil)
}

// OptionalString returns an optional string accessor for key bound to
// the process wide registry.
func OptionalString(key string) func() (string, bool) {
	return Optional[string](key, nil)
}
