// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// RequiredError occurs when a required key has no value or when a key,
// required or optional, has a value which fails conversion. It carries
// everything an operator needs to diagnose the failure: the key, the
// requested type and the underlying cause.
type RequiredError struct {
	Key        string
	TargetType string
	Cause      error
}

// Error implements the [builtin.error] interface.
func (e RequiredError) Error() string {
	return fmt.Sprintf("config key %q could not provide a %s: %s", e.Key, e.TargetType, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e RequiredError) Unwrap() error {
	return e.Cause
}

type memoResult struct {
	value any
	err   error
}

// Registry binds configuration keys to memoized accessors backed by a
// [Resolver].
//
// Each key is resolved and converted at most once per Registry, no
// matter how many accessors reference it or how many goroutines call
// them concurrently. The first caller performs the work; every caller
// observes the same result, value or error, forever after. Mutating
// the environment after a key has been resolved has no effect on it.
//
// A key must always be bound with the same chain: the memo table is
// keyed by name alone.
type Registry struct {
	resolver *Resolver

	group singleflight.Group

	mu   sync.RWMutex
	memo map[string]memoResult
}

// NewRegistry constructs a [Registry] on top of r.
func NewRegistry(r *Resolver) *Registry {
	return &Registry{
		resolver: r,
		memo:     make(map[string]memoResult),
	}
}

// Resolver returns the underlying [Resolver].
func (reg *Registry) Resolver() *Resolver {
	return reg.resolver
}

func (reg *Registry) resolveOnce(ctx context.Context, key string, chain Chain) (any, error) {
	reg.mu.RLock()
	res, ok := reg.memo[key]
	reg.mu.RUnlock()
	if ok {
		return res.value, res.err
	}

	v, err, _ := reg.group.Do(key, func() (any, error) {
		// A concurrent caller may have stored the result between our
		// read above and entering the singleflight group.
		reg.mu.RLock()
		res, ok := reg.memo[key]
		reg.mu.RUnlock()
		if ok {
			return res.value, res.err
		}

		value, err := reg.resolve(ctx, key, chain)

		reg.mu.Lock()
		reg.memo[key] = memoResult{value: value, err: err}
		reg.mu.Unlock()

		return value, err
	})
	return v, err
}

func (reg *Registry) resolve(ctx context.Context, key string, chain Chain) (any, error) {
	raw, err := reg.resolver.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	return chain.Run(raw.Raw)
}

// Lookup resolves key through reg, converts it with chain and asserts
// the result is a T. The result, including any failure, is memoized.
// Absence is reported as [ErrNotFound].
func Lookup[T any](ctx context.Context, reg *Registry, key string, chain Chain) (T, error) {
	var zero T
	v, err := reg.resolveOnce(ctx, key, chain)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, ChainResultError{Want: typeName[T](), Got: typeNameOf(v)}
	}
	return t, nil
}

// Bind returns a required accessor for key. The accessor resolves and
// converts the key on first call and returns the memoized value on
// every call after that. It panics with a [RequiredError] if no source
// has a value for key or if the value fails conversion.
func Bind[T any](reg *Registry, key string, chain Chain) func() T {
	return func() T {
		v, err := Lookup[T](context.Background(), reg, key, chain)
		if err != nil {
			panic(RequiredError{Key: key, TargetType: typeName[T](), Cause: err})
		}
		return v
	}
}

// BindOptional returns an optional accessor for key. A key absent from
// every source yields ok set to false instead of a panic. A value
// which is present but fails conversion still panics with a
// [RequiredError]: a malformed value is never treated as absence.
func BindOptional[T any](reg *Registry, key string, chain Chain) func() (T, bool) {
	return func() (T, bool) {
		v, err := Lookup[T](context.Background(), reg, key, chain)
		if errors.Is(err, ErrNotFound) {
			var zero T
			return zero, false
		}
		if err != nil {
			panic(RequiredError{Key: key, TargetType: typeName[T](), Cause: err})
		}
		return v, true
	}
}
