// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/z5labs/microcfg/internal/noop"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotFound signals that no source produced a value for a key. Every
// source abstained; nothing failed.
var ErrNotFound = errors.New("microcfg: value not found in any source")

// Origin identifies which source produced a value.
type Origin int

const (
	// OriginUnknown is the zero Origin. It is never returned with a
	// successful resolution.
	OriginUnknown Origin = iota

	// OriginFile means the value is the contents of the file pointed
	// at by the key's indirection environment variable.
	OriginFile

	// OriginEnv means the value came from the key's environment
	// variable itself.
	OriginEnv

	// OriginDotenv means the value came from a registered dotenv file.
	OriginDotenv
)

// String implements the [fmt.Stringer] interface.
func (o Origin) String() string {
	switch o {
	case OriginFile:
		return "file"
	case OriginEnv:
		return "env"
	case OriginDotenv:
		return "dotenv"
	default:
		return "unknown"
	}
}

// Value is a raw, unconverted configuration value along with the
// source that produced it.
type Value struct {
	Raw    string
	Origin Origin
}

type resolverOptions struct {
	logHandler  slog.Handler
	fileSuffix  string
	lookupEnv   func(string) (string, bool)
	fsys        fs.FS
	dotenv      bool
	dotenvPaths []string
}

// Option configures a [Resolver].
type Option interface {
	apply(*resolverOptions)
}

type optionFunc func(*resolverOptions)

func (f optionFunc) apply(ro *resolverOptions) {
	f(ro)
}

// LogHandler sets the slog.Handler the resolver logs with. The default
// handler discards all records.
func LogHandler(h slog.Handler) Option {
	return optionFunc(func(ro *resolverOptions) {
		ro.logHandler = h
	})
}

// FileSuffix overrides the suffix appended to a key to form its
// indirection variable name. The default is [DefaultFileSuffix].
func FileSuffix(suffix string) Option {
	return optionFunc(func(ro *resolverOptions) {
		ro.fileSuffix = suffix
	})
}

// LookupEnv overrides how environment variables are read. The default
// is [os.LookupEnv]. Tests use this to avoid touching the process
// environment.
func LookupEnv(f func(string) (string, bool)) Option {
	return optionFunc(func(ro *resolverOptions) {
		ro.lookupEnv = f
	})
}

// FS overrides the filesystem used for indirection files and dotenv
// files. The default passes paths straight to the operating system.
func FS(fsys fs.FS) Option {
	return optionFunc(func(ro *resolverOptions) {
		ro.fsys = fsys
	})
}

// DotenvPaths replaces the default dotenv files, ./.env.local and
// ./.env, with the given paths. Files are registered, and thus take
// precedence, in the order given. Missing files are skipped.
func DotenvPaths(paths ...string) Option {
	return optionFunc(func(ro *resolverOptions) {
		ro.dotenvPaths = paths
	})
}

// WithoutDotenv disables the dotenv source entirely.
func WithoutDotenv() Option {
	return optionFunc(func(ro *resolverOptions) {
		ro.dotenv = false
	})
}

// Resolver looks keys up across the file indirection, environment
// variable and dotenv sources, in that order.
//
// A Resolver is safe for concurrent use. Its dotenv files are parsed
// once, at construction, and treated as read only afterwards.
type Resolver struct {
	log    *slog.Logger
	tracer trace.Tracer

	file   fileSource
	env    envVarSource
	dotenv *dotenvSource
}

// New constructs a [Resolver]. It fails only if a dotenv file exists
// but cannot be loaded.
func New(opts ...Option) (*Resolver, error) {
	ro := &resolverOptions{
		logHandler:  noop.LogHandler{},
		dotenv:      true,
		dotenvPaths: []string{".env.local", ".env"},
	}
	for _, opt := range opts {
		opt.apply(ro)
	}

	r := &Resolver{
		log:    slog.New(ro.logHandler),
		tracer: otel.Tracer("microcfg"),
		file:   newFileSource(ro.fileSuffix, ro.lookupEnv, ro.fsys),
		env:    newEnvVarSource(ro.lookupEnv),
	}
	if !ro.dotenv {
		return r, nil
	}

	r.dotenv = newDotenvSource(ro.fsys)
	for _, path := range ro.dotenvPaths {
		err := r.dotenv.register(path)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Resolve looks key up in each source, in priority order, and returns
// the first value found along with its origin.
//
// A source with no value for key abstains and the next source is
// consulted. If every source abstains, Resolve returns [ErrNotFound].
// If a source fails hard, for example an indirection variable pointing
// at an unreadable file, that failure is returned immediately and no
// lower priority source is consulted.
func (r *Resolver) Resolve(ctx context.Context, key string) (Value, error) {
	spanCtx, span := r.tracer.Start(ctx, "Resolver.Resolve", trace.WithAttributes(
		attribute.String("config.key", key),
	))
	defer span.End()

	raw, err := r.file.lookup(spanCtx, key)
	if err == nil {
		return r.found(spanCtx, span, key, raw, OriginFile), nil
	}
	if !errors.Is(err, ErrNotFound) {
		r.log.ErrorContext(spanCtx, "file source failed", slog.String("key", key), slog.Any("error", err))
		span.RecordError(err)
		return Value{}, err
	}

	raw, err = r.env.lookup(spanCtx, key)
	if err == nil {
		return r.found(spanCtx, span, key, raw, OriginEnv), nil
	}
	if !errors.Is(err, ErrNotFound) {
		r.log.ErrorContext(spanCtx, "env source failed", slog.String("key", key), slog.Any("error", err))
		span.RecordError(err)
		return Value{}, err
	}

	if r.dotenv != nil {
		raw, err = r.dotenv.lookup(spanCtx, key)
		if err == nil {
			return r.found(spanCtx, span, key, raw, OriginDotenv), nil
		}
		if !errors.Is(err, ErrNotFound) {
			r.log.ErrorContext(spanCtx, "dotenv source failed", slog.String("key", key), slog.Any("error", err))
			span.RecordError(err)
			return Value{}, err
		}
	}

	r.log.DebugContext(spanCtx, "no source produced a value", slog.String("key", key))
	return Value{}, ErrNotFound
}

func (r *Resolver) found(ctx context.Context, span trace.Span, key, raw string, origin Origin) Value {
	span.SetAttributes(attribute.String("config.origin", origin.String()))
	r.log.DebugContext(ctx, "resolved value", slog.String("key", key), slog.String("origin", origin.String()))
	return Value{
		Raw:    raw,
		Origin: origin,
	}
}
