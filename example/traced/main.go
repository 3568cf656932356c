// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command traced resolves a handful of keys with tracing enabled and
// writes the recorded spans to stdout. Each resolution shows up as a
// Resolver.Resolve span carrying the key and winning origin.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/z5labs/microcfg"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

func main() {
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		slog.Error("failed to initialize stdout trace exporter", slog.Any("error", err))
		os.Exit(1)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
	)
	defer tp.Shutdown(context.Background())
	otel.SetTracerProvider(tp)

	logHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})

	r, err := microcfg.New(
		microcfg.LogHandler(logHandler),
	)
	if err != nil {
		slog.Error("failed to construct resolver", slog.Any("error", err))
		os.Exit(1)
	}

	for _, key := range []string{"DATABASE_URI", "LISTEN_ADDR", "SHOWN_ALERT"} {
		v, err := r.Resolve(context.Background(), key)
		if err != nil {
			slog.Warn("failed to resolve key", slog.String("key", key), slog.Any("error", err))
			continue
		}
		slog.Info("resolved key", slog.String("key", key), slog.String("origin", v.Origin.String()))
	}
}
