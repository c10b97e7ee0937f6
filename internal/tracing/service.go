// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"context"
	"fleet-readiness/internal/config"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "fleet-readiness"

// Initialize installs the global tracer provider when tracing is enabled. The returned function
// flushes pending spans and must be called before the process exits.
func Initialize(ctx context.Context, tracing config.Tracing) (func(context.Context), error) {
	if !tracing.Enabled {
		return func(context.Context) {}, nil
	}

	exporterOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(tracing.CollectorEndpoint),
	}

	if !tracing.Https {
		exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(exporterOpts...))
	if err != nil {
		return nil, err
	}

	options := []sdktrace.TracerProviderOption{
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSampler(newSampler(tracing)),
	}

	tp := sdktrace.NewTracerProvider(options...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(b3.New(b3.WithInjectEncoding(b3.B3MultipleHeader)))

	log.Debug().Msgf("Tracing enabled, exporting to %s", tracing.CollectorEndpoint)

	return func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Could not flush traces")
		}
	}, nil
}

// newSampler records every run in debug mode and a share of sampleRatio runs otherwise.
func newSampler(tracing config.Tracing) sdktrace.Sampler {
	if tracing.DebugEnabled {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(tracing.SampleRatio))
}
