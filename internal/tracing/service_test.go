// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"context"
	"fleet-readiness/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"testing"
)

func TestInitialize_Disabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Initialize(context.Background(), config.Tracing{Enabled: false})

	require.NoError(t, err)
	shutdown(context.Background())
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestInitialize_Enabled(t *testing.T) {
	before := otel.GetTracerProvider()
	defer otel.SetTracerProvider(before)

	shutdown, err := Initialize(context.Background(), config.Tracing{Enabled: true, CollectorEndpoint: "localhost:4318"})

	require.NoError(t, err)
	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	shutdown(context.Background())
}

func TestNewSampler(t *testing.T) {
	debug := newSampler(config.Tracing{DebugEnabled: true, SampleRatio: 0.1})
	assert.Equal(t, sdktrace.AlwaysSample().Description(), debug.Description())

	ratio := newSampler(config.Tracing{SampleRatio: 0.25})
	assert.Contains(t, ratio.Description(), "TraceIDRatioBased{0.25}")

	none := newSampler(config.Tracing{SampleRatio: 0})
	assert.Contains(t, none.Description(), "TraceIDRatioBased{0}")
}
