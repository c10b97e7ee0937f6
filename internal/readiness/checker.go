// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package readiness

import (
	"context"
	"fleet-readiness/internal/fleet"
	"fleet-readiness/internal/probe"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"sync"
	"time"
)

const tracerName = "fleet-readiness/readiness"

// Checker runs the configured probes against a fleet.
type Checker struct {
	executor    probe.Executor
	probes      []probe.EndpointProbe
	policy      Policy
	concurrency int
	sleep       SleepFunc
	metrics     MetricsRecorder
	now         func() time.Time
}

// MetricsRecorder receives the observations of a run.
type MetricsRecorder interface {
	RecordAttempt(probe string, transport string, success bool)
	RecordProbeResult(probe string, transport string, success bool)
	RecordHost(host string, ready bool)
	RecordRun(failedChecks int, duration time.Duration, finishedAt time.Time)
}

type noopRecorder struct{}

func (noopRecorder) RecordAttempt(string, string, bool)      {}
func (noopRecorder) RecordProbeResult(string, string, bool)  {}
func (noopRecorder) RecordHost(string, bool)                 {}
func (noopRecorder) RecordRun(int, time.Duration, time.Time) {}

type Option func(*Checker)

// WithConcurrency sets how many hosts are checked at the same time. Probes of one host always
// run one after another.
func WithConcurrency(concurrency int) Option {
	return func(c *Checker) {
		if concurrency > 0 {
			c.concurrency = concurrency
		}
	}
}

func WithSleep(sleep SleepFunc) Option {
	return func(c *Checker) {
		c.sleep = sleep
	}
}

// WithMetrics reports attempts, probe results, host readiness and run totals to recorder.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(c *Checker) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

func NewChecker(executor probe.Executor, probes []probe.EndpointProbe, policy Policy, options ...Option) *Checker {
	checker := &Checker{
		executor:    executor,
		probes:      probes,
		policy:      policy,
		concurrency: 1,
		sleep:       wait,
		metrics:     noopRecorder{},
		now:         time.Now,
	}
	for _, option := range options {
		option(checker)
	}
	return checker
}

// CheckEndpoint probes one endpoint until it answers with a 2xx status or the retries are used up.
func (c *Checker) CheckEndpoint(ctx context.Context, host fleet.Host, endpoint probe.EndpointProbe) CheckResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CheckEndpoint", trace.WithAttributes(
		attribute.String("host", host.FQDN),
		attribute.String("probe", endpoint.String()),
		attribute.String("transport", string(endpoint.Transport)),
	))
	defer span.End()

	result := CheckResult{Host: host.FQDN, Probe: endpoint}
	attempt := NewAttempt(c.policy)
	transport := string(endpoint.Transport)

	for {
		outcome := c.executor.Execute(ctx, host, endpoint)
		success := outcome.Successful()
		c.metrics.RecordAttempt(endpoint.String(), transport, success)

		result.StatusCode = outcome.StatusCode
		result.Body = outcome.Body
		result.Error = ""
		if outcome.Err != nil {
			result.Error = outcome.Err.Error()
		}

		action := attempt.Next(success)
		result.Attempts = attempt.Attempts()

		switch action.Kind {
		case ActionSucceed:
			log.Info().Msgf("[%s] %s: OK (HTTP %d, attempt %d/%d)", host.FQDN, endpoint, outcome.StatusCode, result.Attempts, c.policy.MaxRetries)
			result.Success = true
			c.finish(span, result)
			return result

		case ActionGiveUp:
			log.Error().Msgf("[%s] %s: FAILED (HTTP %03d) after %d attempts", host.FQDN, endpoint, outcome.StatusCode, result.Attempts)
			if outcome.Body != "" {
				log.Debug().Msgf("[%s] %s: last response body: %s", host.FQDN, endpoint, outcome.Body)
			}
			c.finish(span, result)
			return result

		case ActionRetry:
			event := log.Warn()
			if outcome.Err != nil {
				event = event.Err(outcome.Err)
			}
			event.Msgf("[%s] %s: HTTP %03d on attempt %d/%d, retrying in %s", host.FQDN, endpoint, outcome.StatusCode, result.Attempts, c.policy.MaxRetries, action.Delay)

			if err := c.sleep(ctx, action.Delay); err != nil {
				log.Error().Err(err).Msgf("[%s] %s: aborted while waiting for the next attempt", host.FQDN, endpoint)
				result.Error = err.Error()
				c.finish(span, result)
				return result
			}
		}
	}
}

func (c *Checker) finish(span trace.Span, result CheckResult) {
	c.metrics.RecordProbeResult(result.Probe.String(), string(result.Probe.Transport), result.Success)

	span.SetAttributes(
		attribute.Int("attempts", result.Attempts),
		attribute.Int("http.status_code", result.StatusCode),
	)
	if !result.Success {
		span.SetStatus(codes.Error, result.Error)
	}
}

// CheckHost runs every probe against the host. A failing probe does not stop the others.
func (c *Checker) CheckHost(ctx context.Context, host fleet.Host) HostResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CheckHost", trace.WithAttributes(attribute.String("host", host.FQDN)))
	defer span.End()

	log.Info().Msgf("Checking host %s", host.FQDN)

	result := HostResult{Host: host, Results: make([]CheckResult, 0, len(c.probes))}
	for _, endpoint := range c.probes {
		result.Results = append(result.Results, c.CheckEndpoint(ctx, host, endpoint))
	}

	ready := result.Ready()
	c.metrics.RecordHost(host.FQDN, ready)
	if !ready {
		span.SetStatus(codes.Error, "host not ready")
		log.Warn().Msgf("Host %s failed %d of %d checks", host.FQDN, result.FailedChecks(), len(result.Results))
	}
	return result
}

type hostOutcome struct {
	index  int
	result HostResult
}

// CheckFleet checks every host and aggregates the results. Hosts are distributed over a fixed
// number of workers; the calling goroutine is the only one touching the summary.
func (c *Checker) CheckFleet(ctx context.Context, hosts []fleet.Host) Summary {
	runID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CheckFleet", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int("hosts", len(hosts)),
	))
	defer span.End()

	log.Info().Str("runId", runID).Msgf("Checking %d host(s) with %d probe(s) each", len(hosts), len(c.probes))

	summary := newSummary(runID, len(hosts), c.now())

	jobs := make(chan int)
	outcomes := make(chan hostOutcome)

	workers := min(c.concurrency, len(hosts))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				outcomes <- hostOutcome{index: index, result: c.CheckHost(ctx, hosts[index])}
			}
		}()
	}

	go func() {
		for index := range hosts {
			jobs <- index
		}
		close(jobs)
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		summary.add(outcome.index, outcome.result)
	}
	summary.finalize(c.now())

	c.metrics.RecordRun(summary.FailedChecks, summary.Duration(), summary.FinishedAt)
	span.SetAttributes(
		attribute.Int("checks.total", summary.TotalChecks),
		attribute.Int("checks.failed", summary.FailedChecks),
	)
	if !summary.OK() {
		span.SetStatus(codes.Error, "fleet not ready")
	}

	return *summary
}
