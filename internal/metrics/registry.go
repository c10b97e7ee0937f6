// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fleet-readiness/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

var (
	probeAttempts  *prometheus.CounterVec
	probeResults   *prometheus.CounterVec
	hostReady      *prometheus.GaugeVec
	lastRunFailed  prometheus.Gauge
	lastRunSeconds prometheus.Gauge
	lastRunTime    prometheus.Gauge

	registry *prometheus.Registry
)

const namespace = "fleetcheck"

func init() {
	probeAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "probe_attempts_total",
		Help:      "The amount of probe requests sent, by outcome.",
		Namespace: namespace,
	}, []string{"probe", "transport", "outcome"})

	probeResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "probe_results_total",
		Help:      "The amount of finished probes after retries, by outcome.",
		Namespace: namespace,
	}, []string{"probe", "transport", "outcome"})

	hostReady = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:      "host_ready",
		Help:      "Whether the host passed every probe in the last run.",
		Namespace: namespace,
	}, []string{"host"})

	lastRunFailed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "last_run_failed_checks",
		Help:      "The amount of failed checks in the last run.",
		Namespace: namespace,
	})

	lastRunSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "last_run_duration_seconds",
		Help:      "The wall clock duration of the last run.",
		Namespace: namespace,
	})

	lastRunTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "last_run_timestamp_seconds",
		Help:      "The unix time the last run finished.",
		Namespace: namespace,
	})

	registry = prometheus.NewRegistry()
	registry.MustRegister(probeAttempts, probeResults, hostReady, lastRunFailed, lastRunSeconds, lastRunTime)
}

func outcomeLabel(success bool) string {
	return utils.IfThenElse(success, "success", "failure")
}

// Recorder updates the registry. A disabled recorder drops every observation.
type Recorder struct {
	enabled bool
}

func NewRecorder(enabled bool) *Recorder {
	return &Recorder{enabled: enabled}
}

func (r *Recorder) RecordAttempt(probe string, transport string, success bool) {
	if r.enabled {
		probeAttempts.With(prometheus.Labels{
			"probe":     probe,
			"transport": transport,
			"outcome":   outcomeLabel(success),
		}).Inc()
	}
}

func (r *Recorder) RecordProbeResult(probe string, transport string, success bool) {
	if r.enabled {
		probeResults.With(prometheus.Labels{
			"probe":     probe,
			"transport": transport,
			"outcome":   outcomeLabel(success),
		}).Inc()
	}
}

func (r *Recorder) RecordHost(host string, ready bool) {
	if r.enabled {
		var value = float64(utils.IfThenElse(ready, 1, 0))
		hostReady.With(prometheus.Labels{"host": host}).Set(value)
	}
}

func (r *Recorder) RecordRun(failedChecks int, duration time.Duration, finishedAt time.Time) {
	if r.enabled {
		lastRunFailed.Set(float64(failedChecks))
		lastRunSeconds.Set(duration.Seconds())
		lastRunTime.Set(float64(finishedAt.Unix()))
	}
}

// WriteTextfile dumps the registry in the text exposition format, e.g. for the node exporter
// textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
