// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fleet-readiness/internal/config"
	"fleet-readiness/internal/fleet"
	"fleet-readiness/internal/metrics"
	"fleet-readiness/internal/probe"
	"fleet-readiness/internal/readiness"
	"fleet-readiness/internal/throttling"
	"github.com/rs/zerolog/log"
)

var (
	directExecutorFunc = func(c config.Configuration) probe.Executor {
		return probe.NewDirectExecutor(c.Http.ConnectTimeout, c.Http.Timeout)
	}
	tunnelExecutorFunc = func(c config.Configuration) (probe.Executor, error) {
		return probe.NewTunnelExecutor(probe.TunnelOptions{
			User:           c.Ssh.User,
			PrivateKeyPath: c.Ssh.PrivateKeyPath,
			Port:           c.Ssh.Port,
			DialTimeout:    c.Ssh.DialTimeout,
			ConnectTimeout: c.Http.ConnectTimeout,
			Timeout:        c.Http.Timeout,
		})
	}
	sleepFunc readiness.SleepFunc
)

// loadFleet reads the host table and applies the fleet filter.
func loadFleet(c config.Configuration) ([]fleet.Host, error) {
	records, err := fleet.LoadTable(c.HostsFile)
	if err != nil {
		return nil, err
	}

	filter := fleet.Filter{Suffixes: c.Fleet.Suffixes, MaxSlesVersion: c.Fleet.MaxSlesVersion}
	return fleet.Active(records, c.Region, filter)
}

// newChecker wires the executors, the retry policy and the fleet. Every error returned here is
// a configuration error and happens before any probe is sent.
func newChecker(c config.Configuration) (*readiness.Checker, []fleet.Host, error) {
	hosts, err := loadFleet(c)
	if err != nil {
		return nil, nil, err
	}

	probes, err := probe.FromConfig(c.Probes, c.Variant)
	if err != nil {
		return nil, nil, err
	}

	dispatcher := &probe.Dispatcher{Direct: directExecutorFunc(c)}
	if probe.NeedsTunnel(probes) {
		tunnel, err := tunnelExecutorFunc(c)
		if err != nil {
			return nil, nil, err
		}
		dispatcher.Tunneled = tunnel
	}

	policy := readiness.Policy{
		MaxRetries:   c.Retry.MaxRetries,
		InitialDelay: c.Retry.InitialDelay,
		Multiplier:   c.Retry.Multiplier,
	}

	options := []readiness.Option{
		readiness.WithConcurrency(c.Concurrency),
		readiness.WithMetrics(metrics.NewRecorder(c.Metrics.Enabled)),
	}
	if sleepFunc != nil {
		options = append(options, readiness.WithSleep(sleepFunc))
	}

	executor := throttling.NewThrottledExecutor(dispatcher, c.Throttling.Requests, c.Throttling.Interval)
	log.Debug().Msgf("Fleet of %d host(s), %d probe(s), retry delays %v", len(hosts), len(probes), policy.Delays())

	return readiness.NewChecker(executor, probes, policy, options...), hosts, nil
}

func writeMetricsTextfile(c config.Configuration) {
	if !c.Metrics.Enabled || c.Metrics.Textfile == "" {
		return
	}
	if err := metrics.WriteTextfile(c.Metrics.Textfile); err != nil {
		log.Warn().Err(err).Msgf("Could not write metrics to %s", c.Metrics.Textfile)
	}
}
