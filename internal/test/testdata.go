// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"fleet-readiness/internal/fleet"
	"fleet-readiness/internal/probe"
	"net/http"
)

func NewTestHost(prefix string, slesVersion int, spVersion int) fleet.Host {
	record := fleet.HostRecord{Prefix: prefix, SlesVersion: slesVersion, SpVersion: spVersion, Suffix: "rpm"}
	return fleet.Host{Record: record, FQDN: record.FQDN("westeurope")}
}

func NewTestFleet(count int) []fleet.Host {
	hosts := make([]fleet.Host, 0, count)
	for i := 0; i < count; i++ {
		hosts = append(hosts, NewTestHost("vm", 15, i+1))
	}
	return hosts
}

// NewTestProbes returns two direct and two tunneled probes.
func NewTestProbes() []probe.EndpointProbe {
	return []probe.EndpointProbe{
		{Name: "web-readyz", Path: "/api/readyz", Transport: probe.TransportDirect},
		{Name: "web-healthz", Path: "/api/healthz", Transport: probe.TransportDirect},
		{Name: "web-internal", Path: "/api/healthz", Port: 4000, Transport: probe.TransportTunneled},
		{Name: "wanda-internal", Path: "/api/healthz", Port: 4001, Transport: probe.TransportTunneled},
	}
}

func OkOutcome() probe.Outcome {
	return probe.Outcome{StatusCode: http.StatusOK, Body: "ok"}
}

func StatusOutcome(statusCode int) probe.Outcome {
	return probe.Outcome{StatusCode: statusCode}
}

func RefusedOutcome(err error) probe.Outcome {
	return probe.Outcome{StatusCode: probe.NoConnection, Err: err}
}
