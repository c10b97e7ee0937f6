// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"fleet-readiness/internal/config"
	"maps"
	"slices"
	"strings"
)

// Presets reproduce the two deployment variants. Both probe the public web endpoints; the
// second also asks the internal services through the host.
var Presets = map[string][]EndpointProbe{
	"web": {
		{Name: "web-readyz", Path: "/api/readyz", Transport: TransportDirect},
		{Name: "web-healthz", Path: "/api/healthz", Transport: TransportDirect},
	},
	"web+internal": {
		{Name: "web-readyz", Path: "/api/readyz", Transport: TransportDirect},
		{Name: "web-healthz", Path: "/api/healthz", Transport: TransportDirect},
		{Name: "web-internal", Path: "/api/healthz", Port: 4000, Transport: TransportTunneled},
		{Name: "wanda-internal", Path: "/api/healthz", Port: 4001, Transport: TransportTunneled},
	},
}

// FromConfig builds the probe list. Explicitly configured probes win over the named variant.
func FromConfig(probes []config.Probe, variant string) ([]EndpointProbe, error) {
	if len(probes) == 0 {
		preset, ok := Presets[variant]
		if !ok {
			return nil, config.NewConfigurationError(nil, "unknown variant %q, known variants: %s", variant, strings.Join(slices.Sorted(maps.Keys(Presets)), ", "))
		}
		return slices.Clone(preset), nil
	}

	endpointProbes := make([]EndpointProbe, 0, len(probes))
	for i, p := range probes {
		transport, err := ParseTransport(p.Transport)
		if err != nil {
			return nil, config.NewConfigurationError(err, "probe %d", i)
		}
		if !strings.HasPrefix(p.Path, "/") {
			return nil, config.NewConfigurationError(nil, "probe %d: path %q must start with /", i, p.Path)
		}
		if transport == TransportTunneled && p.Port <= 0 {
			return nil, config.NewConfigurationError(nil, "probe %d: tunneled probes need a port", i)
		}
		endpointProbes = append(endpointProbes, EndpointProbe{Name: p.Name, Path: p.Path, Port: p.Port, Transport: transport})
	}
	return endpointProbes, nil
}

// NeedsTunnel reports whether any probe requires remote execution.
func NeedsTunnel(probes []EndpointProbe) bool {
	return slices.ContainsFunc(probes, func(p EndpointProbe) bool {
		return p.Transport == TransportTunneled
	})
}
