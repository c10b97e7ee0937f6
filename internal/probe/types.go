// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
	"fleet-readiness/internal/fleet"
	"fmt"
)

// Transport decides how a probe reaches its endpoint.
type Transport string

const (
	// TransportDirect requests https://{fqdn}{path} from this machine.
	TransportDirect Transport = "direct"
	// TransportTunneled runs the request on the host itself through an SSH session.
	TransportTunneled Transport = "tunneled"
)

// NoConnection is the status code recorded when no HTTP response was received.
const NoConnection = 0

var (
	ErrMalformedStatus      = errors.New("malformed http status")
	ErrTransportUnavailable = errors.New("no executor configured for transport")
)

func ParseTransport(value string) (Transport, error) {
	switch Transport(value) {
	case TransportDirect, "":
		return TransportDirect, nil
	case TransportTunneled:
		return TransportTunneled, nil
	}
	return "", fmt.Errorf("unknown transport %q", value)
}

// EndpointProbe is a single readiness check definition. Any 2xx response counts as healthy.
type EndpointProbe struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Port      int       `json:"port,omitempty"`
	Transport Transport `json:"transport"`
}

func (p EndpointProbe) String() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Port != 0 {
		return fmt.Sprintf("%s:%d%s", p.Transport, p.Port, p.Path)
	}
	return fmt.Sprintf("%s%s", p.Transport, p.Path)
}

// Outcome is the raw result of one request.
type Outcome struct {
	StatusCode int
	Body       string
	Err        error
}

// Successful reports whether the outcome carries a 2xx status.
func (o Outcome) Successful() bool {
	return o.StatusCode >= 200 && o.StatusCode < 300
}

type Executor interface {
	Execute(ctx context.Context, host fleet.Host, probe EndpointProbe) Outcome
}

// Dispatcher hands each probe to the executor of its transport.
type Dispatcher struct {
	Direct   Executor
	Tunneled Executor
}

func (d *Dispatcher) Execute(ctx context.Context, host fleet.Host, probe EndpointProbe) Outcome {
	var executor Executor
	switch probe.Transport {
	case TransportTunneled:
		executor = d.Tunneled
	default:
		executor = d.Direct
	}

	if executor == nil {
		return Outcome{StatusCode: NoConnection, Err: fmt.Errorf("%w %s", ErrTransportUnavailable, probe.Transport)}
	}
	return executor.Execute(ctx, host, probe)
}
