// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"crypto/tls"
	"fleet-readiness/internal/fleet"
	"fmt"
	"github.com/rs/zerolog/log"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"
)

// maxBodySize bounds the diagnostic body kept per response.
const maxBodySize = 4096

// DirectExecutor requests the endpoint over HTTPS without verifying the certificate. The
// hosts use self-signed certificates issued at provisioning time.
type DirectExecutor struct {
	client *http.Client
}

func NewDirectExecutor(connectTimeout time.Duration, timeout time.Duration) *DirectExecutor {
	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: connectTimeout,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
		Proxy:               http.ProxyFromEnvironment,
	}

	return &DirectExecutor{
		client: &http.Client{Transport: transport, Timeout: timeout},
	}
}

func (e *DirectExecutor) Execute(ctx context.Context, host fleet.Host, probe EndpointProbe) Outcome {
	url := directUrl(host, probe)
	log.Debug().Msgf("Performing GET request for url %s", url)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{StatusCode: NoConnection, Err: fmt.Errorf("failed to create request for url %s: %w", url, err)}
	}

	response, err := e.client.Do(request)
	if err != nil {
		return Outcome{StatusCode: NoConnection, Err: fmt.Errorf("failed to perform GET request to %s: %w", url, err)}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		log.Debug().Err(err).Msgf("Could not read response body of %s", url)
	}

	return Outcome{StatusCode: response.StatusCode, Body: string(body)}
}

func directUrl(host fleet.Host, probe EndpointProbe) string {
	address := host.FQDN
	if probe.Port != 0 {
		address = net.JoinHostPort(host.FQDN, strconv.Itoa(probe.Port))
	}
	return fmt.Sprintf("https://%s%s", address, probe.Path)
}
