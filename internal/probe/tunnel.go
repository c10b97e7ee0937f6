// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
	"fleet-readiness/internal/config"
	"fleet-readiness/internal/fleet"
	"fmt"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type TunnelOptions struct {
	User           string
	PrivateKeyPath string
	Port           int
	DialTimeout    time.Duration
	ConnectTimeout time.Duration
	Timeout        time.Duration
}

// TunnelExecutor runs curl against localhost on the target host over SSH and reads the status
// code from its output.
type TunnelExecutor struct {
	options TunnelOptions
	config  *ssh.ClientConfig
	address func(host fleet.Host) string
}

func NewTunnelExecutor(options TunnelOptions) (*TunnelExecutor, error) {
	if options.User == "" {
		return nil, config.NewConfigurationError(nil, "ssh.user is required for tunneled probes")
	}
	if options.PrivateKeyPath == "" {
		return nil, config.NewConfigurationError(nil, "ssh.privateKeyPath is required for tunneled probes")
	}

	key, err := os.ReadFile(options.PrivateKeyPath)
	if err != nil {
		return nil, config.NewConfigurationError(err, "could not read ssh private key %s", options.PrivateKeyPath)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, config.NewConfigurationError(err, "could not parse ssh private key %s", options.PrivateKeyPath)
	}

	if options.Port == 0 {
		options.Port = 22
	}

	port := strconv.Itoa(options.Port)
	return &TunnelExecutor{
		options: options,
		config: &ssh.ClientConfig{
			User: options.User,
			Auth: []ssh.AuthMethod{ssh.PublicKeys(signer)},
			// Hosts are recreated with fresh host keys on every provisioning run.
			HostKeyCallback: ssh.InsecureIgnoreHostKey(),
			Timeout:         options.DialTimeout,
		},
		address: func(host fleet.Host) string {
			return net.JoinHostPort(host.FQDN, port)
		},
	}, nil
}

func (e *TunnelExecutor) Execute(ctx context.Context, host fleet.Host, probe EndpointProbe) Outcome {
	address := e.address(host)
	command := curlCommand(probe, e.options.ConnectTimeout, e.options.Timeout)
	log.Debug().Msgf("Running %q on %s", command, address)

	client, err := e.dial(ctx, address)
	if err != nil {
		return Outcome{StatusCode: NoConnection, Err: fmt.Errorf("failed to open ssh session to %s: %w", address, err)}
	}
	defer client.Close()

	// Closing the client unblocks a running session when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = client.Close()
		case <-done:
		}
	}()

	session, err := client.NewSession()
	if err != nil {
		return Outcome{StatusCode: NoConnection, Err: fmt.Errorf("failed to open ssh session to %s: %w", address, err)}
	}
	defer session.Close()

	output, runErr := session.Output(command)
	if ctx.Err() != nil {
		return Outcome{StatusCode: NoConnection, Err: ctx.Err()}
	}

	statusCode, body, err := parseCurlOutput(string(output))
	if err != nil {
		if runErr != nil {
			err = errors.Join(runErr, err)
		}
		return Outcome{StatusCode: NoConnection, Body: body, Err: err}
	}

	outcome := Outcome{StatusCode: statusCode, Body: body}
	if runErr != nil {
		outcome.Err = fmt.Errorf("remote request on %s failed: %w", address, runErr)
	}
	return outcome
}

func (e *TunnelExecutor) dial(ctx context.Context, address string) (*ssh.Client, error) {
	dialer := &net.Dialer{Timeout: e.options.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}

	if e.options.DialTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(e.options.DialTimeout))
	}
	clientConn, channels, requests, err := ssh.NewClientConn(conn, address, e.config)
	if err != nil {
		// NewClientConn closes conn on error
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(clientConn, channels, requests), nil
}

func curlCommand(probe EndpointProbe, connectTimeout time.Duration, timeout time.Duration) string {
	url := fmt.Sprintf("http://localhost:%d%s", probe.Port, probe.Path)
	return fmt.Sprintf("curl -sS -o - -w '\\n%%{http_code}' --connect-timeout %s --max-time %s %s",
		seconds(connectTimeout), seconds(timeout), shellQuote(url))
}

// shellQuote wraps value in single quotes for the remote shell.
func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// parseCurlOutput splits the body from the status code curl appends on its own last line.
func parseCurlOutput(output string) (int, string, error) {
	output = strings.TrimRight(output, "\r\n")
	body, code := "", output
	if idx := strings.LastIndex(output, "\n"); idx >= 0 {
		body, code = output[:idx], output[idx+1:]
	}

	code = strings.TrimSpace(code)
	if !isStatusCode(code) {
		return NoConnection, body, fmt.Errorf("%w: %q", ErrMalformedStatus, code)
	}
	statusCode, _ := strconv.Atoi(code)
	return statusCode, body, nil
}

func isStatusCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
