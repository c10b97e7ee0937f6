// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fleet-readiness/internal/config"
	"fleet-readiness/internal/report"
	"fleet-readiness/internal/tracing"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probes every host of the fleet once and prints a summary",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	current := config.Current

	format, err := report.ParseFormat(current.Output)
	if err != nil {
		return config.NewConfigurationError(err, "invalid output")
	}

	checker, hosts, err := newChecker(current)
	if err != nil {
		return err
	}

	shutdown, err := tracing.Initialize(cmd.Context(), current.Tracing)
	if err != nil {
		return config.NewConfigurationError(err, "could not initialize tracing")
	}
	defer shutdown(context.Background())

	summary := checker.CheckFleet(cmd.Context(), hosts)
	writeMetricsTextfile(current)

	if err := report.Write(cmd.OutOrStdout(), summary, format); err != nil {
		return err
	}

	if !summary.OK() {
		return errNotReady
	}
	return nil
}
