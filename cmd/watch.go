// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fleet-readiness/internal/api"
	"fleet-readiness/internal/config"
	"fleet-readiness/internal/scheduler"
	"fleet-readiness/internal/tracing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Checks the fleet periodically and serves the latest summary over HTTP",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	current := config.Current
	ctx := cmd.Context()

	checker, hosts, err := newChecker(current)
	if err != nil {
		return err
	}

	shutdown, err := tracing.Initialize(ctx, current.Tracing)
	if err != nil {
		return config.NewConfigurationError(err, "could not initialize tracing")
	}
	defer shutdown(context.Background())

	err = scheduler.StartScheduler(current.Watch.Interval, func() {
		summary := checker.CheckFleet(ctx, hosts)
		api.Publish(summary)
		writeMetricsTextfile(current)

		log.Info().Str("runId", summary.RunID).Msgf("Readiness run finished: %d/%d checks passed, %d host(s) not ready",
			summary.PassedChecks, summary.TotalChecks, len(summary.FailedHosts))
	})
	if err != nil {
		return config.NewConfigurationError(err, "invalid watch.interval %s", current.Watch.Interval)
	}
	defer scheduler.StopScheduler()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- api.Listen(current.Watch.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		return api.Shutdown()
	}
}
