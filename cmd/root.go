// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fleet-readiness/internal/config"
	"fleet-readiness/internal/log"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// errNotReady signals a finished run with failing checks. It is reported by the summary, not
// printed as an error.
var errNotReady = errors.New("fleet is not ready")

var configFile string

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":   "logLevel",
	"region":      "region",
	"hosts":       "hostsFile",
	"variant":     "variant",
	"concurrency": "concurrency",
	"output":      "output",
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "configuration file (default ./config.yml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("region", "westeurope", "Azure region the hosts live in")
	flags.String("hosts", "hosts.csv", "host table with the columns prefix,slesVersion,spVersion,suffix")
	flags.String("variant", "web", "probe preset used when no probes are configured (web, web+internal)")
	flags.Int("concurrency", 1, "number of hosts checked at the same time")
	flags.StringP("output", "o", "table", "summary format (table, json)")

	rootCmd.AddCommand(initCmd, checkCmd, fleetCmd, watchCmd)
}

var rootCmd = &cobra.Command{
	Use:               "fleetcheck",
	Short:             "Verifies that every host of a Trento test fleet answers its readiness probes",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfiguration,
}

func loadConfiguration(cmd *cobra.Command, args []string) error {
	for flag, key := range flagKeys {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			return err
		}
	}

	if err := config.Load(configFile); err != nil {
		return err
	}

	if strings.EqualFold(config.Current.Output, "json") {
		log.Output = os.Stderr
	} else {
		log.Output = os.Stdout
	}
	log.Configure(config.Current.LogLevel, config.Current.LogFormat)
	return nil
}

// Execute runs the command line and exits with 0 when everything passed and 1 otherwise.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errNotReady) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
