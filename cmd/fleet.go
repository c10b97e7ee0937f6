// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fleet-readiness/internal/config"
	"fmt"
	"github.com/spf13/cobra"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Prints the fully qualified domain names of the active fleet",
	RunE: func(cmd *cobra.Command, args []string) error {
		hosts, err := loadFleet(config.Current)
		if err != nil {
			return err
		}

		for _, host := range hosts {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), host.FQDN); err != nil {
				return err
			}
		}
		return nil
	},
}
