// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fleet-readiness/internal/readiness"
	"fmt"
	"github.com/gosuri/uitable"
	"io"
	"strings"
	"time"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJson  Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(value)) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJson:
		return FormatJson, nil
	}
	return "", fmt.Errorf("unknown output format %q", value)
}

// Write renders the summary in the requested format.
func Write(w io.Writer, summary readiness.Summary, format Format) error {
	if format == FormatJson {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}
	return WriteTable(w, summary)
}

// WriteTable prints the per-host results followed by the totals.
func WriteTable(w io.Writer, summary readiness.Summary) error {
	hosts := uitable.New()
	hosts.MaxColWidth = 60
	hosts.AddRow("HOST", "PROBE", "TRANSPORT", "STATUS", "ATTEMPTS", "RESULT")
	for _, host := range summary.Hosts {
		for _, check := range host.Results {
			hosts.AddRow(host.Host.FQDN, check.Probe.String(), check.Probe.Transport, fmt.Sprintf("%03d", check.StatusCode), check.Attempts, resultLabel(check.Success))
		}
	}

	totals := uitable.New()
	totals.AddRow("Run:", summary.RunID)
	totals.AddRow("Hosts checked:", summary.HostsChecked)
	totals.AddRow("Total checks:", summary.TotalChecks)
	totals.AddRow("Passed:", summary.PassedChecks)
	totals.AddRow("Failed:", summary.FailedChecks)
	totals.AddRow("Duration:", summary.Duration().Round(time.Millisecond))
	if len(summary.FailedHosts) > 0 {
		totals.AddRow("Failed hosts:", strings.Join(summary.FailedHosts, ", "))
	}

	verdict := "All hosts are ready"
	if !summary.OK() {
		verdict = fmt.Sprintf("%d host(s) are not ready", len(summary.FailedHosts))
	}

	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n%s\n", hosts, totals, verdict)
	return err
}

func resultLabel(success bool) string {
	if success {
		return "PASS"
	}
	return "FAIL"
}
