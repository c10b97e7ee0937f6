// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package readiness

import (
	"fleet-readiness/internal/fleet"
	"fleet-readiness/internal/probe"
	"time"
)

// CheckResult is the outcome of one probe against one host after retries.
type CheckResult struct {
	Host       string              `json:"host"`
	Probe      probe.EndpointProbe `json:"probe"`
	Success    bool                `json:"success"`
	StatusCode int                 `json:"statusCode"`
	Attempts   int                 `json:"attempts"`
	Body       string              `json:"body,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type HostResult struct {
	Host    fleet.Host    `json:"host"`
	Results []CheckResult `json:"results"`
}

// Ready reports whether every probe of the host passed.
func (h HostResult) Ready() bool {
	return h.FailedChecks() == 0
}

func (h HostResult) FailedChecks() int {
	failed := 0
	for _, result := range h.Results {
		if !result.Success {
			failed++
		}
	}
	return failed
}

// Summary aggregates the results of a fleet run.
type Summary struct {
	RunID        string       `json:"runId"`
	StartedAt    time.Time    `json:"startedAt"`
	FinishedAt   time.Time    `json:"finishedAt"`
	HostsChecked int          `json:"hostsChecked"`
	TotalChecks  int          `json:"totalChecks"`
	PassedChecks int          `json:"passedChecks"`
	FailedChecks int          `json:"failedChecks"`
	FailedHosts  []string     `json:"failedHosts"`
	Hosts        []HostResult `json:"hosts"`
}

func newSummary(runID string, hostCount int, startedAt time.Time) *Summary {
	return &Summary{
		RunID:       runID,
		StartedAt:   startedAt,
		FailedHosts: make([]string, 0),
		Hosts:       make([]HostResult, hostCount),
	}
}

// add folds the result of the host at position index into the summary.
func (s *Summary) add(index int, result HostResult) {
	s.Hosts[index] = result
	s.HostsChecked++
	for _, check := range result.Results {
		s.TotalChecks++
		if check.Success {
			s.PassedChecks++
		} else {
			s.FailedChecks++
		}
	}
}

func (s *Summary) finalize(finishedAt time.Time) {
	s.FinishedAt = finishedAt
	for _, host := range s.Hosts {
		if !host.Ready() {
			s.FailedHosts = append(s.FailedHosts, host.Host.FQDN)
		}
	}
}

// OK reports whether no check failed.
func (s Summary) OK() bool {
	return s.FailedChecks == 0
}

func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
