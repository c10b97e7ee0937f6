// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"fleet-readiness/internal/config"
	"time"
)

func BuildTestConfig() config.Configuration {
	return config.Configuration{
		LogLevel:    "debug",
		Region:      "westeurope",
		HostsFile:   "hosts.csv",
		Variant:     "web",
		Concurrency: 1,
		Output:      "table",
		Fleet: config.Fleet{
			Suffixes:       []string{"rpm"},
			MaxSlesVersion: 16,
		},
		Ssh: config.Ssh{
			User:        "cloudadmin",
			Port:        22,
			DialTimeout: 5 * time.Second,
		},
		Http: config.Http{
			ConnectTimeout: 5 * time.Second,
			Timeout:        10 * time.Second,
		},
		Retry: config.Retry{
			MaxRetries:   5,
			InitialDelay: 10 * time.Second,
			Multiplier:   2,
		},
		Watch: config.Watch{
			Interval: 5 * time.Minute,
			Port:     8080,
		},
		Metrics: config.Metrics{
			Enabled: false,
		},
		Tracing: config.Tracing{
			CollectorEndpoint: "localhost:4318",
			SampleRatio:       0.1,
			Enabled:           false,
		},
	}
}
