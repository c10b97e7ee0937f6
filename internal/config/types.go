// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import "time"

type Configuration struct {
	LogLevel    string `mapstructure:"logLevel"`
	LogFormat   string `mapstructure:"logFormat"`
	Region      string `mapstructure:"region"`
	HostsFile   string `mapstructure:"hostsFile"`
	Variant     string `mapstructure:"variant"`
	Concurrency int    `mapstructure:"concurrency"`
	Output      string `mapstructure:"output"`

	Fleet  Fleet   `mapstructure:"fleet"`
	Probes []Probe `mapstructure:"probes"`

	Ssh        Ssh        `mapstructure:"ssh"`
	Http       Http       `mapstructure:"http"`
	Retry      Retry      `mapstructure:"retry"`
	Throttling Throttling `mapstructure:"throttling"`

	Watch   Watch   `mapstructure:"watch"`
	Metrics Metrics `mapstructure:"metrics"`
	Tracing Tracing `mapstructure:"tracing"`
}

type Fleet struct {
	Suffixes       []string `mapstructure:"suffixes"`
	MaxSlesVersion int      `mapstructure:"maxSlesVersion"`
}

// Probe maps an endpoint to the transport used to reach it.
type Probe struct {
	Name      string `mapstructure:"name"`
	Path      string `mapstructure:"path"`
	Port      int    `mapstructure:"port"`
	Transport string `mapstructure:"transport"`
}

type Ssh struct {
	User           string        `mapstructure:"user"`
	PrivateKeyPath string        `mapstructure:"privateKeyPath"`
	Port           int           `mapstructure:"port"`
	DialTimeout    time.Duration `mapstructure:"dialTimeout"`
}

type Http struct {
	ConnectTimeout time.Duration `mapstructure:"connectTimeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type Retry struct {
	MaxRetries   int           `mapstructure:"maxRetries"`
	InitialDelay time.Duration `mapstructure:"initialDelay"`
	Multiplier   float64       `mapstructure:"multiplier"`
}

// Throttling caps the probe requests sent per interval. Zero requests disables it.
type Throttling struct {
	Requests uint64        `mapstructure:"requests"`
	Interval time.Duration `mapstructure:"interval"`
}

type Watch struct {
	Interval time.Duration `mapstructure:"interval"`
	Port     int           `mapstructure:"port"`
}

type Metrics struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

type Tracing struct {
	CollectorEndpoint string  `mapstructure:"collectorEndpoint"`
	Https             bool    `mapstructure:"https"`
	DebugEnabled      bool    `mapstructure:"debugEnabled"`
	SampleRatio       float64 `mapstructure:"sampleRatio"`
	Enabled           bool    `mapstructure:"enabled"`
}
