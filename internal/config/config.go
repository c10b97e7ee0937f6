// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"strings"
)

var Current Configuration

// ConfigurationError marks problems that must abort the run before any check is performed.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func NewConfigurationError(err error, format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...), Err: err}
}

// IsConfigurationError reports whether err (or anything it wraps) is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var configurationError *ConfigurationError
	return errors.As(err, &configurationError)
}

// Load reads the configuration file (if any), applies defaults and environment overrides and
// stores the result in Current. An empty configFile searches for config.yml in the working directory.
func Load(configFile string) error {
	configureViper(configFile)
	setDefaults()

	if err := readConfiguration(configFile); err != nil {
		return err
	}

	var configuration Configuration
	if err := viper.Unmarshal(&configuration); err != nil {
		return NewConfigurationError(err, "could not unmarshal configuration")
	}

	if err := configuration.Validate(); err != nil {
		return err
	}

	Current = configuration
	return nil
}

func Initialize() error {
	configureViper("")
	setDefaults()
	return viper.SafeWriteConfig()
}

func configureViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("fleetcheck")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func setDefaults() {
	// General
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")
	viper.SetDefault("region", "westeurope")
	viper.SetDefault("hostsFile", "hosts.csv")
	viper.SetDefault("variant", "web")
	viper.SetDefault("concurrency", 1)
	viper.SetDefault("output", "table")

	// Fleet
	viper.SetDefault("fleet.suffixes", []string{"rpm"})
	viper.SetDefault("fleet.maxSlesVersion", 16)

	// Remote execution
	viper.SetDefault("ssh.user", "")
	viper.SetDefault("ssh.privateKeyPath", "")
	viper.SetDefault("ssh.port", 22)
	viper.SetDefault("ssh.dialTimeout", "5s")

	// Probing
	viper.SetDefault("http.connectTimeout", "5s")
	viper.SetDefault("http.timeout", "10s")
	viper.SetDefault("retry.maxRetries", 5)
	viper.SetDefault("retry.initialDelay", "10s")
	viper.SetDefault("retry.multiplier", 2.0)
	viper.SetDefault("throttling.requests", 0)
	viper.SetDefault("throttling.interval", "1s")

	// Watch
	viper.SetDefault("watch.interval", "5m")
	viper.SetDefault("watch.port", 8080)

	// Metrics
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.textfile", "")

	// Tracing
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.collectorEndpoint", "localhost:4318")
	viper.SetDefault("tracing.https", false)
	viper.SetDefault("tracing.debugEnabled", false)
	viper.SetDefault("tracing.sampleRatio", 0.1)
}

func readConfiguration(configFile string) error {
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configFileNotFoundError) {
			return NewConfigurationError(err, "could not read configuration file")
		}
		log.Info().Msg("Configuration file not found but environment variables will be taken into account!")
	}

	viper.AutomaticEnv()
	return nil
}

// Validate checks the values that cannot be defaulted sensibly.
func (c Configuration) Validate() error {
	if strings.TrimSpace(c.Region) == "" {
		return NewConfigurationError(nil, "region must not be empty")
	}
	if strings.TrimSpace(c.HostsFile) == "" {
		return NewConfigurationError(nil, "hostsFile must not be empty")
	}
	if c.Retry.MaxRetries < 1 {
		return NewConfigurationError(nil, "retry.maxRetries must be at least 1, got %d", c.Retry.MaxRetries)
	}
	if c.Retry.InitialDelay < 0 {
		return NewConfigurationError(nil, "retry.initialDelay must not be negative")
	}
	if c.Retry.Multiplier < 1 {
		return NewConfigurationError(nil, "retry.multiplier must be at least 1, got %v", c.Retry.Multiplier)
	}
	if c.Concurrency < 1 {
		return NewConfigurationError(nil, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return NewConfigurationError(nil, "tracing.sampleRatio must be between 0 and 1, got %v", c.Tracing.SampleRatio)
	}
	if len(c.Fleet.Suffixes) == 0 {
		return NewConfigurationError(nil, "fleet.suffixes must name at least one suffix")
	}
	return nil
}
