// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"io"
	"os"
)

// Output receives all log lines. The check command moves it to stderr when stdout carries JSON.
var Output io.Writer = os.Stdout

// Configure replaces the global logger. Structured JSON is used unless console output is
// requested or the level is debug.
func Configure(level string, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	invalid := err != nil || level == ""
	if invalid {
		logLevel = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(Output).Level(logLevel).With().Timestamp().Logger()
	if format == "console" || logLevel == zerolog.DebugLevel {
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: Output})
	}

	if invalid {
		log.Info().Msgf("Invalid log level %s. Info log level is used", level)
	}
}
