// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scheduler

import (
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"time"
)

var scheduler *gocron.Scheduler

// StartScheduler runs job right away and then every interval. A run that is still in progress
// when the next one is due delays the next one instead of overlapping with it.
func StartScheduler(interval time.Duration, job func()) error {
	scheduler = gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	if _, err := scheduler.Every(interval).Do(job); err != nil {
		log.Error().Msgf("Error while scheduling readiness checks: %v", err)
		return err
	}

	scheduler.StartAsync()
	return nil
}

func StopScheduler() {
	if scheduler != nil {
		scheduler.Stop()
	}
}
