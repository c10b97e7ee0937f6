// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package throttling

import (
	"context"
	"fleet-readiness/internal/fleet"
	"fleet-readiness/internal/probe"
	"github.com/1pkg/gohalt"
	"github.com/rs/zerolog/log"
	"time"
)

const sleepInterval = 10 * time.Millisecond

// ThrottledExecutor limits how many probe requests leave this machine per interval.
type ThrottledExecutor struct {
	next      probe.Executor
	throttler gohalt.Throttler
}

// NewThrottledExecutor wraps next unless requests is zero, in which case next is returned as is.
func NewThrottledExecutor(next probe.Executor, requests uint64, interval time.Duration) probe.Executor {
	if requests == 0 || interval <= 0 {
		return next
	}

	log.Info().Msgf("Throttling probes to %d request(s) per %s", requests, interval)
	return &ThrottledExecutor{
		next:      next,
		throttler: gohalt.NewThrottlerTimed(requests, interval, 0),
	}
}

func (t *ThrottledExecutor) Execute(ctx context.Context, host fleet.Host, endpoint probe.EndpointProbe) probe.Outcome {
	if err := t.throttle(ctx); err != nil {
		return probe.Outcome{StatusCode: probe.NoConnection, Err: err}
	}
	defer t.throttler.Release(ctx)

	return t.next.Execute(ctx, host, endpoint)
}

func (t *ThrottledExecutor) throttle(ctx context.Context) error {
	for {
		if err := t.throttler.Acquire(ctx); err == nil {
			return nil // free throttling quota
		}

		// throttling quota is drained
		timer := time.NewTimer(sleepInterval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
