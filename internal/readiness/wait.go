// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package readiness

import (
	"context"
	"time"
)

// SleepFunc pauses between attempts. It must return early with the context error when ctx ends.
type SleepFunc func(ctx context.Context, d time.Duration) error

// wait pauses execution for the specified duration or returns earlier if the context is canceled.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
