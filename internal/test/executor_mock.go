// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"context"
	"fleet-readiness/internal/fleet"
	"fleet-readiness/internal/probe"
	"github.com/stretchr/testify/mock"
	"sync"
	"time"
)

type ExecutorMock struct {
	mock.Mock
}

func (m *ExecutorMock) Execute(ctx context.Context, host fleet.Host, endpoint probe.EndpointProbe) probe.Outcome {
	args := m.Called(ctx, host, endpoint)
	return args.Get(0).(probe.Outcome)
}

// SleepRecorder records requested delays instead of sleeping.
type SleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *SleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *SleepRecorder) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}
