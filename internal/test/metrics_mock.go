// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"github.com/stretchr/testify/mock"
	"time"
)

type MetricsRecorderMock struct {
	mock.Mock
}

func (m *MetricsRecorderMock) RecordAttempt(probe string, transport string, success bool) {
	m.Called(probe, transport, success)
}

func (m *MetricsRecorderMock) RecordProbeResult(probe string, transport string, success bool) {
	m.Called(probe, transport, success)
}

func (m *MetricsRecorderMock) RecordHost(host string, ready bool) {
	m.Called(host, ready)
}

func (m *MetricsRecorderMock) RecordRun(failedChecks int, duration time.Duration, finishedAt time.Time) {
	m.Called(failedChecks, duration, finishedAt)
}
