// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package throttling

import (
	"context"
	"fleet-readiness/internal/probe"
	"fleet-readiness/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
	"time"
)

func TestNewThrottledExecutor_Disabled(t *testing.T) {
	executor := new(test.ExecutorMock)

	assert.Same(t, executor, NewThrottledExecutor(executor, 0, time.Second))
	assert.Same(t, executor, NewThrottledExecutor(executor, 5, 0))
}

func TestThrottledExecutor_PassesThrough(t *testing.T) {
	host := test.NewTestHost("vm", 15, 5)
	endpoint := test.NewTestProbes()[0]
	executor := new(test.ExecutorMock)
	executor.On("Execute", mock.Anything, host, endpoint).Return(test.OkOutcome())

	throttled := NewThrottledExecutor(executor, 10, time.Hour)
	outcome := throttled.Execute(context.Background(), host, endpoint)

	assert.True(t, outcome.Successful())
	executor.AssertNumberOfCalls(t, "Execute", 1)
}

func TestThrottledExecutor_DrainedQuotaRespectsContext(t *testing.T) {
	host := test.NewTestHost("vm", 15, 5)
	endpoint := test.NewTestProbes()[0]
	executor := new(test.ExecutorMock)
	executor.On("Execute", mock.Anything, host, endpoint).Return(test.OkOutcome())

	throttled := NewThrottledExecutor(executor, 1, time.Hour)
	first := throttled.Execute(context.Background(), host, endpoint)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	second := throttled.Execute(ctx, host, endpoint)

	assert.True(t, first.Successful())
	assert.ErrorIs(t, second.Err, context.DeadlineExceeded)
	assert.Equal(t, probe.NoConnection, second.StatusCode)
	executor.AssertNumberOfCalls(t, "Execute", 1)
}
