// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package readiness

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestAttempt_SuccessOnFirstAttempt(t *testing.T) {
	attempt := NewAttempt(DefaultPolicy())

	action := attempt.Next(true)

	assert.Equal(t, ActionSucceed, action.Kind)
	assert.Equal(t, StateSuccess, attempt.State())
	assert.Equal(t, 1, attempt.Attempts())
}

func TestAttempt_BackoffDoubles(t *testing.T) {
	attempt := NewAttempt(DefaultPolicy())

	var delays []time.Duration
	for i := 0; i < 3; i++ {
		action := attempt.Next(false)
		assert.Equal(t, ActionRetry, action.Kind)
		delays = append(delays, action.Delay)
	}
	action := attempt.Next(true)

	assert.Equal(t, []time.Duration{10 * time.Second, 20 * time.Second, 40 * time.Second}, delays)
	assert.Equal(t, ActionSucceed, action.Kind)
	assert.Equal(t, 4, attempt.Attempts())
}

func TestAttempt_ExhaustsAfterMaxRetries(t *testing.T) {
	attempt := NewAttempt(Policy{MaxRetries: 3, InitialDelay: time.Second, Multiplier: 2})

	assert.Equal(t, ActionRetry, attempt.Next(false).Kind)
	assert.Equal(t, ActionRetry, attempt.Next(false).Kind)
	assert.Equal(t, ActionGiveUp, attempt.Next(false).Kind)

	assert.Equal(t, StateExhausted, attempt.State())
	assert.Equal(t, 3, attempt.Attempts())
}

func TestAttempt_TerminalStatesAreSticky(t *testing.T) {
	exhausted := NewAttempt(Policy{MaxRetries: 1})
	exhausted.Next(false)

	assert.Equal(t, ActionGiveUp, exhausted.Next(true).Kind)
	assert.Equal(t, StateExhausted, exhausted.State())
	assert.Equal(t, 1, exhausted.Attempts())

	succeeded := NewAttempt(DefaultPolicy())
	succeeded.Next(true)

	assert.Equal(t, ActionSucceed, succeeded.Next(false).Kind)
	assert.Equal(t, 1, succeeded.Attempts())
}

func TestAttempt_NormalizesPolicy(t *testing.T) {
	attempt := NewAttempt(Policy{MaxRetries: 0, InitialDelay: time.Second, Multiplier: 0})

	assert.Equal(t, ActionGiveUp, attempt.Next(false).Kind)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, Policy{MaxRetries: 3, InitialDelay: time.Second, Multiplier: 0.5}.Delays())
}

func TestPolicy_Delays(t *testing.T) {
	assert.Equal(t, []time.Duration{
		10 * time.Second, 20 * time.Second, 40 * time.Second, 80 * time.Second,
	}, DefaultPolicy().Delays())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "exhausted", StateExhausted.String())
	assert.Equal(t, "State(7)", State(7).String())
}
