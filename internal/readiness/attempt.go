// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package readiness

import (
	"fmt"
	"time"
)

// Policy bounds the retries of a single probe.
type Policy struct {
	MaxRetries   int           // MaxRetries is the total number of attempts per probe.
	InitialDelay time.Duration // InitialDelay is the wait after the first failed attempt.
	Multiplier   float64       // Multiplier grows the wait after every further failure.
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   5,
		InitialDelay: 10 * time.Second,
		Multiplier:   2,
	}
}

// Delays lists the waits a probe that never succeeds goes through.
func (p Policy) Delays() []time.Duration {
	attempt := NewAttempt(p)
	var delays []time.Duration
	for {
		action := attempt.Next(false)
		if action.Kind != ActionRetry {
			return delays
		}
		delays = append(delays, action.Delay)
	}
}

type State int

const (
	StatePending State = iota
	StateSuccess
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type ActionKind int

const (
	ActionRetry ActionKind = iota
	ActionSucceed
	ActionGiveUp
)

// Action tells the caller what to do after an attempt was classified.
type Action struct {
	Kind  ActionKind
	Delay time.Duration
}

// Attempt tracks the retry state of one probe against one host. It moves from StatePending to
// either StateSuccess or StateExhausted and never leaves a terminal state.
type Attempt struct {
	policy   Policy
	state    State
	attempts int
	delay    time.Duration
}

func NewAttempt(policy Policy) *Attempt {
	if policy.MaxRetries < 1 {
		policy.MaxRetries = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}
	return &Attempt{policy: policy, state: StatePending, delay: policy.InitialDelay}
}

func (a *Attempt) State() State {
	return a.state
}

// Attempts returns the number of classified attempts so far.
func (a *Attempt) Attempts() int {
	return a.attempts
}

// Next records the classification of the attempt that just finished and returns the next step.
func (a *Attempt) Next(success bool) Action {
	switch a.state {
	case StateSuccess:
		return Action{Kind: ActionSucceed}
	case StateExhausted:
		return Action{Kind: ActionGiveUp}
	}

	a.attempts++
	if success {
		a.state = StateSuccess
		return Action{Kind: ActionSucceed}
	}
	if a.attempts >= a.policy.MaxRetries {
		a.state = StateExhausted
		return Action{Kind: ActionGiveUp}
	}

	delay := a.delay
	a.delay = time.Duration(float64(a.delay) * a.policy.Multiplier)
	return Action{Kind: ActionRetry, Delay: delay}
}
