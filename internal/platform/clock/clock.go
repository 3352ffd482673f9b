// Copyright (c) 2026 Modhaven. All rights reserved.

// Package clock abstracts wall-clock time and timer scheduling.
//
// # Why a seam
//
// The countdown component's contract is defined in elapsed milliseconds and a
// pause must stop the clock exactly. Tests need to advance time deterministically,
// so every time read and timer registration goes through [Clock].
package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock provides the current time and one-shot timer scheduling.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run once after duration d.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing.
	Stop() bool
}

// # System Clock

type systemClock struct{}

type systemTimer struct {
	timer *time.Timer
}

func (t *systemTimer) Stop() bool { return t.timer.Stop() }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return &systemTimer{timer: time.AfterFunc(d, fn)}
}

// System returns the real wall-clock implementation.
func System() Clock { return systemClock{} }

// # Fake Clock (test support)

// Fake is a manually-advanced Clock for deterministic tests.
//
// Callbacks fire synchronously inside [Fake.Advance], on the caller's
// goroutine, in deadline order.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	pending []*fakeTimer
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// NewFake creates a Fake clock starting at an arbitrary fixed instant.
func NewFake() *Fake {
	return &Fake{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc registers fn to fire once the fake clock advances past d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	timer := &fakeTimer{clock: f, deadline: f.now.Add(d), fn: fn}
	f.pending = append(f.pending, timer)
	return timer
}

// Advance moves the fake time forward and fires every timer whose deadline
// has been reached, in deadline order.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	due := make([]*fakeTimer, 0, len(f.pending))
	remaining := f.pending[:0]
	for _, timer := range f.pending {
		if !timer.stopped && !timer.deadline.After(f.now) {
			due = append(due, timer)
			continue
		}
		remaining = append(remaining, timer)
	}
	f.pending = remaining
	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	f.mu.Unlock()

	// Fire outside the lock: callbacks commonly call back into the clock.
	for _, timer := range due {
		timer.fired = true
		timer.fn()
	}
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
