// Copyright (c) 2026 Modhaven. All rights reserved.

package countdown_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modhaven/modhaven/internal/engine/countdown"
	"github.com/modhaven/modhaven/internal/platform/clock"
)

/*
TestCountdown_CompletesAfterDuration verifies the basic fire-once behavior.
*/
func TestCountdown_CompletesAfterDuration(t *testing.T) {
	fake := clock.NewFake()
	completions := 0
	timer := countdown.New(fake, func() { completions++ })

	timer.Start(7 * time.Second)
	assert.True(t, timer.Running())

	// 1. Not yet due
	fake.Advance(6 * time.Second)
	assert.Equal(t, 0, completions)

	// 2. Due
	fake.Advance(1 * time.Second)
	assert.Equal(t, 1, completions)
	assert.False(t, timer.Running())

	// 3. No spurious second fire
	fake.Advance(10 * time.Second)
	assert.Equal(t, 1, completions)
}

/*
TestCountdown_PauseStopsTheClock verifies that wall-clock time passing while
paused does not consume the remaining budget: started at 7000ms, paused at
2000ms elapsed, resumed after a 5000ms gap, the countdown still has ~5000ms
left.
*/
func TestCountdown_PauseStopsTheClock(t *testing.T) {
	fake := clock.NewFake()
	completions := 0
	timer := countdown.New(fake, func() { completions++ })

	timer.Start(7 * time.Second)
	fake.Advance(2 * time.Second)

	timer.Pause()
	assert.True(t, timer.Paused())

	// A long real-time gap while paused.
	fake.Advance(5 * time.Second)
	assert.Equal(t, 0, completions)
	assert.Equal(t, 5*time.Second, timer.Remaining())

	timer.Resume()
	assert.Equal(t, 5*time.Second, timer.Remaining())

	// 1. The resumed segment needs the full remaining budget.
	fake.Advance(4 * time.Second)
	assert.Equal(t, 0, completions)
	fake.Advance(1 * time.Second)
	assert.Equal(t, 1, completions)
}

/*
TestCountdown_PauseResumeImmediately verifies that pause followed by an
immediate resume leaves the remaining time unchanged.
*/
func TestCountdown_PauseResumeImmediately(t *testing.T) {
	fake := clock.NewFake()
	timer := countdown.New(fake, nil)

	timer.Start(7 * time.Second)
	fake.Advance(3 * time.Second)

	timer.Pause()
	remaining := timer.Remaining()
	timer.Resume()

	assert.Equal(t, remaining, timer.Remaining())
	assert.Equal(t, 4*time.Second, timer.Remaining())
}

// driftClock lets Now run ahead of scheduled timers without firing them,
// reproducing a pause handler that wins the race against the timer callback.
type driftClock struct {
	now time.Time
}

type inertTimer struct{}

func (inertTimer) Stop() bool { return true }

func (c *driftClock) Now() time.Time { return c.now }

func (c *driftClock) AfterFunc(time.Duration, func()) clock.Timer { return inertTimer{} }

/*
TestCountdown_ResumeWithNoBudgetCompletesSynchronously verifies that resuming
an exhausted countdown fires completion on the calling goroutine instead of
scheduling a zero-delay timer.
*/
func TestCountdown_ResumeWithNoBudgetCompletesSynchronously(t *testing.T) {
	drift := &driftClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	completions := 0
	timer := countdown.New(drift, func() { completions++ })

	timer.Start(2 * time.Second)

	// The pause handler runs after the deadline has passed but before the
	// (lost) timer callback: the remaining budget clamps to zero.
	drift.now = drift.now.Add(3 * time.Second)
	timer.Pause()
	assert.Equal(t, time.Duration(0), timer.Remaining())

	// Resume completes synchronously, on this goroutine.
	timer.Resume()
	assert.Equal(t, 1, completions)
	assert.False(t, timer.Running())
}

/*
TestCountdown_PointerStormIsIdempotent verifies that rapid enter/leave/enter
sequences cannot double-count elapsed time.
*/
func TestCountdown_PointerStormIsIdempotent(t *testing.T) {
	fake := clock.NewFake()
	timer := countdown.New(fake, nil)

	timer.Start(7 * time.Second)
	fake.Advance(2 * time.Second)

	// 1. Double pause charges the elapsed 2s exactly once.
	timer.PointerEnter()
	timer.PointerEnter()
	assert.Equal(t, 5*time.Second, timer.Remaining())

	// 2. Double resume restarts exactly one segment.
	timer.PointerLeave()
	timer.PointerLeave()
	assert.Equal(t, 5*time.Second, timer.Remaining())
}

/*
TestCountdown_DirectPointerTapToggles verifies touch/pen tap semantics.
*/
func TestCountdown_DirectPointerTapToggles(t *testing.T) {
	fake := clock.NewFake()
	timer := countdown.New(fake, nil)

	timer.Start(7 * time.Second)

	timer.PointerTap()
	assert.True(t, timer.Paused())

	timer.PointerTap()
	assert.False(t, timer.Paused())
	assert.True(t, timer.Running())
}

/*
TestCountdown_StopDiscardsWithoutCallback verifies stop is idempotent and
suppresses completion.
*/
func TestCountdown_StopDiscardsWithoutCallback(t *testing.T) {
	fake := clock.NewFake()
	completions := 0
	timer := countdown.New(fake, func() { completions++ })

	timer.Start(7 * time.Second)
	timer.Stop()
	timer.Stop()

	fake.Advance(10 * time.Second)
	assert.Equal(t, 0, completions)
	assert.False(t, timer.Running())
	assert.Equal(t, time.Duration(0), timer.Remaining())
}

/*
TestCountdown_ProgressFreezesAtPause verifies the visual fraction freezes at
the sampled value and resumes from it without a jump.
*/
func TestCountdown_ProgressFreezesAtPause(t *testing.T) {
	fake := clock.NewFake()
	timer := countdown.New(fake, nil)

	timer.Start(10 * time.Second)
	fake.Advance(5 * time.Second)
	assert.InDelta(t, 0.5, timer.Progress(), 0.001)

	timer.Pause()
	fake.Advance(30 * time.Second)
	assert.InDelta(t, 0.5, timer.Progress(), 0.001)

	// The resumed segment animates from the frozen fraction down to zero
	// over the remaining 5s.
	timer.Resume()
	fake.Advance(2500 * time.Millisecond)
	assert.InDelta(t, 0.25, timer.Progress(), 0.001)
}

/*
TestCountdown_SamplerClampsOutOfRange verifies a reflow reporting an
out-of-range transform value is clamped to [0, 1].
*/
func TestCountdown_SamplerClampsOutOfRange(t *testing.T) {
	fake := clock.NewFake()
	timer := countdown.New(fake, nil)
	timer.SetProgressSampler(func() float64 { return 1.7 })

	timer.Start(10 * time.Second)
	fake.Advance(1 * time.Second)

	assert.Equal(t, 1.0, timer.Progress())

	timer.Pause()
	timer.Resume()
	assert.LessOrEqual(t, timer.Progress(), 1.0)
}
