// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package countdown implements the pausable auto-dismiss timer that drives the
success dialogs' progress indicator.

The component owns its state (remaining time, paused flag, visual fraction) —
the rendered indicator is a projection of it. The single place where the view
is consulted is the optional progress sampler: when a pause interrupts a
continuous animation, the in-flight visual value is sampled once so the resumed
animation starts where the eye last saw it, instead of recomputing and jumping.

Pointer semantics: an indirect pointer (mouse) pauses on enter and resumes on
leave; a direct pointer (touch/pen) toggles pause on tap, since hover does not
exist there.
*/
package countdown

import (
	"sync"
	"time"

	"github.com/modhaven/modhaven/internal/platform/clock"
)

// Countdown is a restartable, pausable one-shot timer.
//
// # Concurrency
//
// All methods are safe to call from timer callbacks and pointer-event handlers
// firing in rapid succession; pause/resume are idempotent against the current
// paused state, so an enter/leave/enter storm cannot double-count elapsed time.
type Countdown struct {
	mu sync.Mutex

	clk        clock.Clock
	onComplete func()

	// sampler reads the indicator's current visual fraction. Nil means the
	// computed fraction is used (headless operation and tests).
	sampler func() float64

	total     time.Duration // duration given to Start, clamp ceiling
	remaining time.Duration // time left when the current segment started
	startedAt time.Time     // current segment start
	segment   time.Duration // current segment length

	// startFraction is the visual fraction the current segment animates
	// down from (1.0 on a fresh start, the frozen sample after a resume).
	startFraction float64

	running bool
	paused  bool
	timer   clock.Timer
}

// New creates a stopped countdown. onComplete fires once per completed run.
func New(clk clock.Clock, onComplete func()) *Countdown {
	if clk == nil {
		clk = clock.System()
	}
	return &Countdown{clk: clk, onComplete: onComplete}
}

// SetProgressSampler installs the narrow accessor used to read the in-flight
// visual fraction at pause time. Out-of-range samples are clamped to [0, 1].
func (c *Countdown) SetProgressSampler(sampler func() float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sampler = sampler
}

// # Lifecycle

// Start begins (or restarts) the countdown for the given duration, animating
// the indicator from full to empty and scheduling completion.
func (c *Countdown) Start(duration time.Duration) {
	c.mu.Lock()
	c.cancelTimerLocked()
	c.total = duration
	c.paused = false
	c.startSegmentLocked(duration, 1.0)
	c.mu.Unlock()
}

// startSegmentLocked arms the timer for one uninterrupted stretch of the
// countdown. Callers hold c.mu.
func (c *Countdown) startSegmentLocked(duration time.Duration, fromFraction float64) {
	c.remaining = clampDuration(duration, 0, c.total)
	c.segment = c.remaining
	c.startedAt = c.clk.Now()
	c.startFraction = clampFraction(fromFraction)
	c.running = true
	c.timer = c.clk.AfterFunc(c.remaining, c.complete)
}

// Pause freezes the countdown. No-op if already paused or not running.
//
// Elapsed time since the segment start is charged against the remaining
// budget, and the indicator's in-flight fraction is sampled once so Resume
// can continue without a visual jump.
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.paused {
		return
	}

	elapsed := c.clk.Now().Sub(c.startedAt)
	c.remaining = clampDuration(c.remaining-elapsed, 0, c.total)
	c.startFraction = clampFraction(c.sampleProgressLocked())
	c.cancelTimerLocked()
	c.paused = true
}

// Resume continues a paused countdown. No-op if not paused.
//
// If the remaining budget is already exhausted, completion fires synchronously
// rather than through a zero-delay timer.
func (c *Countdown) Resume() {
	c.mu.Lock()
	if !c.running || !c.paused {
		c.mu.Unlock()
		return
	}
	c.paused = false

	if c.remaining <= 0 {
		c.running = false
		c.startFraction = 0
		done := c.onComplete
		c.mu.Unlock()
		if done != nil {
			done()
		}
		return
	}

	c.startSegmentLocked(c.remaining, c.startFraction)
	c.mu.Unlock()
}

// Stop cancels the countdown and discards its state. Idempotent; the
// completion callback does not fire.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimerLocked()
	c.running = false
	c.paused = false
}

// complete is the timer callback.
func (c *Countdown) complete() {
	c.mu.Lock()
	// A pause or stop that raced the timer wins: the dialog is no longer
	// counting down, so completion must not fire.
	if !c.running || c.paused {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.remaining = 0
	c.startFraction = 0
	done := c.onComplete
	c.mu.Unlock()

	if done != nil {
		done()
	}
}

// # State Queries

// Running reports whether the countdown is active (paused counts as running).
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Paused reports whether the countdown is paused.
func (c *Countdown) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Remaining returns the time left, clamped to [0, total].
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return 0
	}
	if c.paused {
		return c.remaining
	}
	elapsed := c.clk.Now().Sub(c.startedAt)
	return clampDuration(c.remaining-elapsed, 0, c.total)
}

// Progress returns the indicator's current fraction in [0, 1]
// (1 = full, 0 = empty).
func (c *Countdown) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clampFraction(c.sampleProgressLocked())
}

// sampleProgressLocked is the single boundary where a view-driven animation
// value may be read back. Without a sampler the fraction is derived from the
// clock: the segment animates linearly from startFraction down to zero.
func (c *Countdown) sampleProgressLocked() float64 {
	if c.sampler != nil {
		return c.sampler()
	}
	if !c.running {
		return 0
	}
	if c.paused || c.segment <= 0 {
		return c.startFraction
	}
	elapsed := c.clk.Now().Sub(c.startedAt)
	ratio := 1 - float64(elapsed)/float64(c.segment)
	return c.startFraction * ratio
}

func (c *Countdown) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// # Pointer Semantics

// PointerEnter handles an indirect pointer entering the dialog: pause.
func (c *Countdown) PointerEnter() { c.Pause() }

// PointerLeave handles an indirect pointer leaving the dialog: resume.
func (c *Countdown) PointerLeave() { c.Resume() }

// PointerTap handles a direct pointer (touch/pen) tap: toggle pause, since
// hover has no meaning for direct pointers.
func (c *Countdown) PointerTap() {
	c.mu.Lock()
	paused := c.paused
	c.mu.Unlock()

	if paused {
		c.Resume()
	} else {
		c.Pause()
	}
}

// # Helpers

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if hi > 0 && d > hi {
		return hi
	}
	return d
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
