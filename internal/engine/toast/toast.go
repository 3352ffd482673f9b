// Copyright (c) 2026 Modhaven. All rights reserved.

// Package toast implements the fire-and-forget transient notification queue.
//
// The notifier consumes no state from other engine components: callers push a
// message with a level, the rendering layer drains them. When nothing drains
// (headless tests, background pages) the queue stays bounded by evicting the
// oldest entries.
package toast

import "sync"

// Level classifies a toast for styling purposes.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is one transient notification.
type Toast struct {
	Level   Level
	Message string
}

// maxQueued caps the queue; pushing beyond it evicts the oldest toast.
const maxQueued = 16

// Notifier is a bounded FIFO queue of toasts.
type Notifier struct {
	mu     sync.Mutex
	queued []Toast
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Info queues an informational toast.
func (n *Notifier) Info(message string) { n.push(LevelInfo, message) }

// Success queues a success toast.
func (n *Notifier) Success(message string) { n.push(LevelSuccess, message) }

// Error queues an error toast.
func (n *Notifier) Error(message string) { n.push(LevelError, message) }

func (n *Notifier) push(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.queued) >= maxQueued {
		n.queued = n.queued[1:]
	}
	n.queued = append(n.queued, Toast{Level: level, Message: message})
}

// Drain returns all queued toasts in FIFO order and empties the queue.
func (n *Notifier) Drain() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	drained := n.queued
	n.queued = nil
	return drained
}

// Pending returns the number of queued toasts.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.queued)
}
