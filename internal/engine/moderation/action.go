// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package moderation orchestrates the community-moderation actions on gallery
media: report, delete, feature, unfeature, and video submission.

The controller is the single boundary where network outcomes are reconciled
with the gallery model: it applies state changes (optimistic for feature and
unfeature, confirmed-only for report and delete), converts every failure into
a toast or dialog message, and never lets an error escape to the caller except
for inline validation results.

Double-submit protection is an explicit per-target in-flight flag, not a view
concern: the rendering layer disables controls by asking InFlight, and tests
assert on the flag directly.
*/
package moderation

// ActionKind names a moderation operation.
type ActionKind string

const (
	ActionReport    ActionKind = "report"
	ActionDelete    ActionKind = "delete"
	ActionFeature   ActionKind = "feature"
	ActionUnfeature ActionKind = "unfeature"
	ActionSubmit    ActionKind = "submit"
)

// Status tracks one action's lifecycle: idle -> pending -> {success, error},
// terminal either way.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Action is the transient value object describing one moderation attempt.
type Action struct {
	Kind     ActionKind
	TargetID string
	Status   Status
}
