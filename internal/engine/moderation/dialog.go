// Copyright (c) 2026 Modhaven. All rights reserved.

package moderation

import "github.com/modhaven/modhaven/internal/engine/countdown"

// DialogKind discriminates the moderation dialogs.
type DialogKind string

const (
	DialogConfirmReport  DialogKind = "confirm-report"
	DialogConfirmDelete  DialogKind = "confirm-delete"
	DialogConfirmFeature DialogKind = "confirm-feature"
	DialogSuccess        DialogKind = "success"
)

// Dialog is the state behind the currently-open moderation dialog, if any.
//
// Each dialog carries a generation token assigned at open time. A network
// response or timer callback that resolves after the dialog was closed carries
// a stale generation and must not mutate view state, so a dismissed dialog
// cannot be revived.
type Dialog struct {
	Kind     DialogKind
	TargetID string

	Title        string
	Body         string
	ConfirmLabel string

	// Countdown drives the auto-dismiss indicator. Success dialogs only.
	Countdown *countdown.Countdown

	generation uint64
}

// Generation returns the dialog's liveness token.
func (d *Dialog) Generation() uint64 { return d.generation }

// Confirm dialog wording. The delete wording depends on who is asking: owners
// are warned the deletion is irreversible, moderators merely hide the video
// from the gallery.
const (
	reportConfirmTitle = "Report this video?"
	reportConfirmBody  = "The video will be flagged for review by the moderation team."

	deleteOwnerConfirmTitle = "Delete your video?"
	deleteOwnerConfirmBody  = "This permanently deletes the video from the gallery. This cannot be undone."

	deleteModConfirmTitle = "Remove this video?"
	deleteModConfirmBody  = "The video will be hidden from the gallery."

	featureConfirmTitle = "Feature this video?"
	featureConfirmBody  = "The video will replace the default image for every visitor of this page."
)
