// Copyright (c) 2026 Modhaven. All rights reserved.

package moderation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/modhaven/modhaven/internal/engine/countdown"
	"github.com/modhaven/modhaven/internal/engine/gallery"
	"github.com/modhaven/modhaven/internal/engine/siteclient"
	"github.com/modhaven/modhaven/internal/engine/toast"
	"github.com/modhaven/modhaven/internal/platform/apperr"
	"github.com/modhaven/modhaven/internal/platform/clock"
	"github.com/modhaven/modhaven/internal/platform/constants"
	"github.com/modhaven/modhaven/pkg/youtube"
)

// Fallback wording for failures the server did not explain.
const (
	msgAlreadyReported = "You've already reported this video."
	msgNoPermission    = "You don't have permission to do that."
	msgGenericFailure  = "Something went wrong. Please try again."
	msgVideoGone       = "This video is no longer part of the gallery."
	msgInvalidVideoURL = "Please enter a valid YouTube video URL."
	msgFeatureReverted = "Could not feature the video. The gallery was restored."
	msgUnfeatureRevert = "Could not unfeature the video. The gallery was restored."
	msgDeleteSucceeded = "The video has been removed."
	msgSubmitSucceeded = "Your video has been submitted."
)

// Session is the engine's view of the signed-in user.
type Session struct {
	Token    string
	UserID   string
	SignedIn bool
}

// SessionSource supplies the current session on demand.
type SessionSource interface {
	Session() Session
}

// SiteAPI is the slice of the site client the controller uses. Satisfied by
// [siteclient.Client]; tests substitute a scripted fake.
type SiteAPI interface {
	SubmitVideo(ctx context.Context, token, modID, youtubeURL string) (*siteclient.Outcome, error)
	ReportVideo(ctx context.Context, token, videoID string) (*siteclient.Outcome, error)
	DeleteVideo(ctx context.Context, token, videoID string) (*siteclient.Outcome, error)
	FeatureVideo(ctx context.Context, token, videoID string) (*siteclient.Outcome, error)
	UnfeatureVideo(ctx context.Context, token, videoID string) (*siteclient.Outcome, error)
}

// GalleryState is the shared, swappable gallery the controller reconciles
// against. Satisfied by the engine's page state.
type GalleryState interface {
	Current() *gallery.Gallery
	Swap(next *gallery.Gallery)
}

// Events are the controller's outbound notifications. All fields are optional.
type Events struct {
	// LoginPrompt fires when an action requires a session and none exists.
	LoginPrompt func()

	// DialogOpened and DialogClosed track the single moderation dialog.
	DialogOpened func(*Dialog)
	DialogClosed func(DialogKind)
}

// Controller drives the moderation actions for one mod page.
//
// All failures terminate inside the controller as a toast, dialog message, or
// login prompt; only client-side validation results are returned to the caller
// (for inline rendering next to the submit form).
type Controller struct {
	mu sync.Mutex

	api    SiteAPI
	state  GalleryState
	toasts *toast.Notifier
	clk    clock.Clock
	events Events
	log    *slog.Logger

	// sessionSource supplies the current session; nil means signed out.
	sessionSource SessionSource

	// inflight holds one entry per target with a request on the wire. The
	// rendering layer disables the matching control while the entry exists.
	inflight map[string]ActionKind

	// dialog is the single open moderation dialog, nil when none.
	dialog     *Dialog
	generation uint64
}

// NewController wires a Controller. Nil toasts, clock, or logger fall back to
// working defaults; api and state are required.
func NewController(api SiteAPI, state GalleryState, toasts *toast.Notifier, clk clock.Clock, events Events, logger *slog.Logger) *Controller {
	if toasts == nil {
		toasts = toast.NewNotifier()
	}
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		api:      api,
		state:    state,
		toasts:   toasts,
		clk:      clk,
		events:   events,
		log:      logger,
		inflight: make(map[string]ActionKind),
	}
}

// SetSessionSource installs the session provider. Until one is set every
// session-requiring action surfaces the login prompt.
func (c *Controller) SetSessionSource(source SessionSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionSource = source
}

// InFlight reports whether a request for the given target is on the wire.
func (c *Controller) InFlight(targetID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[targetID]
	return busy
}

// OpenDialog returns the currently-open dialog, nil when none.
func (c *Controller) OpenDialog() *Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog
}

// # Report

// Report starts the report flow for a video: preconditions, then a confirm
// dialog. The network call happens on Confirm.
func (c *Controller) Report(mediaID string) {
	session := c.currentSession()
	if !session.SignedIn {
		c.promptLogin()
		return
	}

	item, ok := c.state.Current().FindByID(mediaID)
	if !ok {
		c.toasts.Error(msgVideoGone)
		return
	}
	if item.Reported {
		// Already satisfied, not an error. No network call.
		c.toasts.Info(msgAlreadyReported)
		return
	}
	if c.InFlight(mediaID) {
		return
	}

	c.openDialog(&Dialog{
		Kind:         DialogConfirmReport,
		TargetID:     mediaID,
		Title:        reportConfirmTitle,
		Body:         reportConfirmBody,
		ConfirmLabel: "Report",
	})
}

func (c *Controller) executeReport(ctx context.Context, mediaID string, generation uint64) {
	if !c.beginRequest(mediaID, ActionReport) {
		return
	}
	defer c.endRequest(mediaID)

	session := c.currentSession()
	outcome, err := c.api.ReportVideo(ctx, session.Token, mediaID)

	switch {
	case err == nil:
		// The server recorded the report, so the model update stands even if
		// the confirm dialog was dismissed mid-flight. The success dialog,
		// though, only opens for a still-live flow: a stale resolution must
		// not revive a dismissed dialog or disturb one opened since.
		c.markReported(mediaID, outcome.ReportCount)
		if c.closeIfLive(generation, false) {
			c.openSuccessDialog(mediaID, outcome.Message)
		}

	case apperr.HasCode(err, apperr.CodeConflict):
		// Already reported by this user: same state update as success, but
		// an informational toast instead of the success dialog.
		c.markReported(mediaID, nil)
		c.closeIfLive(generation, false)
		c.toasts.Info(fallbackMsg(err, msgAlreadyReported))

	default:
		c.closeIfLive(generation, false)
		c.failToast(ActionReport, mediaID, err)
	}
}

// markReported flips the item's reported flag and advisory count. The server
// is authoritative; this flag never flips back.
func (c *Controller) markReported(mediaID string, reportCount *int) {
	current := c.state.Current()
	next, err := current.Replace(mediaID, func(item *gallery.MediaItem) {
		item.Reported = true
		if reportCount != nil {
			item.ReportCount = *reportCount
		}
	})
	if err != nil {
		return
	}
	c.state.Swap(next)
}

// # Delete

// Delete starts the delete flow. The confirm wording depends on whether the
// caller owns the video.
func (c *Controller) Delete(mediaID string) {
	session := c.currentSession()
	if !session.SignedIn {
		c.promptLogin()
		return
	}

	item, ok := c.state.Current().FindByID(mediaID)
	if !ok {
		c.toasts.Error(msgVideoGone)
		return
	}
	if !item.CanManage {
		c.toasts.Error(msgNoPermission)
		return
	}
	if c.InFlight(mediaID) {
		return
	}

	dialog := &Dialog{
		Kind:         DialogConfirmDelete,
		TargetID:     mediaID,
		Title:        deleteModConfirmTitle,
		Body:         deleteModConfirmBody,
		ConfirmLabel: "Remove",
	}
	if item.IsOwn {
		dialog.Title = deleteOwnerConfirmTitle
		dialog.Body = deleteOwnerConfirmBody
		dialog.ConfirmLabel = "Delete"
	}
	c.openDialog(dialog)
}

func (c *Controller) executeDelete(ctx context.Context, mediaID string, generation uint64) {
	if !c.beginRequest(mediaID, ActionDelete) {
		return
	}
	defer c.endRequest(mediaID)

	session := c.currentSession()
	outcome, err := c.api.DeleteVideo(ctx, session.Token, mediaID)
	c.closeIfLive(generation, false)

	if err != nil {
		// Item stays intact; endRequest re-enables the control.
		c.failToast(ActionDelete, mediaID, err)
		return
	}

	if next, removeErr := c.state.Current().Remove(mediaID); removeErr == nil {
		c.state.Swap(next)
	}
	c.toasts.Success(fallbackOutcome(outcome, msgDeleteSucceeded))
}

// # Feature / Unfeature

// Feature starts the feature flow: capability checks, then a confirm dialog
// (promotion changes the hero for every visitor of the page).
func (c *Controller) Feature(mediaID string) {
	session := c.currentSession()
	if !session.SignedIn {
		c.promptLogin()
		return
	}

	item, ok := c.state.Current().FindByID(mediaID)
	if !ok {
		c.toasts.Error(msgVideoGone)
		return
	}
	if !item.CanBeFeatured() {
		c.toasts.Error(msgNoPermission)
		return
	}
	if item.Featured || c.InFlight(mediaID) {
		return
	}

	c.openDialog(&Dialog{
		Kind:         DialogConfirmFeature,
		TargetID:     mediaID,
		Title:        featureConfirmTitle,
		Body:         featureConfirmBody,
		ConfirmLabel: "Feature",
	})
}

// Unfeature demotes the featured video immediately; no confirm step, demotion
// is the less destructive direction.
func (c *Controller) Unfeature(ctx context.Context, mediaID string) {
	session := c.currentSession()
	if !session.SignedIn {
		c.promptLogin()
		return
	}

	item, ok := c.state.Current().FindByID(mediaID)
	if !ok {
		c.toasts.Error(msgVideoGone)
		return
	}
	if !item.CanBeFeatured() {
		c.toasts.Error(msgNoPermission)
		return
	}
	if !item.Featured || c.InFlight(mediaID) {
		return
	}

	c.executeUnfeature(ctx, mediaID)
}

func (c *Controller) executeFeature(ctx context.Context, mediaID string, generation uint64) {
	if !c.beginRequest(mediaID, ActionFeature) {
		return
	}
	defer c.endRequest(mediaID)
	c.closeIfLive(generation, false)

	// Optimistic promotion: every control instance re-renders from the
	// promoted gallery while the request is on the wire.
	previous := c.state.Current()
	promoted, err := previous.Promote(mediaID)
	if err != nil {
		c.toasts.Error(msgVideoGone)
		return
	}
	c.state.Swap(promoted)

	session := c.currentSession()
	if _, apiErr := c.api.FeatureVideo(ctx, session.Token, mediaID); apiErr != nil {
		c.state.Swap(previous)
		c.failToast(ActionFeature, mediaID, wrapRollback(apiErr, msgFeatureReverted))
	}
}

func (c *Controller) executeUnfeature(ctx context.Context, mediaID string) {
	if !c.beginRequest(mediaID, ActionUnfeature) {
		return
	}
	defer c.endRequest(mediaID)

	previous := c.state.Current()
	c.state.Swap(previous.RestoreDefault())

	session := c.currentSession()
	if _, apiErr := c.api.UnfeatureVideo(ctx, session.Token, mediaID); apiErr != nil {
		c.state.Swap(previous)
		c.failToast(ActionUnfeature, mediaID, wrapRollback(apiErr, msgUnfeatureRevert))
	}
}

// # Submission

// SubmitVideo submits a YouTube URL for the mod page.
//
// Client-side validation failures are returned for inline rendering; every
// other outcome terminates as a toast or login prompt and returns nil.
func (c *Controller) SubmitVideo(ctx context.Context, modID, youtubeURL string) error {
	session := c.currentSession()
	if !session.SignedIn {
		c.promptLogin()
		return nil
	}

	if !youtube.IsVideoURL(youtubeURL) {
		return apperr.ValidationError(msgInvalidVideoURL, apperr.FieldError{
			Field:   "youtube_url",
			Message: msgInvalidVideoURL,
		})
	}

	target := "submit:" + modID
	if !c.beginRequest(target, ActionSubmit) {
		return nil
	}
	defer c.endRequest(target)

	outcome, err := c.api.SubmitVideo(ctx, session.Token, modID, youtubeURL)
	switch {
	case err == nil:
		c.toasts.Success(fallbackOutcome(outcome, msgSubmitSucceeded))
	case apperr.HasCode(err, apperr.CodeConflict):
		// Duplicate submission for this mod: already satisfied.
		c.toasts.Info(fallbackMsg(err, msgGenericFailure))
	default:
		c.failToast(ActionSubmit, modID, err)
	}
	return nil
}

// # Dialog Lifecycle

// Confirm executes the open confirm dialog's action.
func (c *Controller) Confirm(ctx context.Context) {
	c.mu.Lock()
	dialog := c.dialog
	c.mu.Unlock()
	if dialog == nil {
		return
	}

	// Each execution carries the confirm dialog's generation so a response
	// landing after a mid-flight Dismiss cannot act on a stale dialog.
	switch dialog.Kind {
	case DialogConfirmReport:
		c.executeReport(ctx, dialog.TargetID, dialog.generation)
	case DialogConfirmDelete:
		c.executeDelete(ctx, dialog.TargetID, dialog.generation)
	case DialogConfirmFeature:
		c.executeFeature(ctx, dialog.TargetID, dialog.generation)
	}
}

// Dismiss closes the open dialog without acting. Closing clears any countdown
// so a detached dialog can never fire its completion.
func (c *Controller) Dismiss() {
	c.closeOpenDialog(true)
}

func (c *Controller) openDialog(dialog *Dialog) {
	c.mu.Lock()
	if c.dialog != nil {
		c.detachDialogLocked()
	}
	c.generation++
	dialog.generation = c.generation
	c.dialog = dialog
	c.mu.Unlock()

	if c.events.DialogOpened != nil {
		c.events.DialogOpened(dialog)
	}
}

// openSuccessDialog shows the post-report success dialog with its pausable
// auto-dismiss countdown. The completion callback carries the dialog's
// generation so a dialog closed early cannot be re-dismissed.
func (c *Controller) openSuccessDialog(mediaID, message string) {
	dialog := &Dialog{
		Kind:     DialogSuccess,
		TargetID: mediaID,
		Title:    "Thank you",
		Body:     message,
	}

	c.mu.Lock()
	if c.dialog != nil {
		c.detachDialogLocked()
	}
	c.generation++
	dialog.generation = c.generation
	generation := dialog.generation
	dialog.Countdown = countdown.New(c.clk, func() {
		c.closeIfLive(generation, true)
	})
	c.dialog = dialog
	c.mu.Unlock()

	if c.events.DialogOpened != nil {
		c.events.DialogOpened(dialog)
	}
	dialog.Countdown.Start(constants.SuccessDialogCountdown)
}

// closeIfLive closes the dialog only if the given generation is still current,
// reporting whether it did. notify controls the DialogClosed event: countdown
// completions announce the close, request resolutions close silently.
func (c *Controller) closeIfLive(generation uint64, notify bool) bool {
	c.mu.Lock()
	if c.dialog == nil || c.dialog.generation != generation {
		c.mu.Unlock()
		return false
	}
	kind := c.dialog.Kind
	c.detachDialogLocked()
	c.mu.Unlock()

	if notify && c.events.DialogClosed != nil {
		c.events.DialogClosed(kind)
	}
	return true
}

// closeOpenDialog closes whatever dialog is open. notify controls whether the
// DialogClosed event fires.
func (c *Controller) closeOpenDialog(notify bool) {
	c.mu.Lock()
	if c.dialog == nil {
		c.mu.Unlock()
		return
	}
	kind := c.dialog.Kind
	c.detachDialogLocked()
	c.mu.Unlock()

	if notify && c.events.DialogClosed != nil {
		c.events.DialogClosed(kind)
	}
}

// detachDialogLocked clears the dialog and its countdown. Callers hold c.mu.
func (c *Controller) detachDialogLocked() {
	if c.dialog.Countdown != nil {
		c.dialog.Countdown.Stop()
	}
	c.dialog = nil
}

// # Plumbing

// beginRequest claims the per-target in-flight slot. Returns false when a
// request for the target is already on the wire.
func (c *Controller) beginRequest(targetID string, kind ActionKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inflight[targetID]; busy {
		return false
	}
	c.inflight[targetID] = kind
	return true
}

func (c *Controller) endRequest(targetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, targetID)
}

func (c *Controller) currentSession() Session {
	c.mu.Lock()
	source := c.sessionSource
	c.mu.Unlock()

	if source == nil {
		return Session{}
	}
	return source.Session()
}

func (c *Controller) promptLogin() {
	if c.events.LoginPrompt != nil {
		c.events.LoginPrompt()
	}
}

// failToast converts a terminal failure into the matching user-facing surface.
// An expired session surfaces the login prompt instead of a toast.
func (c *Controller) failToast(kind ActionKind, targetID string, err error) {
	c.log.Warn("moderation_action_failed",
		slog.String("action", string(kind)),
		slog.String("target_id", targetID),
		slog.String("code", apperr.CodeOf(err)),
		slog.Any("error", err),
	)

	switch apperr.CodeOf(err) {
	case apperr.CodeUnauthenticated:
		c.promptLogin()
	case apperr.CodeForbidden:
		c.toasts.Error(fallbackMsg(err, msgNoPermission))
	case apperr.CodeRateLimited:
		c.toasts.Error(fallbackMsg(err, msgGenericFailure))
	default:
		c.toasts.Error(fallbackMsg(err, msgGenericFailure))
	}
}

func fallbackMsg(err error, defaultMsg string) string {
	if ae := apperr.As(err); ae != nil && ae.Message != "" {
		return ae.Message
	}
	return defaultMsg
}

func fallbackOutcome(outcome *siteclient.Outcome, defaultMsg string) string {
	if outcome != nil && outcome.Message != "" {
		return outcome.Message
	}
	return defaultMsg
}

// wrapRollback keeps the original error's code but swaps in rollback wording
// for codes without a specific server message.
func wrapRollback(err error, rollbackMsg string) error {
	ae := apperr.As(err)
	if ae == nil || ae.Code == apperr.CodeUpstream {
		return apperr.Upstream(rollbackMsg, err)
	}
	return err
}
