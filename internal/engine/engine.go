// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package engine assembles the gallery interaction engine for one mod page.

Every page gets its own Engine instance holding its own gallery state, toast
queue, moderation controller, lightbox viewer, and layout manager — there are
no package-level singletons, so two open pages (or two tests) never share
state.

The PageState is the hub: the moderation controller swaps new gallery values
into it, and the layout and viewer re-render from whatever value is current.
*/
package engine

import (
	"log/slog"
	"sync"

	"github.com/modhaven/modhaven/internal/engine/gallery"
	"github.com/modhaven/modhaven/internal/engine/moderation"
	"github.com/modhaven/modhaven/internal/engine/siteclient"
	"github.com/modhaven/modhaven/internal/engine/toast"
	"github.com/modhaven/modhaven/internal/engine/viewer"
	"github.com/modhaven/modhaven/internal/platform/clock"
)

// PageState holds the current gallery value for one page and fans out change
// notifications. Swap replaces the value atomically; readers always see a
// complete gallery.
type PageState struct {
	mu        sync.Mutex
	current   *gallery.Gallery
	listeners []func(*gallery.Gallery)
}

// NewPageState creates a PageState seeded with the given gallery.
func NewPageState(initial *gallery.Gallery) *PageState {
	return &PageState{current: initial}
}

// Current returns the current gallery value.
func (s *PageState) Current() *gallery.Gallery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Swap installs a new gallery value and notifies listeners.
func (s *PageState) Swap(next *gallery.Gallery) {
	s.mu.Lock()
	s.current = next
	listeners := s.listeners
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
}

// OnChange registers a listener invoked after every Swap.
func (s *PageState) OnChange(listener func(*gallery.Gallery)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Options configure an Engine.
type Options struct {
	// SiteBaseURL is the site API root, including the version prefix.
	// Ignored when API is set.
	SiteBaseURL string

	// API overrides the REST client; tests inject a scripted fake here.
	API moderation.SiteAPI

	// Clock defaults to the system clock.
	Clock clock.Clock

	// InitialWidthPx seeds the responsive layout with the viewport width.
	InitialWidthPx int

	// Events are forwarded to the moderation controller.
	Events moderation.Events

	Logger *slog.Logger
}

// Engine is the assembled interaction engine for one mod page.
type Engine struct {
	State      *PageState
	Toasts     *toast.Notifier
	Controller *moderation.Controller
	Viewer     *viewer.Viewer
	Layout     *gallery.Layout

	mu      sync.Mutex
	session moderation.Session
}

// New builds an Engine from the page's raw gallery source.
func New(source []gallery.ItemSource, opts Options) (*Engine, error) {
	built, err := gallery.Build(source)
	if err != nil {
		return nil, err
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.System()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := opts.API
	if api == nil {
		api = siteclient.New(opts.SiteBaseURL, logger)
	}

	e := &Engine{
		State:  NewPageState(built),
		Toasts: toast.NewNotifier(),
	}
	e.Controller = moderation.NewController(api, e.State, e.Toasts, clk, opts.Events, logger)
	e.Controller.SetSessionSource(e)

	e.Viewer = viewer.New(e.State, func() bool { return e.Session().SignedIn }, nil)
	e.Layout = gallery.NewLayout(clk, opts.InitialWidthPx, nil)

	// Re-render projections whenever the model changes.
	e.State.OnChange(func(*gallery.Gallery) {
		e.Layout.GalleryChanged()
		e.Viewer.GalleryChanged()
	})

	return e, nil
}

// # Session

// Session returns the current session. Implements [moderation.SessionSource].
func (e *Engine) Session() moderation.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// SignIn installs the session used for every subsequent moderation call.
func (e *Engine) SignIn(token, userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = moderation.Session{Token: token, UserID: userID, SignedIn: true}
}

// SignOut clears the session.
func (e *Engine) SignOut() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = moderation.Session{}
}
