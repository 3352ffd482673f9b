// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package viewer implements the lightbox controller: the modal, full-size view
of the gallery with previous/next navigation and per-slide moderation
controls.

Slides are a projection of the gallery model. When the model changes under an
open viewer (a report lands, a video is featured or deleted), the slide deck
is rebuilt from the new gallery and the viewer re-anchors on the item it was
showing, by ID rather than by index.
*/
package viewer

import (
	"sync"

	"github.com/modhaven/modhaven/internal/engine/gallery"
	"github.com/modhaven/modhaven/pkg/youtube"
)

// Slide is one lightbox entry, ready to render.
type Slide struct {
	Item    gallery.MediaItem
	Variant gallery.Variant

	// ImageURL is set for image slides, EmbedURL for video slides.
	ImageURL string
	EmbedURL string
}

// GallerySource supplies the current gallery; satisfied by the engine's page
// state.
type GallerySource interface {
	Current() *gallery.Gallery
}

// Viewer is the lightbox controller for one mod page.
type Viewer struct {
	mu sync.Mutex

	source   GallerySource
	signedIn func() bool

	// onChange fires after every visible state change (open, close,
	// navigation, slide rebuild).
	onChange func()

	open      bool
	currentID string
}

// New creates a closed Viewer. signedIn selects the per-slide control variant;
// nil means always signed out.
func New(source GallerySource, signedIn func() bool, onChange func()) *Viewer {
	if signedIn == nil {
		signedIn = func() bool { return false }
	}
	return &Viewer{source: source, signedIn: signedIn, onChange: onChange}
}

// # Slide Projection

// Slides builds the current slide deck from the gallery, one slide per item.
// While a video is promoted the synthesized thumbnail is the default image's
// only carrier, so it gets a slide like any natural entry; an ID never yields
// more than one slide.
func (v *Viewer) Slides() []Slide {
	signedIn := v.signedIn()

	items := v.source.Current().Items()
	slides := make([]Slide, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		slide := Slide{Item: item, Variant: item.UIVariant(signedIn)}
		if item.IsVideo() {
			slide.EmbedURL = youtube.EmbedURL(item.YouTubeID)
		} else {
			slide.ImageURL = item.SourceURL
		}
		slides = append(slides, slide)
	}
	return slides
}

// # Lifecycle

// Open opens the viewer on the given item. No-op when the item is unknown.
func (v *Viewer) Open(mediaID string) {
	if _, ok := v.source.Current().FindByID(mediaID); !ok {
		return
	}

	v.mu.Lock()
	v.open = true
	v.currentID = mediaID
	v.mu.Unlock()
	v.notify()
}

// Close closes the viewer. Idempotent.
func (v *Viewer) Close() {
	v.mu.Lock()
	if !v.open {
		v.mu.Unlock()
		return
	}
	v.open = false
	v.currentID = ""
	v.mu.Unlock()
	v.notify()
}

// IsOpen reports whether the viewer is showing.
func (v *Viewer) IsOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.open
}

// Current returns the slide the viewer is showing.
func (v *Viewer) Current() (Slide, bool) {
	v.mu.Lock()
	open, id := v.open, v.currentID
	v.mu.Unlock()

	if !open {
		return Slide{}, false
	}
	for _, slide := range v.Slides() {
		if slide.Item.ID == id {
			return slide, true
		}
	}
	return Slide{}, false
}

// # Navigation

// Next advances to the following slide, wrapping at the end.
func (v *Viewer) Next() { v.step(1) }

// Prev steps back to the previous slide, wrapping at the start.
func (v *Viewer) Prev() { v.step(-1) }

func (v *Viewer) step(delta int) {
	v.mu.Lock()
	open, id := v.open, v.currentID
	v.mu.Unlock()
	if !open {
		return
	}

	slides := v.Slides()
	if len(slides) == 0 {
		v.Close()
		return
	}

	index := 0
	for i, slide := range slides {
		if slide.Item.ID == id {
			index = i
			break
		}
	}
	index = (index + delta + len(slides)) % len(slides)

	v.mu.Lock()
	v.currentID = slides[index].Item.ID
	v.mu.Unlock()
	v.notify()
}

// # Model Reconciliation

// GalleryChanged re-anchors an open viewer after the gallery model changed.
// If the current item is gone (deleted), the viewer moves to the first slide;
// with nothing left to show it closes.
func (v *Viewer) GalleryChanged() {
	v.mu.Lock()
	open, id := v.open, v.currentID
	v.mu.Unlock()
	if !open {
		return
	}

	slides := v.Slides()
	if len(slides) == 0 {
		v.Close()
		return
	}

	for _, slide := range slides {
		if slide.Item.ID == id {
			v.notify()
			return
		}
	}

	v.mu.Lock()
	v.currentID = slides[0].Item.ID
	v.mu.Unlock()
	v.notify()
}

func (v *Viewer) notify() {
	if v.onChange != nil {
		v.onChange()
	}
}
