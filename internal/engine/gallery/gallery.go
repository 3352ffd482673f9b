// Copyright (c) 2026 Modhaven. All rights reserved.

package gallery

import (
	"errors"
	"fmt"
	"sort"
)

// Model-level sentinel errors. Controllers translate these into user-facing
// messages; they never cross the network.
var (
	// ErrNotFound means the referenced item is not part of the gallery.
	ErrNotFound = errors.New("gallery: item not found")

	// ErrNotVideo means a video-only operation was attempted on an image.
	ErrNotVideo = errors.New("gallery: operation applies to videos only")
)

// Gallery is the ordered collection of media items for one mod page.
//
// # Immutability
//
// A Gallery value never changes after construction. Every transform returns a
// new Gallery, which lets the engine swap state atomically and treat the view
// tree as a pure projection. Index 0 is the hero slot.
type Gallery struct {
	items []MediaItem

	// defaultHero caches the original hero image payload out-of-band so it
	// can be restored after an unfeature, even if its strip entry was
	// synthesized in the meantime.
	defaultHero *MediaItem
}

// # Construction

// Build parses untrusted raw items into a Gallery.
//
// It assigns a stable 1-based Sequence in raw order, normalizes the featured
// flag (first flagged video wins, images cannot be featured), caches the
// default hero image, and applies the featured-video promotion so the featured
// item occupies the hero slot. The transform is pure and idempotent: building
// from the source of a built gallery yields the same gallery.
func Build(source []ItemSource) (*Gallery, error) {
	items := make([]MediaItem, 0, len(source))
	seen := make(map[string]struct{}, len(source))

	for i, raw := range source {
		kind := Kind(raw.Kind)
		if kind != KindImage && kind != KindVideo {
			return nil, fmt.Errorf("gallery: item %d has unknown kind %q", i, raw.Kind)
		}
		if raw.ID == "" {
			return nil, fmt.Errorf("gallery: item %d has no id", i)
		}
		if _, dup := seen[raw.ID]; dup {
			return nil, fmt.Errorf("gallery: duplicate item id %q", raw.ID)
		}
		seen[raw.ID] = struct{}{}

		items = append(items, MediaItem{
			ID:               raw.ID,
			Kind:             kind,
			Sequence:         i + 1,
			SourceURL:        raw.SourceURL,
			ThumbSmallURL:    raw.ThumbSmallURL,
			ThumbLargeURL:    raw.ThumbLargeURL,
			Width:            raw.Width,
			Height:           raw.Height,
			YouTubeID:        raw.YouTubeID,
			Author:           raw.Author,
			AuthorProfileURL: raw.AuthorProfileURL,
			Featured:         raw.Featured,
			Reported:         raw.Reported,
			ReportCount:      raw.ReportCount,
			CanManage:        raw.CanManage,
			CanFeature:       raw.CanFeature,
			IsOwn:            raw.IsOwn,
		})
	}

	// Untrusted input: at most one featured item, and only a video can hold
	// the flag. First encountered wins, the rest are normalized off.
	featuredID := ""
	for i := range items {
		if !items[i].Featured {
			continue
		}
		if featuredID != "" || !items[i].IsVideo() {
			items[i].Featured = false
			continue
		}
		featuredID = items[i].ID
	}

	g := &Gallery{items: items}
	if hero := firstImage(items); hero != nil {
		cached := *hero
		cached.Featured = false
		cached.Synthetic = false
		g.defaultHero = &cached
	}

	if featuredID != "" {
		return g.Promote(featuredID)
	}
	return g, nil
}

func firstImage(items []MediaItem) *MediaItem {
	for i := range items {
		if !items[i].IsVideo() {
			return &items[i]
		}
	}
	return nil
}

// # Queries

// Len returns the number of items, synthetic thumbnail included.
func (g *Gallery) Len() int { return len(g.items) }

// Items returns a copy of the display-ordered items.
func (g *Gallery) Items() []MediaItem {
	out := make([]MediaItem, len(g.items))
	copy(out, g.items)
	return out
}

// FindByID returns the item with the given ID.
func (g *Gallery) FindByID(id string) (MediaItem, bool) {
	for _, item := range g.items {
		if item.ID == id && !item.Synthetic {
			return item, true
		}
	}
	// A synthesized entry may be the only carrier of the default image.
	for _, item := range g.items {
		if item.ID == id {
			return item, true
		}
	}
	return MediaItem{}, false
}

// Hero returns the item occupying the hero slot.
func (g *Gallery) Hero() (MediaItem, bool) {
	if len(g.items) == 0 {
		return MediaItem{}, false
	}
	return g.items[0], true
}

// FeaturedItem returns the single featured item, if any.
func (g *Gallery) FeaturedItem() (MediaItem, bool) {
	for _, item := range g.items {
		if item.Featured {
			return item, true
		}
	}
	return MediaItem{}, false
}

// DefaultHero returns the cached default image payload.
func (g *Gallery) DefaultHero() (MediaItem, bool) {
	if g.defaultHero == nil {
		return MediaItem{}, false
	}
	return *g.defaultHero, true
}

// IndexOf returns the current display position of an item, or -1.
func (g *Gallery) IndexOf(id string) int {
	for i, item := range g.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// # Transforms

// Replace returns a new gallery with one item patched.
//
// The patch never changes identity or ordering: ID, Kind, and Sequence are
// preserved regardless of what the patch function does.
func (g *Gallery) Replace(id string, patch func(*MediaItem)) (*Gallery, error) {
	if g.IndexOf(id) < 0 {
		return nil, ErrNotFound
	}

	items := make([]MediaItem, len(g.items))
	copy(items, g.items)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		preserved := items[i]
		patch(&items[i])
		items[i].ID = preserved.ID
		items[i].Kind = preserved.Kind
		items[i].Sequence = preserved.Sequence
		items[i].Synthetic = preserved.Synthetic
	}

	return &Gallery{items: items, defaultHero: g.defaultHero}, nil
}

// Remove returns a new gallery without the given video.
//
// Removing the featured video restores the default image to the hero slot.
func (g *Gallery) Remove(id string) (*Gallery, error) {
	target, ok := g.FindByID(id)
	if !ok {
		return nil, ErrNotFound
	}
	if !target.IsVideo() {
		return nil, ErrNotVideo
	}

	items := make([]MediaItem, 0, len(g.items))
	for _, item := range g.items {
		if item.ID == id {
			continue
		}
		items = append(items, item)
	}

	next := &Gallery{items: items, defaultHero: g.defaultHero}
	if target.Featured {
		return next.RestoreDefault(), nil
	}
	return next, nil
}

// Promote returns a new gallery with the given video in the hero slot.
//
// The video is marked featured (exclusively). The default image keeps exactly
// one strip entry while promoted: a copy of the cached default payload, placed
// directly after the hero and flagged Synthetic. Its natural slot folds into
// that entry, so an ID never appears twice in the display order.
func (g *Gallery) Promote(id string) (*Gallery, error) {
	target, ok := g.FindByID(id)
	if !ok {
		return nil, ErrNotFound
	}
	if !target.IsVideo() {
		return nil, ErrNotVideo
	}

	base := g.canonicalItems()

	out := make([]MediaItem, 0, len(base)+1)
	promoted := target
	promoted.Featured = true
	promoted.Synthetic = false
	out = append(out, promoted)

	if g.defaultHero != nil {
		thumb := *g.defaultHero
		thumb.Synthetic = true
		out = append(out, thumb)
	}

	for _, item := range base {
		if item.ID == promoted.ID {
			continue
		}
		if g.defaultHero != nil && item.ID == g.defaultHero.ID {
			continue
		}
		out = append(out, item)
	}

	return &Gallery{items: out, defaultHero: g.defaultHero}, nil
}

// RestoreDefault returns a new gallery with the default image back in the hero
// slot: featured flags cleared everywhere, the synthetic thumbnail dropped in
// favor of the item's natural slot, and display order restored to Sequence
// order. Idempotent.
func (g *Gallery) RestoreDefault() *Gallery {
	return &Gallery{items: g.canonicalItems(), defaultHero: g.defaultHero}
}

// canonicalItems rebuilds the unpromoted display order: every item exactly
// once, sorted by Sequence, no featured flags, no synthetic markers.
func (g *Gallery) canonicalItems() []MediaItem {
	out := make([]MediaItem, 0, len(g.items))
	present := make(map[string]struct{}, len(g.items))

	// Natural entries win over synthesized duplicates.
	for _, item := range g.items {
		if item.Synthetic {
			continue
		}
		item.Featured = false
		out = append(out, item)
		present[item.ID] = struct{}{}
	}
	for _, item := range g.items {
		if !item.Synthetic {
			continue
		}
		if _, dup := present[item.ID]; dup {
			continue
		}
		item.Featured = false
		item.Synthetic = false
		out = append(out, item)
		present[item.ID] = struct{}{}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}
