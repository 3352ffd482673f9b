// Copyright (c) 2026 Modhaven. All rights reserved.

package gallery

import (
	"sync"
	"time"

	"github.com/modhaven/modhaven/internal/platform/clock"
	"github.com/modhaven/modhaven/internal/platform/constants"
)

// resizeDebounce is how long the layout waits for the viewport to settle
// before recomputing.
const resizeDebounce = 150 * time.Millisecond

// Layout decides how many thumbnails are visible for the current viewport and
// whether a "load more" control is shown.
//
// It is a pure function of viewport width, item count, and the expanded flag;
// it holds no reference to gallery items themselves.
type Layout struct {
	mu sync.Mutex

	clk          clock.Clock
	widthPx      int
	expanded     bool
	pendingWidth int
	debounce     clock.Timer

	// onChange fires after every effective recompute (debounced resize,
	// load-more, gallery change).
	onChange func()
}

// NewLayout creates a Layout for the given initial viewport width.
func NewLayout(clk clock.Clock, initialWidthPx int, onChange func()) *Layout {
	if clk == nil {
		clk = clock.System()
	}
	return &Layout{clk: clk, widthPx: initialWidthPx, onChange: onChange}
}

// maxVisible returns the thumbnail cap for the current viewport width.
func (layout *Layout) maxVisible() int {
	if layout.widthPx < constants.LayoutBreakpointPx {
		return constants.NarrowVisibleThumbs
	}
	return constants.WideVisibleThumbs
}

// VisibleCount returns how many of itemCount thumbnails are currently shown.
func (layout *Layout) VisibleCount(itemCount int) int {
	layout.mu.Lock()
	defer layout.mu.Unlock()

	if layout.expanded {
		return itemCount
	}
	if limit := layout.maxVisible(); itemCount > limit {
		return limit
	}
	return itemCount
}

// ShowsLoadMore reports whether the "load more" control is visible.
// It disappears once every thumbnail is revealed.
func (layout *Layout) ShowsLoadMore(itemCount int) bool {
	layout.mu.Lock()
	defer layout.mu.Unlock()
	return !layout.expanded && itemCount > layout.maxVisible()
}

// LoadMore reveals the remaining thumbnails.
func (layout *Layout) LoadMore() {
	layout.mu.Lock()
	if layout.expanded {
		layout.mu.Unlock()
		return
	}
	layout.expanded = true
	layout.mu.Unlock()
	layout.notify()
}

// Resize records a new viewport width. Recomputation is debounced: only the
// last width observed within the debounce window takes effect.
func (layout *Layout) Resize(widthPx int) {
	layout.mu.Lock()
	layout.pendingWidth = widthPx
	if layout.debounce != nil {
		layout.debounce.Stop()
	}
	layout.debounce = layout.clk.AfterFunc(resizeDebounce, layout.applyPendingResize)
	layout.mu.Unlock()
}

func (layout *Layout) applyPendingResize() {
	layout.mu.Lock()
	layout.debounce = nil
	changed := layout.widthPx != layout.pendingWidth
	layout.widthPx = layout.pendingWidth
	layout.mu.Unlock()

	if changed {
		layout.notify()
	}
}

// GalleryChanged recomputes after the gallery model changed (item added,
// removed, or reordered by promotion).
func (layout *Layout) GalleryChanged() {
	layout.notify()
}

func (layout *Layout) notify() {
	if layout.onChange != nil {
		layout.onChange()
	}
}
