// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package gallery implements the media gallery model for a mod page: the ordered
collection of screenshots and videos, the featured-item promotion transform,
and the responsive thumbnail layout rules.

Architecture:

  - MediaItem: One gallery entry. Plain data plus derived queries; owns no UI.
  - Gallery: Immutable ordered collection. Every mutation returns a new value,
    so controllers can swap state atomically and re-render views from it.
  - Promotion: Moving a featured video into the hero slot (index 0) while the
    previously-hero default image keeps a thumbnail in the strip.

The view tree is a projection of this model and is never read back into it.
*/
package gallery

// Kind discriminates the two media types a gallery can hold.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Variant is the closed set of per-item UI capability variants.
//
// It is computed once per item from the server-supplied capability flags —
// render code branches on the variant, never on raw flags.
type Variant string

const (
	// VariantViewer sees media only, no moderation controls.
	VariantViewer Variant = "viewer"

	// VariantReporter is any signed-in user on someone else's video: report only.
	VariantReporter Variant = "reporter"

	// VariantManager is a moderator: delete and feature controls, softer
	// delete wording (hide from gallery).
	VariantManager Variant = "manager"

	// VariantOwnerManager is the content owner: delete and feature controls,
	// irreversible-deletion wording.
	VariantOwnerManager Variant = "owner-manager"
)

// MediaItem is one entry of a mod page gallery.
//
// Capability flags (CanManage, CanFeature, IsOwn) are computed server-side and
// passed in verbatim; the client never infers permissions.
type MediaItem struct {
	// ID is an opaque identifier, unique within a gallery.
	ID string

	Kind Kind

	// Sequence is the 1-based position assigned at build time. It is the
	// stable ordering key and never changes, regardless of promotion.
	Sequence int

	// Presentation attributes.
	SourceURL     string
	ThumbSmallURL string
	ThumbLargeURL string
	Width         int
	Height        int

	// Video identity and attribution (video-only).
	YouTubeID        string
	Author           string
	AuthorProfileURL string

	// Featured marks the item promoted to the hero slot. At most one item
	// per gallery carries it.
	Featured bool

	// Reported is video-only and permanent for the viewing user's session.
	// The server is authoritative; the client never un-reports.
	Reported bool

	// ReportCount is an advisory display value (video-only).
	ReportCount int

	// Capability flags, verbatim from the server.
	CanManage  bool
	CanFeature bool
	IsOwn      bool

	// Synthetic marks a thumbnail entry created on demand to keep the
	// default image reachable while a video occupies the hero slot.
	Synthetic bool
}

// IsVideo reports whether the item is a video entry.
func (item MediaItem) IsVideo() bool { return item.Kind == KindVideo }

// UIVariant selects the UI variant for this item given the session state.
func (item MediaItem) UIVariant(signedIn bool) Variant {
	switch {
	case item.CanManage && item.IsOwn:
		return VariantOwnerManager
	case item.CanManage:
		return VariantManager
	case signedIn && item.IsVideo():
		return VariantReporter
	default:
		return VariantViewer
	}
}

// CanBeFeatured reports whether the feature control applies to this item.
func (item MediaItem) CanBeFeatured() bool {
	return item.IsVideo() && item.CanManage && item.CanFeature
}

// ItemSource is the raw, untrusted per-item payload the gallery is built from
// (parsed out of server-rendered markup on the real site).
type ItemSource struct {
	ID               string `json:"id"`
	Kind             string `json:"kind"`
	SourceURL        string `json:"source_url"`
	ThumbSmallURL    string `json:"thumb_small_url"`
	ThumbLargeURL    string `json:"thumb_large_url"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	YouTubeID        string `json:"youtube_id"`
	Author           string `json:"author"`
	AuthorProfileURL string `json:"author_profile_url"`
	Featured         bool   `json:"is_featured"`
	Reported         bool   `json:"is_reported"`
	ReportCount      int    `json:"report_count"`
	CanManage        bool   `json:"can_manage"`
	CanFeature       bool   `json:"can_feature"`
	IsOwn            bool   `json:"is_own"`
}
