// Copyright (c) 2026 Modhaven. All rights reserved.

package video

import (
	"context"
	"fmt"
	"time"

	"github.com/modhaven/modhaven/pkg/slice"
	"github.com/modhaven/modhaven/pkg/slug"
	"github.com/modhaven/modhaven/pkg/uuid"
)

// demoSeed is one preloaded gallery entry for local development.
type demoSeed struct {
	modTitle  string
	youtubeID string
}

var demoSeeds = []demoSeed{
	{modTitle: "Expanded Biomes", youtubeID: "dQw4w9WgXcQ"},
	{modTitle: "Expanded Biomes", youtubeID: "aqz-KE-bpKQ"},
	{modTitle: "Néther Overhaul", youtubeID: "9bZkp7q19f0"},
}

/*
SeedDemoVideos preloads a couple of mod page galleries so a fresh dev server
has content to render. Mod IDs are slugs of the mod titles, matching how the
site derives page identifiers.

Seeded entries are backdated two days so they never count against the
submitter's daily quota.

Parameters:
  - ctx: context.Context
  - store: Store
  - submitterID: string
  - submitterName: string

Returns:
  - err: Storage errors
*/
func SeedDemoVideos(ctx context.Context, store Store, submitterID, submitterName string) error {
	base := time.Now().UTC().Add(-48 * time.Hour)

	offset := 0
	videos := slice.Map(demoSeeds, func(seed demoSeed) *Video {
		offset++
		return &Video{
			ID:            uuid.New(),
			ModID:         slug.From(seed.modTitle),
			YouTubeID:     seed.youtubeID,
			SubmitterID:   submitterID,
			SubmitterName: submitterName,
			CreatedAt:     base.Add(time.Duration(offset) * time.Minute),
		}
	})

	for _, v := range videos {
		if err := store.Create(ctx, v); err != nil {
			return fmt.Errorf("video_seed_failed: %w", err)
		}
	}
	return nil
}
