// Copyright (c) 2026 Modhaven. All rights reserved.

package video_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modhaven/modhaven/internal/site/video"
)

/*
TestSeedDemoVideos verifies the demo data lands under slugged mod IDs and is
backdated out of the submitter's daily quota.
*/
func TestSeedDemoVideos(t *testing.T) {
	store := video.NewMemoryStore()
	service := video.NewService(store, 3, nil)

	require.NoError(t, video.SeedDemoVideos(context.Background(), store, alice.UserID, alice.Username))

	// Mod titles became slugs, accents stripped.
	biomes, err := service.GallerySource(context.Background(), nil, "expanded-biomes")
	require.NoError(t, err)
	assert.Len(t, biomes, 2)

	nether, err := service.GallerySource(context.Background(), nil, "nether-overhaul")
	require.NoError(t, err)
	assert.Len(t, nether, 1)

	// Backdated seeds leave the submitter's quota untouched.
	for _, url := range watchURLs[:3] {
		_, err := service.Submit(context.Background(), alice, "mod-9", url)
		require.NoError(t, err)
	}
}
