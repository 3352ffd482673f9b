// Copyright (c) 2026 Modhaven. All rights reserved.

package youtube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modhaven/modhaven/pkg/youtube"
)

/*
TestVideoID_AcceptedShapes verifies every URL shape users paste into the
submission form resolves to its 11-character ID.
*/
func TestVideoID_AcceptedShapes(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch_no_www", "https://youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch_extra_params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s"},
		{"short_link", "https://youtu.be/dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
		{"live", "https://www.youtube.com/live/dQw4w9WgXcQ"},
		{"mobile_host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"music_host", "https://music.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"surrounding_whitespace", "  https://youtu.be/dQw4w9WgXcQ  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := youtube.VideoID(tt.url)
			require.NoError(t, err)
			assert.Equal(t, "dQw4w9WgXcQ", id)
			assert.True(t, youtube.IsVideoURL(tt.url))
		})
	}
}

/*
TestVideoID_RejectedShapes verifies everything else fails with
ErrNotAVideoURL.
*/
func TestVideoID_RejectedShapes(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"not_a_url", "dQw4w9WgXcQ"},
		{"other_site", "https://vimeo.com/12345"},
		{"channel", "https://www.youtube.com/@somechannel"},
		{"playlist", "https://www.youtube.com/playlist?list=PLx"},
		{"watch_without_v", "https://www.youtube.com/watch"},
		{"short_link_bad_id", "https://youtu.be/too-short"},
		{"embed_without_id", "https://www.youtube.com/embed/"},
		{"lookalike_host", "https://youtube.com.evil.example/watch?v=dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := youtube.VideoID(tt.url)
			assert.ErrorIs(t, err, youtube.ErrNotAVideoURL)
			assert.False(t, youtube.IsVideoURL(tt.url))
		})
	}
}

/*
TestURLBuilders verifies the canonical watch, embed, and thumbnail URLs.
*/
func TestURLBuilders(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", youtube.WatchURL("dQw4w9WgXcQ"))
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", youtube.EmbedURL("dQw4w9WgXcQ"))
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/mqdefault.jpg", youtube.ThumbnailURL("dQw4w9WgXcQ", "mqdefault"))

	// Empty quality falls back to hqdefault.
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", youtube.ThumbnailURL("dQw4w9WgXcQ", ""))
}
