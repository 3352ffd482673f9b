// Copyright (c) 2026 Modhaven. All rights reserved.

// Package youtube extracts video identifiers from the URL shapes users paste
// into the video submission form.
//
// # Accepted Shapes
//
//   - https://www.youtube.com/watch?v=VIDEOID
//   - https://youtu.be/VIDEOID
//   - https://www.youtube.com/embed/VIDEOID
//   - https://www.youtube.com/shorts/VIDEOID
//
// Anything else is rejected; the engine surfaces the failure as an inline
// validation message without touching the network.
package youtube

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// idPattern matches the canonical 11-character YouTube video ID alphabet.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ErrNotAVideoURL is returned when a string cannot be resolved to a video ID.
var ErrNotAVideoURL = errors.New("youtube: not a recognizable video URL")

// VideoID extracts the 11-character video ID from a YouTube URL.
func VideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return "", ErrNotAVideoURL
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	switch host {
	case "youtu.be":
		return validateID(strings.Trim(parsed.Path, "/"))
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		// fall through to path handling below
	default:
		return "", ErrNotAVideoURL
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	switch segments[0] {
	case "watch":
		return validateID(parsed.Query().Get("v"))
	case "embed", "shorts", "live":
		if len(segments) < 2 {
			return "", ErrNotAVideoURL
		}
		return validateID(segments[1])
	}

	return "", ErrNotAVideoURL
}

// IsVideoURL reports whether rawURL resolves to a YouTube video ID.
func IsVideoURL(rawURL string) bool {
	_, err := VideoID(rawURL)
	return err == nil
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// EmbedURL builds the embeddable player URL for a video ID.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}

// ThumbnailURL builds the default thumbnail URL for a video ID.
//
// quality is one of "default", "mqdefault", "hqdefault", "maxresdefault".
func ThumbnailURL(videoID, quality string) string {
	if quality == "" {
		quality = "hqdefault"
	}
	return "https://i.ytimg.com/vi/" + videoID + "/" + quality + ".jpg"
}

func validateID(candidate string) (string, error) {
	if !idPattern.MatchString(candidate) {
		return "", ErrNotAVideoURL
	}
	return candidate, nil
}
