// Copyright (c) 2026 Modhaven. All rights reserved.

package video

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/modhaven/modhaven/internal/platform/apperr"
)

// # Contract

// Store persists videos and their per-user report records.
type Store interface {
	Create(ctx context.Context, video *Video) error
	FindByID(ctx context.Context, videoID string) (*Video, error)
	FindDuplicate(ctx context.Context, modID, youtubeID string) (*Video, error)
	ListByMod(ctx context.Context, modID string) ([]*Video, error)
	Delete(ctx context.Context, videoID string) error

	// AddReport records a report. alreadyReported is true when this user has
	// reported the video before; the count is returned either way.
	AddReport(ctx context.Context, videoID, userID string) (reportCount int, alreadyReported bool, err error)

	// HasReported reports whether the user has already reported the video.
	HasReported(ctx context.Context, videoID, userID string) (bool, error)

	// SetFeatured marks the video featured and unfeatures every other video
	// of the same mod.
	SetFeatured(ctx context.Context, videoID string) error

	// ClearFeatured removes the featured mark from the video.
	ClearFeatured(ctx context.Context, videoID string) error

	// CountSubmissionsSince counts a user's submissions at or after the
	// given time, for the daily quota.
	CountSubmissionsSince(ctx context.Context, userID string, since time.Time) (int, error)
}

// # In-Memory Store

type record struct {
	video      Video
	reportedBy map[string]struct{}
}

// MemoryStore is the dev server's Store. All methods copy records on the way
// in and out; callers never share memory with the store.
type MemoryStore struct {
	mu     sync.Mutex
	videos map[string]*record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{videos: make(map[string]*record)}
}

// Create persists a new video.
func (store *MemoryStore) Create(_ context.Context, video *Video) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.videos[video.ID] = &record{
		video:      *video,
		reportedBy: make(map[string]struct{}),
	}
	return nil
}

// FindByID resolves a video by ID.
func (store *MemoryStore) FindByID(_ context.Context, videoID string) (*Video, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	rec, found := store.videos[videoID]
	if !found {
		return nil, apperr.NotFound("Video")
	}
	copied := rec.video
	return &copied, nil
}

// FindDuplicate resolves a video by its mod and YouTube identity.
func (store *MemoryStore) FindDuplicate(_ context.Context, modID, youtubeID string) (*Video, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, rec := range store.videos {
		if rec.video.ModID == modID && rec.video.YouTubeID == youtubeID {
			copied := rec.video
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Video")
}

// ListByMod returns a mod's videos in submission order.
func (store *MemoryStore) ListByMod(_ context.Context, modID string) ([]*Video, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	videos := make([]*Video, 0)
	for _, rec := range store.videos {
		if rec.video.ModID != modID {
			continue
		}
		copied := rec.video
		videos = append(videos, &copied)
	}
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].CreatedAt.Before(videos[j].CreatedAt)
	})
	return videos, nil
}

// Delete removes a video. Idempotent.
func (store *MemoryStore) Delete(_ context.Context, videoID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.videos, videoID)
	return nil
}

// AddReport records one report per user per video.
func (store *MemoryStore) AddReport(_ context.Context, videoID, userID string) (int, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	rec, found := store.videos[videoID]
	if !found {
		return 0, false, apperr.NotFound("Video")
	}

	if _, already := rec.reportedBy[userID]; already {
		return rec.video.ReportCount, true, nil
	}

	rec.reportedBy[userID] = struct{}{}
	rec.video.ReportCount = len(rec.reportedBy)
	return rec.video.ReportCount, false, nil
}

// HasReported reports whether the user already reported the video.
func (store *MemoryStore) HasReported(_ context.Context, videoID, userID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	rec, found := store.videos[videoID]
	if !found {
		return false, apperr.NotFound("Video")
	}
	_, already := rec.reportedBy[userID]
	return already, nil
}

// SetFeatured makes the video its mod's single featured video.
func (store *MemoryStore) SetFeatured(_ context.Context, videoID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	target, found := store.videos[videoID]
	if !found {
		return apperr.NotFound("Video")
	}

	for _, rec := range store.videos {
		if rec.video.ModID == target.video.ModID {
			rec.video.Featured = false
		}
	}
	target.video.Featured = true
	return nil
}

// ClearFeatured unfeatures the video.
func (store *MemoryStore) ClearFeatured(_ context.Context, videoID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	rec, found := store.videos[videoID]
	if !found {
		return apperr.NotFound("Video")
	}
	rec.video.Featured = false
	return nil
}

// CountSubmissionsSince counts a user's submissions at or after `since`.
func (store *MemoryStore) CountSubmissionsSince(_ context.Context, userID string, since time.Time) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	count := 0
	for _, rec := range store.videos {
		if rec.video.SubmitterID == userID && !rec.video.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}
