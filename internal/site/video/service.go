// Copyright (c) 2026 Modhaven. All rights reserved.

package video

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modhaven/modhaven/internal/engine/gallery"
	"github.com/modhaven/modhaven/internal/platform/apperr"
	"github.com/modhaven/modhaven/internal/platform/sec"
	"github.com/modhaven/modhaven/internal/platform/validate"
	"github.com/modhaven/modhaven/pkg/uuid"
	"github.com/modhaven/modhaven/pkg/youtube"
)

// Service implements the video moderation business rules.
type Service struct {
	store      Store
	dailyLimit int
	logger     *slog.Logger
}

// NewService constructs a [Service]. dailyLimit caps per-user submissions per
// calendar day (UTC); a nil logger falls back to slog.Default().
func NewService(store Store, dailyLimit int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, dailyLimit: dailyLimit, logger: logger}
}

// # Submission

/*
Submit validates and persists a new community video.

Description: Enforces the YouTube URL shape, the per-user daily quota (429),
and per-mod duplicate detection (409).

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims
  - modID: string
  - youtubeURL: string

Returns:
  - *Video: Created entity
  - err: ValidationError, RateLimited, Conflict, or storage errors
*/
func (service *Service) Submit(context context.Context, claims *sec.SessionClaims, modID, youtubeURL string) (*Video, error) {
	validator := &validate.Validator{}
	validator.Required("mod_id", modID).
		Required("youtube_url", youtubeURL).
		YouTubeURL("youtube_url", youtubeURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	youtubeID, err := youtube.VideoID(youtubeURL)
	if err != nil {
		return nil, apperr.ValidationError("Not a valid YouTube video URL")
	}

	// Daily quota, measured from UTC midnight.
	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	submitted, err := service.store.CountSubmissionsSince(context, claims.UserID, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("video_service_quota_check_failed: %w", err)
	}
	if submitted >= service.dailyLimit {
		return nil, apperr.RateLimited("You've reached the daily video submission limit. Try again tomorrow.")
	}

	if _, err := service.store.FindDuplicate(context, modID, youtubeID); err == nil {
		return nil, apperr.Conflict("This video has already been submitted for this mod.")
	}

	video := &Video{
		ID:            uuid.New(),
		ModID:         modID,
		YouTubeID:     youtubeID,
		SubmitterID:   claims.UserID,
		SubmitterName: claims.Username,
		CreatedAt:     time.Now().UTC(),
	}
	if err := service.store.Create(context, video); err != nil {
		return nil, fmt.Errorf("video_service_create_failed: %w", err)
	}

	service.logger.Info("video_submitted",
		slog.String("video_id", video.ID),
		slog.String("mod_id", modID),
		slog.String("user_id", claims.UserID),
	)
	return video, nil
}

// # Moderation

/*
Report records one report per user per video.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims
  - videoID: string

Returns:
  - int: Updated report count
  - err: NotFound, Conflict (already reported), or storage errors
*/
func (service *Service) Report(context context.Context, claims *sec.SessionClaims, videoID string) (int, error) {
	count, alreadyReported, err := service.store.AddReport(context, videoID, claims.UserID)
	if err != nil {
		return 0, err
	}
	if alreadyReported {
		return count, apperr.Conflict("You've already reported this video.")
	}

	service.logger.Info("video_reported",
		slog.String("video_id", videoID),
		slog.Int("report_count", count),
	)
	return count, nil
}

/*
Delete removes a video.

Description: Allowed for moderators and for the video's submitter; everyone
else gets 403.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims
  - videoID: string

Returns:
  - err: NotFound, Forbidden, or storage errors
*/
func (service *Service) Delete(context context.Context, claims *sec.SessionClaims, videoID string) error {
	video, err := service.store.FindByID(context, videoID)
	if err != nil {
		return err
	}

	if !claims.IsModerator && video.SubmitterID != claims.UserID {
		return apperr.Forbidden("You don't have permission to delete this video.")
	}

	if err := service.store.Delete(context, videoID); err != nil {
		return fmt.Errorf("video_service_delete_failed: %w", err)
	}

	service.logger.Warn("video_deleted",
		slog.String("video_id", videoID),
		slog.String("user_id", claims.UserID),
	)
	return nil
}

/*
Feature promotes a video to its mod's hero slot. Moderator-only.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims
  - videoID: string

Returns:
  - err: NotFound, Forbidden, or storage errors
*/
func (service *Service) Feature(context context.Context, claims *sec.SessionClaims, videoID string) error {
	if !claims.IsModerator {
		return apperr.Forbidden("You don't have permission to feature videos.")
	}
	if _, err := service.store.FindByID(context, videoID); err != nil {
		return err
	}
	if err := service.store.SetFeatured(context, videoID); err != nil {
		return fmt.Errorf("video_service_feature_failed: %w", err)
	}

	service.logger.Info("video_featured", slog.String("video_id", videoID))
	return nil
}

/*
Unfeature demotes a featured video. Moderator-only.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims
  - videoID: string

Returns:
  - err: NotFound, Forbidden, or storage errors
*/
func (service *Service) Unfeature(context context.Context, claims *sec.SessionClaims, videoID string) error {
	if !claims.IsModerator {
		return apperr.Forbidden("You don't have permission to feature videos.")
	}
	if _, err := service.store.FindByID(context, videoID); err != nil {
		return err
	}
	if err := service.store.ClearFeatured(context, videoID); err != nil {
		return fmt.Errorf("video_service_unfeature_failed: %w", err)
	}

	service.logger.Info("video_unfeatured", slog.String("video_id", videoID))
	return nil
}

// # Gallery Projection

/*
GallerySource builds the raw gallery payload for a mod page, with capability
flags computed for the requesting session (nil claims means anonymous).

The engine consumes this verbatim through gallery.Build; the server is the
only place capabilities are decided.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims (nil for anonymous)
  - modID: string

Returns:
  - []gallery.ItemSource: Raw gallery entries in submission order
  - err: Storage errors
*/
func (service *Service) GallerySource(context context.Context, claims *sec.SessionClaims, modID string) ([]gallery.ItemSource, error) {
	videos, err := service.store.ListByMod(context, modID)
	if err != nil {
		return nil, fmt.Errorf("video_service_list_failed: %w", err)
	}

	source := make([]gallery.ItemSource, 0, len(videos))
	for _, video := range videos {
		isOwn := claims != nil && claims.UserID == video.SubmitterID
		reported := false
		if claims != nil {
			reported, _ = service.store.HasReported(context, video.ID, claims.UserID)
		}

		source = append(source, gallery.ItemSource{
			ID:            video.ID,
			Kind:          string(gallery.KindVideo),
			SourceURL:     youtube.WatchURL(video.YouTubeID),
			ThumbSmallURL: youtube.ThumbnailURL(video.YouTubeID, "mqdefault"),
			ThumbLargeURL: youtube.ThumbnailURL(video.YouTubeID, "hqdefault"),
			YouTubeID:     video.YouTubeID,
			Author:        video.SubmitterName,
			Featured:      video.Featured,
			Reported:      reported,
			ReportCount:   video.ReportCount,
			CanManage:     claims != nil && (claims.IsModerator || isOwn),
			CanFeature:    claims != nil && claims.IsModerator,
			IsOwn:         isOwn,
		})
	}

	return source, nil
}
