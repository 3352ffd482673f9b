// Copyright (c) 2026 Modhaven. All rights reserved.

package video_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modhaven/modhaven/internal/platform/apperr"
	"github.com/modhaven/modhaven/internal/platform/sec"
	"github.com/modhaven/modhaven/internal/site/video"
)

// Session claims used across the tests.
var (
	alice  = &sec.SessionClaims{UserID: "user-alice", Username: "alice"}
	bob    = &sec.SessionClaims{UserID: "user-bob", Username: "bob"}
	morgan = &sec.SessionClaims{UserID: "user-morgan", Username: "morgan", IsModerator: true}
)

// watchURLs is a pool of distinct valid YouTube URLs for quota tests.
var watchURLs = []string{
	"https://youtu.be/dQw4w9WgXcQ",
	"https://youtu.be/aqz-KE-bpKQ",
	"https://youtu.be/9bZkp7q19f0",
	"https://youtu.be/kJQP7kiw5Fk",
}

func newService() *video.Service {
	return video.NewService(video.NewMemoryStore(), 3, nil)
}

// # Submission

/*
TestSubmit_CreatesVideo verifies a valid submission resolves the YouTube ID
and attributes the video to the submitter.
*/
func TestSubmit_CreatesVideo(t *testing.T) {
	service := newService()

	created, err := service.Submit(context.Background(), alice, "mod-9", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "mod-9", created.ModID)
	assert.Equal(t, "dQw4w9WgXcQ", created.YouTubeID)
	assert.Equal(t, "user-alice", created.SubmitterID)
	assert.Equal(t, "alice", created.SubmitterName)
	assert.False(t, created.Featured)
}

/*
TestSubmit_RejectsInvalidInput verifies missing fields and non-video URLs are
validation errors.
*/
func TestSubmit_RejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name       string
		modID      string
		youtubeURL string
	}{
		{name: "missing mod id", modID: "", youtubeURL: "https://youtu.be/dQw4w9WgXcQ"},
		{name: "missing url", modID: "mod-9", youtubeURL: ""},
		{name: "not a youtube url", modID: "mod-9", youtubeURL: "https://vimeo.com/12345"},
		{name: "channel url", modID: "mod-9", youtubeURL: "https://www.youtube.com/@somechannel"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := newService()
			_, err := service.Submit(context.Background(), alice, testCase.modID, testCase.youtubeURL)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestSubmit_EnforcesDailyQuota verifies the fourth submission of the day is
rejected with RATE_LIMITED while another user is unaffected.
*/
func TestSubmit_EnforcesDailyQuota(t *testing.T) {
	service := newService()

	for i := 0; i < 3; i++ {
		_, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[i])
		require.NoError(t, err)
	}

	_, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[3])
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeRateLimited))

	// The quota is per user.
	_, err = service.Submit(context.Background(), bob, "mod-9", watchURLs[3])
	assert.NoError(t, err)
}

/*
TestSubmit_RejectsDuplicatePerMod verifies the same video cannot be submitted
twice for one mod but is fine on another mod page.
*/
func TestSubmit_RejectsDuplicatePerMod(t *testing.T) {
	service := newService()

	_, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[0])
	require.NoError(t, err)

	_, err = service.Submit(context.Background(), bob, "mod-9", watchURLs[0])
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.Submit(context.Background(), bob, "mod-10", watchURLs[0])
	assert.NoError(t, err)
}

// # Reporting

/*
TestReport_CountsOncePerUser verifies repeat reports by the same user return
CONFLICT without inflating the count.
*/
func TestReport_CountsOncePerUser(t *testing.T) {
	service := newService()
	created, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[0])
	require.NoError(t, err)

	count, err := service.Report(context.Background(), bob, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = service.Report(context.Background(), bob, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, 1, count)

	// A different user still counts.
	count, err = service.Report(context.Background(), morgan, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

/*
TestReport_UnknownVideoIsNotFound verifies reporting a missing video.
*/
func TestReport_UnknownVideoIsNotFound(t *testing.T) {
	service := newService()

	_, err := service.Report(context.Background(), bob, "ghost")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

// # Deletion

/*
TestDelete_Permissions verifies submitters and moderators can delete, other
users get FORBIDDEN.
*/
func TestDelete_Permissions(t *testing.T) {
	testCases := []struct {
		name         string
		caller       *sec.SessionClaims
		expectedCode string
	}{
		{name: "stranger is forbidden", caller: bob, expectedCode: apperr.CodeForbidden},
		{name: "submitter may delete", caller: alice},
		{name: "moderator may delete", caller: morgan},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := newService()
			created, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[0])
			require.NoError(t, err)

			err = service.Delete(context.Background(), testCase.caller, created.ID)

			if testCase.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, testCase.expectedCode))
				return
			}
			require.NoError(t, err)

			source, err := service.GallerySource(context.Background(), nil, "mod-9")
			require.NoError(t, err)
			assert.Empty(t, source)
		})
	}
}

// # Featuring

/*
TestFeature_ModeratorOnlyAndExclusive verifies only moderators can feature
and that featuring is exclusive within a mod.
*/
func TestFeature_ModeratorOnlyAndExclusive(t *testing.T) {
	service := newService()
	first, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[0])
	require.NoError(t, err)
	second, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[1])
	require.NoError(t, err)

	err = service.Feature(context.Background(), alice, first.ID)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	require.NoError(t, service.Feature(context.Background(), morgan, first.ID))
	require.NoError(t, service.Feature(context.Background(), morgan, second.ID))

	source, err := service.GallerySource(context.Background(), nil, "mod-9")
	require.NoError(t, err)
	require.Len(t, source, 2)

	featured := 0
	for _, item := range source {
		if item.Featured {
			featured++
			assert.Equal(t, second.ID, item.ID)
		}
	}
	assert.Equal(t, 1, featured)
}

/*
TestUnfeature_ClearsTheFlag verifies demotion, moderator-only.
*/
func TestUnfeature_ClearsTheFlag(t *testing.T) {
	service := newService()
	created, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[0])
	require.NoError(t, err)
	require.NoError(t, service.Feature(context.Background(), morgan, created.ID))

	err = service.Unfeature(context.Background(), alice, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	require.NoError(t, service.Unfeature(context.Background(), morgan, created.ID))

	source, err := service.GallerySource(context.Background(), nil, "mod-9")
	require.NoError(t, err)
	require.Len(t, source, 1)
	assert.False(t, source[0].Featured)
}

// # Gallery Projection

/*
TestGallerySource_CapabilityFlags verifies the per-session capability flags:
anonymous, submitter, unrelated user, moderator.
*/
func TestGallerySource_CapabilityFlags(t *testing.T) {
	service := newService()
	created, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[0])
	require.NoError(t, err)
	_, err = service.Report(context.Background(), bob, created.ID)
	require.NoError(t, err)

	testCases := []struct {
		name       string
		claims     *sec.SessionClaims
		canManage  bool
		canFeature bool
		isOwn      bool
		reported   bool
	}{
		{name: "anonymous"},
		{name: "submitter", claims: alice, canManage: true, isOwn: true},
		{name: "unrelated reporter", claims: bob, reported: true},
		{name: "moderator", claims: morgan, canManage: true, canFeature: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			source, err := service.GallerySource(context.Background(), testCase.claims, "mod-9")
			require.NoError(t, err)
			require.Len(t, source, 1)

			item := source[0]
			assert.Equal(t, "video", item.Kind)
			assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", item.SourceURL)
			assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/mqdefault.jpg", item.ThumbSmallURL)
			assert.Equal(t, "alice", item.Author)
			assert.Equal(t, 1, item.ReportCount)

			assert.Equal(t, testCase.canManage, item.CanManage)
			assert.Equal(t, testCase.canFeature, item.CanFeature)
			assert.Equal(t, testCase.isOwn, item.IsOwn)
			assert.Equal(t, testCase.reported, item.Reported)
		})
	}
}

// # Domain Events

// eventRecorder collects slog event names emitted by the service.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (recorder *eventRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (recorder *eventRecorder) Handle(_ context.Context, record slog.Record) error {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.events = append(recorder.events, record.Message)
	return nil
}

func (recorder *eventRecorder) WithAttrs([]slog.Attr) slog.Handler { return recorder }
func (recorder *eventRecorder) WithGroup(string) slog.Handler      { return recorder }

/*
TestService_EmitsDomainEvents verifies every successful mutation logs its
domain event, and that a rejected mutation stays silent.
*/
func TestService_EmitsDomainEvents(t *testing.T) {
	recorder := &eventRecorder{}
	service := video.NewService(video.NewMemoryStore(), 3, slog.New(recorder))

	created, err := service.Submit(context.Background(), alice, "mod-9", watchURLs[0])
	require.NoError(t, err)
	_, err = service.Report(context.Background(), bob, created.ID)
	require.NoError(t, err)
	require.NoError(t, service.Feature(context.Background(), morgan, created.ID))
	require.NoError(t, service.Unfeature(context.Background(), morgan, created.ID))
	require.NoError(t, service.Delete(context.Background(), morgan, created.ID))

	// A rejected mutation emits nothing.
	err = service.Feature(context.Background(), alice, created.ID)
	require.Error(t, err)

	assert.Equal(t, []string{
		"video_submitted",
		"video_reported",
		"video_featured",
		"video_unfeatured",
		"video_deleted",
	}, recorder.events)
}
