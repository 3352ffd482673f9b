// Copyright (c) 2026 Modhaven. All rights reserved.

package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modhaven/modhaven/internal/engine"
	"github.com/modhaven/modhaven/internal/engine/gallery"
	"github.com/modhaven/modhaven/internal/engine/moderation"
	"github.com/modhaven/modhaven/internal/engine/siteclient"
	"github.com/modhaven/modhaven/internal/platform/clock"
)

// recordingAPI answers every call with a canned success and remembers the
// token it was given.
type recordingAPI struct {
	lastToken string
	calls     int
}

func (a *recordingAPI) answer(token string) (*siteclient.Outcome, error) {
	a.lastToken = token
	a.calls++
	return &siteclient.Outcome{Message: "done"}, nil
}

func (a *recordingAPI) SubmitVideo(_ context.Context, token, _, _ string) (*siteclient.Outcome, error) {
	return a.answer(token)
}

func (a *recordingAPI) ReportVideo(_ context.Context, token, _ string) (*siteclient.Outcome, error) {
	return a.answer(token)
}

func (a *recordingAPI) DeleteVideo(_ context.Context, token, _ string) (*siteclient.Outcome, error) {
	return a.answer(token)
}

func (a *recordingAPI) FeatureVideo(_ context.Context, token, _ string) (*siteclient.Outcome, error) {
	return a.answer(token)
}

func (a *recordingAPI) UnfeatureVideo(_ context.Context, token, _ string) (*siteclient.Outcome, error) {
	return a.answer(token)
}

func pageSource() []gallery.ItemSource {
	return []gallery.ItemSource{
		{ID: "img-1", Kind: "image", SourceURL: "https://cdn.modhaven.app/shots/1.jpg"},
		{ID: "vid-1", Kind: "video", YouTubeID: "dQw4w9WgXcQ", CanManage: true, CanFeature: true},
		{ID: "vid-2", Kind: "video", YouTubeID: "aqz-KE-bpKQ"},
	}
}

/*
TestEngine_AssemblesFromSource verifies New builds every component from one
raw gallery payload.
*/
func TestEngine_AssemblesFromSource(t *testing.T) {
	e, err := engine.New(pageSource(), engine.Options{
		API:            &recordingAPI{},
		Clock:          clock.NewFake(),
		InitialWidthPx: 1280,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, e.State.Current().Len())
	assert.Equal(t, 3, e.Layout.VisibleCount(e.State.Current().Len()))
	assert.Len(t, e.Viewer.Slides(), 3)
	assert.False(t, e.Session().SignedIn)

	_, err = engine.New([]gallery.ItemSource{{ID: "x", Kind: "gif"}}, engine.Options{API: &recordingAPI{}})
	assert.Error(t, err)
}

/*
TestEngine_SessionFlowsIntoRequests verifies SignIn's token reaches the site
API and SignOut reverts actions to the login prompt.
*/
func TestEngine_SessionFlowsIntoRequests(t *testing.T) {
	api := &recordingAPI{}
	loginPrompts := 0
	e, err := engine.New(pageSource(), engine.Options{
		API:   api,
		Clock: clock.NewFake(),
		Events: moderation.Events{
			LoginPrompt: func() { loginPrompts++ },
		},
	})
	require.NoError(t, err)

	// Signed out: the report flow never reaches the network.
	e.Controller.Report("vid-2")
	assert.Equal(t, 1, loginPrompts)
	assert.Equal(t, 0, api.calls)

	e.SignIn("session-token", "user-1")
	e.Controller.Report("vid-2")
	e.Controller.Confirm(context.Background())

	assert.Equal(t, 1, api.calls)
	assert.Equal(t, "session-token", api.lastToken)

	e.SignOut()
	e.Controller.Report("vid-1")
	assert.Equal(t, 2, loginPrompts)
	assert.Equal(t, 1, api.calls)
}

/*
TestEngine_SwapFansOutToProjections verifies a controller-driven model change
re-anchors the viewer automatically.
*/
func TestEngine_SwapFansOutToProjections(t *testing.T) {
	api := &recordingAPI{}
	e, err := engine.New(pageSource(), engine.Options{
		API:   api,
		Clock: clock.NewFake(),
	})
	require.NoError(t, err)
	e.SignIn("session-token", "user-1")

	e.Viewer.Open("vid-1")

	// Deleting the open item swaps a new gallery into the page state; the
	// viewer hears about it through the state's listener and falls back.
	e.Controller.Delete("vid-1")
	e.Controller.Confirm(context.Background())

	_, found := e.State.Current().FindByID("vid-1")
	assert.False(t, found)

	require.True(t, e.Viewer.IsOpen())
	current, ok := e.Viewer.Current()
	require.True(t, ok)
	assert.Equal(t, "img-1", current.Item.ID)
}

/*
TestEngine_InstancesAreIsolated verifies two engines never share state.
*/
func TestEngine_InstancesAreIsolated(t *testing.T) {
	first, err := engine.New(pageSource(), engine.Options{API: &recordingAPI{}, Clock: clock.NewFake()})
	require.NoError(t, err)
	second, err := engine.New(pageSource(), engine.Options{API: &recordingAPI{}, Clock: clock.NewFake()})
	require.NoError(t, err)

	first.SignIn("token-1", "user-1")
	first.Toasts.Info("only here")

	assert.False(t, second.Session().SignedIn)
	assert.Equal(t, 0, second.Toasts.Pending())
	assert.Equal(t, 1, first.Toasts.Pending())
}
