// Copyright (c) 2026 Modhaven. All rights reserved.

package siteclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modhaven/modhaven/internal/engine/siteclient"
	"github.com/modhaven/modhaven/internal/platform/apperr"
)

// capture records what the stub server saw.
type capture struct {
	method string
	path   string
	auth   string
	body   map[string]string
}

// newStub spins up a one-endpoint server replying with the given status and
// raw body, recording the request for assertions.
func newStub(t *testing.T, status int, body string) (*siteclient.Client, *capture) {
	t.Helper()

	seen := &capture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.method = r.Method
		seen.path = r.URL.Path
		seen.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&seen.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return siteclient.New(server.URL, nil), seen
}

/*
TestClient_SubmitSendsTokenAndPayload verifies the request shape: bearer
token, JSON body, endpoint path.
*/
func TestClient_SubmitSendsTokenAndPayload(t *testing.T) {
	client, seen := newStub(t, http.StatusOK, `{"message":"Thanks! Your video has been added to the gallery."}`)

	outcome, err := client.SubmitVideo(context.Background(), "session-token", "mod-9", "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "/videos/submit", seen.path)
	assert.Equal(t, "Bearer session-token", seen.auth)
	assert.Equal(t, "mod-9", seen.body["mod_id"])
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", seen.body["youtube_url"])

	assert.Equal(t, "Thanks! Your video has been added to the gallery.", outcome.Message)
	assert.Nil(t, outcome.ReportCount)
}

/*
TestClient_ReportParsesReportCount verifies the advisory counter on report
responses.
*/
func TestClient_ReportParsesReportCount(t *testing.T) {
	client, seen := newStub(t, http.StatusOK, `{"message":"Thanks for letting us know.","report_count":3}`)

	outcome, err := client.ReportVideo(context.Background(), "session-token", "vid-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "/videos/vid-1/report", seen.path)

	require.NotNil(t, outcome.ReportCount)
	assert.Equal(t, 3, *outcome.ReportCount)
}

/*
TestClient_EndpointRouting verifies method and path for the remaining
moderation calls.
*/
func TestClient_EndpointRouting(t *testing.T) {
	testCases := []struct {
		name           string
		call           func(*siteclient.Client) error
		expectedMethod string
		expectedPath   string
	}{
		{
			name: "delete video",
			call: func(c *siteclient.Client) error {
				_, err := c.DeleteVideo(context.Background(), "t", "vid-1")
				return err
			},
			expectedMethod: http.MethodDelete,
			expectedPath:   "/videos/vid-1",
		},
		{
			name: "feature video",
			call: func(c *siteclient.Client) error {
				_, err := c.FeatureVideo(context.Background(), "t", "vid-1")
				return err
			},
			expectedMethod: http.MethodPost,
			expectedPath:   "/videos/vid-1/feature",
		},
		{
			name: "unfeature video",
			call: func(c *siteclient.Client) error {
				_, err := c.UnfeatureVideo(context.Background(), "t", "vid-1")
				return err
			},
			expectedMethod: http.MethodDelete,
			expectedPath:   "/videos/vid-1/feature",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			client, seen := newStub(t, http.StatusOK, `{"message":"done"}`)
			require.NoError(t, testCase.call(client))
			assert.Equal(t, testCase.expectedMethod, seen.method)
			assert.Equal(t, testCase.expectedPath, seen.path)
		})
	}
}

/*
TestClient_StatusCodeMapping verifies each failure status becomes its
taxonomy code, keeping the server's message.
*/
func TestClient_StatusCodeMapping(t *testing.T) {
	testCases := []struct {
		name         string
		status       int
		body         string
		expectedCode string
		expectedMsg  string
	}{
		{
			name:         "401 unauthenticated",
			status:       http.StatusUnauthorized,
			body:         `{"error":"Authentication required","code":"UNAUTHENTICATED"}`,
			expectedCode: apperr.CodeUnauthenticated,
			expectedMsg:  "Authentication required",
		},
		{
			name:         "403 forbidden",
			status:       http.StatusForbidden,
			body:         `{"error":"You don't have permission to delete this video.","code":"FORBIDDEN"}`,
			expectedCode: apperr.CodeForbidden,
			expectedMsg:  "You don't have permission to delete this video.",
		},
		{
			name:         "409 conflict",
			status:       http.StatusConflict,
			body:         `{"error":"You've already reported this video.","code":"CONFLICT"}`,
			expectedCode: apperr.CodeConflict,
			expectedMsg:  "You've already reported this video.",
		},
		{
			name:         "429 rate limited",
			status:       http.StatusTooManyRequests,
			body:         `{"error":"You've reached the daily video submission limit. Try again tomorrow.","code":"RATE_LIMITED"}`,
			expectedCode: apperr.CodeRateLimited,
			expectedMsg:  "You've reached the daily video submission limit. Try again tomorrow.",
		},
		{
			name:         "400 validation",
			status:       http.StatusBadRequest,
			body:         `{"error":"Validation failed","code":"VALIDATION_ERROR"}`,
			expectedCode: apperr.CodeValidation,
			expectedMsg:  "Validation failed",
		},
		{
			name:         "500 maps to upstream",
			status:       http.StatusInternalServerError,
			body:         `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`,
			expectedCode: apperr.CodeUpstream,
			expectedMsg:  "An unexpected error occurred",
		},
		{
			name:         "failure without envelope gets fallback wording",
			status:       http.StatusForbidden,
			body:         ``,
			expectedCode: apperr.CodeForbidden,
			expectedMsg:  "You don't have permission to do that.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			client, _ := newStub(t, testCase.status, testCase.body)

			_, err := client.ReportVideo(context.Background(), "t", "vid-1")

			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, testCase.expectedCode))
			assert.Equal(t, testCase.expectedMsg, err.Error())
		})
	}
}

/*
TestClient_MalformedSuccessIsUpstreamError verifies a nominal 2xx without a
usable message payload is treated as a failure.
*/
func TestClient_MalformedSuccessIsUpstreamError(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<!doctype html>`},
		{name: "empty object", body: `{}`},
		{name: "empty body", body: ``},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			client, _ := newStub(t, http.StatusOK, testCase.body)

			_, err := client.ReportVideo(context.Background(), "t", "vid-1")

			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
		})
	}
}

/*
TestClient_TransportFailureIsUpstreamError verifies an unreachable server
maps to the network-failure bucket.
*/
func TestClient_TransportFailureIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := siteclient.New(server.URL, nil)
	server.Close()

	_, err := client.ReportVideo(context.Background(), "t", "vid-1")

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
}

/*
TestClient_AnonymousRequestOmitsAuthHeader verifies an empty token sends no
Authorization header at all.
*/
func TestClient_AnonymousRequestOmitsAuthHeader(t *testing.T) {
	client, seen := newStub(t, http.StatusOK, `{"message":"done"}`)

	_, err := client.ReportVideo(context.Background(), "", "vid-1")
	require.NoError(t, err)

	assert.Empty(t, seen.auth)
}
