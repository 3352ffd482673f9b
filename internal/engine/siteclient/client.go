// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package siteclient is the interaction engine's REST client for the Modhaven
site API.

It owns the wire contract: request shapes, the session token header, and the
mapping from HTTP responses back to the [apperr] taxonomy the moderation
controller dispatches on. Nothing above this package looks at status codes.

Response mapping:

  - transport failure            -> UPSTREAM_ERROR
  - 2xx with no/malformed body   -> UPSTREAM_ERROR (a nominal success without
    a message payload is treated as a failure)
  - 401                          -> UNAUTHENTICATED
  - 403                          -> FORBIDDEN
  - 409                          -> CONFLICT
  - 429                          -> RATE_LIMITED
  - 400                          -> VALIDATION_ERROR
  - anything else                -> UPSTREAM_ERROR
*/
package siteclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/modhaven/modhaven/internal/platform/apperr"
)

// requestTimeout bounds every moderation call; the UI control stays disabled
// for at most this long.
const requestTimeout = 10 * time.Second

// Outcome is the consumed portion of a successful moderation response.
type Outcome struct {
	// Message is the server-supplied user-facing text.
	Message string `json:"message"`

	// ReportCount is the advisory counter, present on report responses only.
	ReportCount *int `json:"report_count"`
}

// errorEnvelope mirrors the site API error body.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Client talks to the site's video endpoints.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

// New creates a Client against the given base URL (including the API prefix,
// e.g. "http://localhost:8080/api/v1").
func New(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, log: logger}
}

// # Video Endpoints

// submitRequest carries only the fields the submit endpoint needs.
type submitRequest struct {
	ModID      string `json:"mod_id"`
	YouTubeURL string `json:"youtube_url"`
}

// SubmitVideo submits a YouTube URL for a mod page.
func (client *Client) SubmitVideo(ctx context.Context, token, modID, youtubeURL string) (*Outcome, error) {
	return client.call(ctx, token, http.MethodPost, "/videos/submit", submitRequest{
		ModID:      modID,
		YouTubeURL: youtubeURL,
	})
}

// ReportVideo reports a video on behalf of the session user.
func (client *Client) ReportVideo(ctx context.Context, token, videoID string) (*Outcome, error) {
	return client.call(ctx, token, http.MethodPost, fmt.Sprintf("/videos/%s/report", videoID), nil)
}

// DeleteVideo removes a video from its gallery.
func (client *Client) DeleteVideo(ctx context.Context, token, videoID string) (*Outcome, error) {
	return client.call(ctx, token, http.MethodDelete, fmt.Sprintf("/videos/%s", videoID), nil)
}

// FeatureVideo promotes a video to the gallery hero slot.
func (client *Client) FeatureVideo(ctx context.Context, token, videoID string) (*Outcome, error) {
	return client.call(ctx, token, http.MethodPost, fmt.Sprintf("/videos/%s/feature", videoID), nil)
}

// UnfeatureVideo demotes the featured video.
func (client *Client) UnfeatureVideo(ctx context.Context, token, videoID string) (*Outcome, error) {
	return client.call(ctx, token, http.MethodDelete, fmt.Sprintf("/videos/%s/feature", videoID), nil)
}

// # Transport & Mapping

// call performs one request and funnels every possible outcome through the
// response mapping.
func (client *Client) call(ctx context.Context, token, method, path string, body interface{}) (*Outcome, error) {
	request := client.http.R().SetContext(ctx)
	if token != "" {
		request.SetAuthToken(token)
	}
	if body != nil {
		request.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	response, err := request.Execute(method, path)
	if err != nil {
		client.log.Warn("site_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return nil, apperr.Upstream("Could not reach the server. Please try again.", err)
	}

	if response.IsSuccess() {
		outcome := &Outcome{}
		if jsonErr := json.Unmarshal(response.Body(), outcome); jsonErr != nil || outcome.Message == "" {
			return nil, apperr.Upstream("The server returned an unexpected response.", jsonErr)
		}
		return outcome, nil
	}

	return nil, client.mapFailure(response)
}

// mapFailure converts a non-2xx response into the matching AppError, keeping
// the server-supplied message when one is present.
func (client *Client) mapFailure(response *resty.Response) error {
	envelope := errorEnvelope{}
	_ = json.Unmarshal(response.Body(), &envelope)

	message := envelope.Error

	switch response.StatusCode() {
	case http.StatusUnauthorized:
		return apperr.Unauthenticated(fallback(message, "Please sign in to continue."))
	case http.StatusForbidden:
		return apperr.Forbidden(fallback(message, "You don't have permission to do that."))
	case http.StatusConflict:
		return apperr.Conflict(fallback(message, "This was already done."))
	case http.StatusTooManyRequests:
		return apperr.RateLimited(fallback(message, "You've reached today's limit. Try again tomorrow."))
	case http.StatusBadRequest:
		return apperr.ValidationError(fallback(message, "The request was invalid."))
	default:
		return apperr.Upstream(fallback(message, "Something went wrong. Please try again."), nil)
	}
}

func fallback(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
