// Copyright (c) 2026 Modhaven. All rights reserved.

package video

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modhaven/modhaven/internal/platform/middleware"
	requestutil "github.com/modhaven/modhaven/internal/platform/request"
	"github.com/modhaven/modhaven/internal/platform/respond"
	"github.com/modhaven/modhaven/internal/platform/validate"
)

// Handler implements the video moderation HTTP endpoints.
type Handler struct {
	videoService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{videoService: service}
}

// Routes returns a [chi.Router] with the video endpoints.
//
// # Endpoints
//   - GET    /mod/{modID}          : Raw gallery payload for a mod page.
//   - POST   /submit               : Submits a video.
//   - POST   /{videoID}/report     : Reports a video.
//   - DELETE /{videoID}            : Deletes a video.
//   - POST   /{videoID}/feature    : Features a video.
//   - DELETE /{videoID}/feature    : Unfeatures a video.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public: gallery payload with capabilities computed for the session.
	router.Get("/mod/{modID}", handler.listByMod)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/submit", handler.submit)
		r.Post("/{videoID}/report", handler.report)
		r.Delete("/{videoID}", handler.remove)
		r.Post("/{videoID}/feature", handler.feature)
		r.Delete("/{videoID}/feature", handler.unfeature)
	})

	return router
}

type submitRequest struct {
	ModID      string `json:"mod_id"`
	YouTubeURL string `json:"youtube_url"`
}

/*
Submit accepts a new community video.

POST /api/v1/videos/submit

Response:
  - 200: {message}
  - 400: Invalid YouTube URL
  - 409: Duplicate submission for this mod
  - 429: Daily submission limit reached
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if _, err := handler.videoService.Submit(request.Context(), claims, input.ModID, input.YouTubeURL); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Thanks! Your video has been added to the gallery.")
}

/*
Report flags a video for moderator review.

POST /api/v1/videos/{videoID}/report

Response:
  - 200: {message, report_count}
  - 404: Unknown video
  - 409: Already reported by this user
*/
func (handler *Handler) report(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.videoService.Report(request.Context(), claims, requestutil.Param(request, "videoID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.ReportBody{
		Message:     "Thanks for letting us know. The moderation team will take a look.",
		ReportCount: count,
	})
}

/*
Remove deletes a video.

DELETE /api/v1/videos/{videoID}

Response:
  - 200: {message}
  - 403: Not the submitter and not a moderator
  - 404: Unknown video
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.videoService.Delete(request.Context(), claims, requestutil.Param(request, "videoID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "The video has been removed from the gallery.")
}

/*
Feature promotes a video to the mod's hero slot.

POST /api/v1/videos/{videoID}/feature

Response:
  - 200: {message}
  - 403: No feature capability
  - 404: Unknown video
*/
func (handler *Handler) feature(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.videoService.Feature(request.Context(), claims, requestutil.Param(request, "videoID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "The video is now featured on this mod page.")
}

/*
Unfeature restores the default hero image.

DELETE /api/v1/videos/{videoID}/feature

Response:
  - 200: {message}
  - 403: No feature capability
  - 404: Unknown video
*/
func (handler *Handler) unfeature(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.videoService.Unfeature(request.Context(), claims, requestutil.Param(request, "videoID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "The default image is back on this mod page.")
}

/*
ListByMod returns the raw gallery payload for a mod page.

GET /api/v1/videos/mod/{modID}

Anonymous requests get viewer-only capability flags; signed-in requests get
their per-item capabilities computed server-side.
*/
func (handler *Handler) listByMod(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Session(request)

	source, err := handler.videoService.GallerySource(request.Context(), claims, requestutil.Param(request, "modID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"items": source})
}
