// Copyright (c) 2026 Modhaven. All rights reserved.

// Package respond provides HTTP response helpers used by all dev server handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. Success
// bodies are flat JSON objects (the site API contract promises `{message, ...}`
// directly, no envelope); errors always use the same error envelope so the
// interaction engine can map them back to error kinds.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/modhaven/modhaven/internal/platform/apperr"
	"github.com/modhaven/modhaven/internal/platform/ctxutil"
)

// MessageBody is the minimal success payload every moderation endpoint returns.
type MessageBody struct {
	Message string `json:"message"`
}

// ReportBody extends MessageBody with the advisory report counter.
type ReportBody struct {
	Message     string `json:"message"`
	ReportCount int    `json:"report_count"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the payload as-is.
func OK(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusOK, payload)
}

// Message writes a 200 OK response with a bare `{message}` body.
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, MessageBody{Message: message})
}

// Created writes a 201 Created response with the payload as-is.
func Created(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusCreated, payload)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the
		// client for security.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
