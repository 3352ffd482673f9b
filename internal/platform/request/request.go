// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modhaven/modhaven/internal/platform/apperr"
	"github.com/modhaven/modhaven/internal/platform/ctxutil"
	"github.com/modhaven/modhaven/internal/platform/sec"
	"github.com/modhaven/modhaven/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns validate.ErrInvalidJSON if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Session extracts the authenticated session claims from the request context.
// Returns nil if the request is anonymous.
func Session(request *http.Request) *sec.SessionClaims {
	return ctxutil.GetSession(request.Context())
}

// RequiredSession ensures the request is authenticated and returns the claims.
// Returns apperr.Unauthenticated otherwise.
func RequiredSession(request *http.Request) (*sec.SessionClaims, error) {
	claims := ctxutil.GetSession(request.Context())
	if claims == nil {
		return nil, apperr.Unauthenticated("Authentication required")
	}
	return claims, nil
}
