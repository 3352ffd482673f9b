// Copyright (c) 2026 Modhaven. All rights reserved.

package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/modhaven/modhaven/internal/platform/middleware"
	requestutil "github.com/modhaven/modhaven/internal/platform/request"
	"github.com/modhaven/modhaven/internal/platform/respond"
	"github.com/modhaven/modhaven/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST /login  : Authenticates and returns a session token.
//   - POST /logout : Revokes the current session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Login authenticates a dev server user.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: token, user profile
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username).
		Required("password", input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.accountService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"token": result.Token,
		"user":  result.User,
	})
}

/*
Logout revokes the current session token.

POST /api/v1/auth/logout

Response:
  - 204: Session revoked
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	authHeader := request.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 {
		_ = handler.accountService.Logout(request.Context(), parts[1])
	}

	respond.NoContent(writer)
}
