// Copyright (c) 2026 Modhaven. All rights reserved.

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/modhaven/modhaven/internal/platform/apperr"
	"github.com/modhaven/modhaven/internal/platform/constants"
	"github.com/modhaven/modhaven/internal/platform/sec"
)

// TokenIssuer signs session tokens. Satisfied by [sec.TokenService].
type TokenIssuer interface {
	IssueSessionToken(userID, username string, isModerator bool, timeToLive time.Duration) (string, error)
	VerifyToken(tokenString string) (*sec.SessionClaims, error)
}

// Service implements the dev server's authentication use cases.
type Service struct {
	users    UserStore
	sessions SessionStore
	tokens   TokenIssuer
}

// NewService constructs a [Service] with its dependencies.
func NewService(users UserStore, sessions SessionStore, tokens TokenIssuer) *Service {
	return &Service{users: users, sessions: sessions, tokens: tokens}
}

// LoginResult carries the issued token and its user.
type LoginResult struct {
	Token string
	User  *User
}

/*
Login verifies credentials and establishes a session.

Description: Performs a constant-time password comparison, issues an HS256
session token, and records the session for later revocation.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *LoginResult: Token and user profile
  - err: Unauthenticated on bad credentials, storage failures otherwise
*/
func (service *Service) Login(context context.Context, username, password string) (*LoginResult, error) {
	user, err := service.users.FindByUsername(context, username)

	// Generic message on both lookup and password failure to prevent
	// account enumeration.
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid login credentials")
	}
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthenticated("Invalid login credentials")
	}

	token, err := service.tokens.IssueSessionToken(user.ID, user.Username, user.IsModerator, constants.SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("account_service_token_issue_failed: %w", err)
	}

	if err := service.sessions.Save(context, sec.HashToken(token), user.ID, constants.SessionTokenTTL); err != nil {
		return nil, fmt.Errorf("account_service_session_save_failed: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

/*
Logout revokes the session behind the given token.

Description: Idempotent; an unknown or already-revoked token is a successful
logout.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, token string) error {
	if err := service.sessions.Delete(context, sec.HashToken(token)); err != nil {
		return fmt.Errorf("account_service_logout_failed: %w", err)
	}
	return nil
}

// VerifyToken checks the token signature and that the session has not been
// revoked. Implements the middleware's TokenVerifier, so a logged-out token
// is rejected even before its JWT expiry.
func (service *Service) VerifyToken(tokenString string) (*sec.SessionClaims, error) {
	claims, err := service.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	live, err := service.sessions.Exists(context.Background(), sec.HashToken(tokenString))
	if err != nil {
		return nil, fmt.Errorf("account_service_session_lookup_failed: %w", err)
	}
	if !live {
		return nil, apperr.Unauthenticated("Session has been revoked")
	}

	return claims, nil
}
