// Copyright (c) 2026 Modhaven. All rights reserved.

package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modhaven/modhaven/internal/platform/apperr"
	"github.com/modhaven/modhaven/internal/platform/constants"
	"github.com/modhaven/modhaven/internal/platform/sec"
	"github.com/modhaven/modhaven/internal/site/account"
)

func newService(t *testing.T) *account.Service {
	t.Helper()

	tokens, err := sec.NewTokenService("modhaven-dev-secret-key", constants.AuthIssuer)
	require.NoError(t, err)

	users, err := account.NewMemoryUserStore(account.DefaultSeedUsers())
	require.NoError(t, err)

	return account.NewService(users, account.NewMemorySessionStore(), tokens)
}

/*
TestLogin_IssuesVerifiableToken verifies a successful login yields a token
the service itself accepts, with the user's capability claims embedded.
*/
func TestLogin_IssuesVerifiableToken(t *testing.T) {
	service := newService(t)

	result, err := service.Login(context.Background(), "morgan", "morgan-dev-pass")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "morgan", result.User.Username)
	assert.True(t, result.User.IsModerator)

	claims, err := service.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "morgan", claims.Username)
	assert.True(t, claims.IsModerator)
}

/*
TestLogin_GenericFailureMessage verifies bad password and unknown user share
one message, so the endpoint cannot be used for account enumeration.
*/
func TestLogin_GenericFailureMessage(t *testing.T) {
	service := newService(t)

	_, badPassword := service.Login(context.Background(), "alice", "wrong")
	require.Error(t, badPassword)
	assert.True(t, apperr.HasCode(badPassword, apperr.CodeUnauthenticated))

	_, unknownUser := service.Login(context.Background(), "nobody", "wrong")
	require.Error(t, unknownUser)

	assert.Equal(t, badPassword.Error(), unknownUser.Error())
}

/*
TestLogout_RevokesToken verifies a logged-out token fails verification even
though its signature and expiry are still valid.
*/
func TestLogout_RevokesToken(t *testing.T) {
	service := newService(t)

	result, err := service.Login(context.Background(), "alice", "alice-dev-pass")
	require.NoError(t, err)

	_, err = service.VerifyToken(result.Token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), result.Token))

	_, err = service.VerifyToken(result.Token)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))

	// Idempotent: logging out again is still a successful logout.
	assert.NoError(t, service.Logout(context.Background(), result.Token))
}

/*
TestVerifyToken_RejectsForgery verifies tokens signed with a different secret
are rejected.
*/
func TestVerifyToken_RejectsForgery(t *testing.T) {
	service := newService(t)

	foreign, err := sec.NewTokenService("some-other-secret-key", constants.AuthIssuer)
	require.NoError(t, err)
	forged, err := foreign.IssueSessionToken("user-x", "mallory", true, constants.SessionTokenTTL)
	require.NoError(t, err)

	_, err = service.VerifyToken(forged)
	assert.Error(t, err)
}
