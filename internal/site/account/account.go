// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package account implements the dev server's user accounts and session
lifecycle.

The dev server is a stand-in for the production site: it seeds a fixed set of
users, verifies passwords with bcrypt, and issues HS256 session tokens whose
claims carry the moderator flag. Sessions are additionally tracked in a
revocable store (in-memory by default, Redis when configured) so a logout
actually invalidates the token instead of waiting for its expiry.

Architecture:

  - Service: Login/Logout/Verify orchestration.
  - UserStore: Seeded in-memory user records.
  - SessionStore: Revocable session records keyed by token hash.
*/
package account

// User is one dev server account.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`

	// IsModerator grants the manage + feature capabilities on every video.
	IsModerator bool `json:"is_moderator"`
}
