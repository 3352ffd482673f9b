// Copyright (c) 2026 Modhaven. All rights reserved.

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from the
// domain logic. It is injected into the transport layer via the small
// TokenVerifier/TokenIssuer interfaces defined where they are consumed.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded inside a session token.
//
// Capability flags ride inside the token so the dev server can authorize
// moderation requests without a user lookup on every call. The real site
// computes the same flags server-side per §6 of its API contract; the engine
// never infers them.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom claims are abbreviated to keep the token payload small.
	UserID      string `json:"uid"`
	Username    string `json:"unm"`
	IsModerator bool   `json:"mod"`
}

// TokenService generates and verifies HS256-signed session tokens.
//
// The dev server uses a shared secret rather than an RSA key pair — it only
// ever talks to itself, so asymmetric signing would buy nothing here.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("sec: session secret must be at least 16 bytes")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// IssueSessionToken creates a new signed session token for a user.
func (service *TokenService) IssueSessionToken(userID, username string, isModerator bool, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:      userID,
		Username:    username,
		IsModerator: isModerator,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a session token string.
func (service *TokenService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
