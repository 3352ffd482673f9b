// Copyright (c) 2026 Modhaven. All rights reserved.

package account

import (
	"context"
	"sync"
	"time"

	"github.com/modhaven/modhaven/internal/platform/apperr"
	"github.com/modhaven/modhaven/internal/platform/sec"
	"github.com/modhaven/modhaven/pkg/uuid"
)

// # Contracts

// UserStore resolves dev server accounts.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, userID string) (*User, error)
}

// SessionStore tracks live sessions by token hash so logout can revoke them.
type SessionStore interface {
	Save(ctx context.Context, tokenHash, userID string, timeToLive time.Duration) error
	Exists(ctx context.Context, tokenHash string) (bool, error)
	Delete(ctx context.Context, tokenHash string) error
}

// # In-Memory User Store

// MemoryUserStore holds the seeded accounts. Read-only after construction.
type MemoryUserStore struct {
	byUsername map[string]*User
	byID       map[string]*User
}

// SeedUser describes one account to seed.
type SeedUser struct {
	Username    string
	Password    string
	IsModerator bool
}

// DefaultSeedUsers are the accounts every dev server starts with.
func DefaultSeedUsers() []SeedUser {
	return []SeedUser{
		{Username: "alice", Password: "alice-dev-pass"},
		{Username: "bob", Password: "bob-dev-pass"},
		{Username: "morgan", Password: "morgan-dev-pass", IsModerator: true},
	}
}

// NewMemoryUserStore seeds a user store. Password hashing happens here, once,
// at startup.
func NewMemoryUserStore(seeds []SeedUser) (*MemoryUserStore, error) {
	store := &MemoryUserStore{
		byUsername: make(map[string]*User, len(seeds)),
		byID:       make(map[string]*User, len(seeds)),
	}

	for _, seed := range seeds {
		hash, err := sec.HashPassword(seed.Password)
		if err != nil {
			return nil, err
		}
		user := &User{
			ID:           uuid.New(),
			Username:     seed.Username,
			PasswordHash: hash,
			IsModerator:  seed.IsModerator,
		}
		store.byUsername[user.Username] = user
		store.byID[user.ID] = user
	}

	return store, nil
}

// FindByUsername resolves a user by username.
func (store *MemoryUserStore) FindByUsername(_ context.Context, username string) (*User, error) {
	if user, ok := store.byUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

// FindByID resolves a user by ID.
func (store *MemoryUserStore) FindByID(_ context.Context, userID string) (*User, error) {
	if user, ok := store.byID[userID]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

// # In-Memory Session Store

type memorySession struct {
	userID    string
	expiresAt time.Time
}

// MemorySessionStore is the default session store when Redis is not configured.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

// NewMemorySessionStore creates an empty session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memorySession)}
}

// Save records a session until its TTL elapses.
func (store *MemorySessionStore) Save(_ context.Context, tokenHash, userID string, timeToLive time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.purgeExpiredLocked()
	store.sessions[tokenHash] = memorySession{
		userID:    userID,
		expiresAt: time.Now().Add(timeToLive),
	}
	return nil
}

// Exists reports whether the session is live.
func (store *MemorySessionStore) Exists(_ context.Context, tokenHash string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	session, found := store.sessions[tokenHash]
	if !found {
		return false, nil
	}
	if time.Now().After(session.expiresAt) {
		delete(store.sessions, tokenHash)
		return false, nil
	}
	return true, nil
}

// Delete revokes a session. Idempotent.
func (store *MemorySessionStore) Delete(_ context.Context, tokenHash string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sessions, tokenHash)
	return nil
}

// purgeExpiredLocked drops expired entries; piggybacked on Save instead of a
// background goroutine, the map stays small for a dev server.
func (store *MemorySessionStore) purgeExpiredLocked() {
	now := time.Now()
	for hash, session := range store.sessions {
		if now.After(session.expiresAt) {
			delete(store.sessions, hash)
		}
	}
}
