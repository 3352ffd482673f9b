// Copyright (c) 2026 Modhaven. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/modhaven/modhaven/internal/platform/constants"
)

// RedisSessionStore implements SessionStore on Redis, for dev servers that
// need sessions to survive a restart.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed SessionStore.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

/*
Save stores a session record under the token hash with the given TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - timeToLive: time.Duration

Returns:
  - error: Storage failures
*/
func (store *RedisSessionStore) Save(context context.Context, tokenHash, userID string, timeToLive time.Duration) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := store.client.Set(context, key, userID, timeToLive).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}
	return nil
}

/*
Exists reports whether the session is live. Redis expiry handles the TTL, so
an absent key simply means the session is gone.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - bool: Session liveness
  - error: Connectivity failures
*/
func (store *RedisSessionStore) Exists(context context.Context, tokenHash string) (bool, error) {
	key := constants.RedisPrefixSession + tokenHash

	if err := store.client.Get(context, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_session_exists_failed: %w", err)
	}
	return true, nil
}

/*
Delete revokes a session. Idempotent.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
