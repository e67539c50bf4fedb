// Package sessionstore keeps the live token of every session in Redis. Keys
// are "<user-id>:<session-id>", values are the raw token string, and every
// entry expires together with its token, so a crashed login self-heals by
// TTL.
package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func sessionKey(userID, sessionID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", userID, sessionID)
}

// Put stores the token under the session key with the given TTL. Overwriting
// an existing entry is allowed; there is at most one live token per session.
func (s *Store) Put(ctx context.Context, userID, sessionID uuid.UUID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(userID, sessionID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get returns the stored token for the session. The second return value is
// false when the entry is absent; expiry and revocation are indistinguishable
// here on purpose.
func (s *Store) Get(ctx context.Context, userID, sessionID uuid.UUID) (string, bool, error) {
	token, err := s.client.Get(ctx, sessionKey(userID, sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	return token, true, nil
}

// Delete revokes a single session. Deleting an absent session is a no-op.
func (s *Store) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(userID, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RevokeAll deletes every session of the user by scanning "<user-id>:*".
// The scan and the deletes are not atomic: a session stored while the sweep
// runs can survive it and dies by TTL instead.
func (s *Store) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("%s:*", userID)

	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete session key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}
	return nil
}
