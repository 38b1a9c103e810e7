package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tendant/simple-mall/pkg/sysuser"
)

// Default expiry policy: the login grant is valid for InitialTTL at most; once
// the user starts making authenticated requests, the auth middleware keeps the
// session alive with a SlidingTTL idle window instead.
const (
	DefaultInitialTTL = 7 * 24 * time.Hour
	DefaultSlidingTTL = 30 * time.Minute
)

// loginKeyPrefix namespaces session keys away from other cache usage
// (one-time codes live under their own namespace).
const loginKeyPrefix = "user:login:"

// Store persists login sessions in Redis, keyed by opaque token
type Store struct {
	client redis.UniversalClient
}

// NewStore creates a session store over an injected Redis client. The caller
// owns the client's lifecycle.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{
		client: client,
	}
}

func sessionKey(token string) string {
	return loginKeyPrefix + token
}

// Create writes the identity under the token's key with the given TTL.
// Tokens are unique, but overwriting is safe (last write wins).
func (s *Store) Create(ctx context.Context, token string, user *sysuser.SysUser, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize session identity: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Get resolves a token to its stored identity. A missing or expired key is
// not an error: it returns (nil, false, nil) meaning "no active session".
func (s *Store) Get(ctx context.Context, token string) (*sysuser.SysUser, bool, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read session: %w", err)
	}

	var user sysuser.SysUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false, fmt.Errorf("failed to deserialize session identity: %w", err)
	}
	return &user, true, nil
}

// Renew resets the remaining TTL without touching the stored value. EXPIRE XX
// only applies to keys that still carry an expiry, so a session that lapsed
// between Get and Renew stays dead: the renewal is silently skipped.
func (s *Store) Renew(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.ExpireXX(ctx, sessionKey(token), ttl).Err(); err != nil {
		return fmt.Errorf("failed to renew session: %w", err)
	}
	return nil
}

// Delete invalidates a session (logout). Deleting an absent key is fine.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
