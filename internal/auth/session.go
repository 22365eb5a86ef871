// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cryptopay-app/api/internal/core"
	"github.com/cryptopay-app/api/internal/middleware"
)

const sessionKeyPrefix = "session:"

// SessionManager issues opaque random tokens and keeps the identity
// snapshot in Redis under a TTL. Logout and expiry are both just key
// deletion, so no token survives either.
type SessionManager struct {
	client *redis.Client
	ttl    time.Duration
}

var _ middleware.SessionVerifier = (*SessionManager)(nil)

func NewSessionManager(client *redis.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{client: client, ttl: ttl}
}

func (m *SessionManager) Create(
	ctx context.Context,
	identity *middleware.Identity,
) (string, error) {
	token, err := core.GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("marshal session identity: %w", err)
	}

	err = m.client.Set(ctx, sessionKey(token), payload, m.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func (m *SessionManager) Verify(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	payload, err := m.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session: %w", core.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var identity middleware.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("decode session identity: %w", err)
	}

	return &identity, nil
}

func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if err := m.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
