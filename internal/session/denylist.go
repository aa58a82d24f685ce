package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DenylistPrefix is the key prefix for revoked access tokens.
	DenylistPrefix = "session:revoked:"
)

// Denylist records revoked access tokens until their natural expiry.
// Logging out denylists the live access token; the auth middleware rejects
// any token found here. Entries carry a TTL equal to the token's remaining
// lifetime, so the set never grows beyond the set of still-valid tokens.
type Denylist interface {
	// Revoke marks a token ID as revoked for the given remaining lifetime.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether a token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist implements Denylist on Redis.
type RedisDenylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist backed by Redis.
func NewDenylist(client *redis.Client) Denylist {
	return &RedisDenylist{client: client}
}

func denylistKey(tokenID string) string {
	return DenylistPrefix + tokenID
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to record.
		return nil
	}
	if err := d.client.Set(ctx, denylistKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
