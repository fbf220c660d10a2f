package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefix for revoked students
	revokedStudentKeyPrefix = "trl:student:"
)

// RedisList is a Redis-backed revocation list. This is the recommended
// implementation for distributed deployments where multiple instances need
// to share revocation state.
type RedisList struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed revocation list.
func NewRedis(client *redis.Client) *RedisList {
	return &RedisList{client: client}
}

// Revoke marks every token of the student as revoked for the given TTL.
// Uses SET with expiry so entries clean themselves up.
func (l *RedisList) Revoke(ctx context.Context, studentID string, ttl time.Duration) error {
	if studentID == "" {
		return nil
	}
	key := revokedStudentKeyPrefix + studentID
	// Store "1" as a simple marker; the key existence is what matters
	return l.client.Set(ctx, key, "1", ttl).Err()
}

// IsRevoked checks if the student's tokens are revoked.
// Returns false if the key doesn't exist (not revoked or expired).
func (l *RedisList) IsRevoked(ctx context.Context, studentID string) (bool, error) {
	if studentID == "" {
		return false, nil
	}
	key := revokedStudentKeyPrefix + studentID
	_, err := l.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
