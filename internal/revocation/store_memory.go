// Package revocation tracks students whose tokens are no longer acceptable.
// Deleting a profile revokes every outstanding token for that student; entries
// only need to live as long as the longest token lifetime.
package revocation

import (
	"context"
	"sync"
	"time"
)

// InMemoryList stores revocations in memory for tests/dev.
type InMemoryList struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemory constructs an empty in-memory revocation list.
func NewMemory() *InMemoryList {
	return &InMemoryList{revoked: make(map[string]time.Time)}
}

// Revoke marks every token of the student as revoked for the given TTL.
func (l *InMemoryList) Revoke(_ context.Context, studentID string, ttl time.Duration) error {
	if studentID == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[studentID] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the student's tokens are revoked. Expired entries
// are lazily dropped.
func (l *InMemoryList) IsRevoked(_ context.Context, studentID string) (bool, error) {
	if studentID == "" {
		return false, nil
	}

	l.mu.RLock()
	until, ok := l.revoked[studentID]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if time.Now().After(until) {
		l.mu.Lock()
		delete(l.revoked, studentID)
		l.mu.Unlock()
		return false, nil
	}
	return true, nil
}
