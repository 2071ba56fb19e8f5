package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations remembers session tokens that were signed out before they
// expired.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisRevocations struct {
	rdb *redis.Client
}

func NewRedisRevocations(rdb *redis.Client) *RedisRevocations {
	return &RedisRevocations{rdb: rdb}
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}

func (a *RedisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return a.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (a *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := a.rdb.Get(ctx, revokedKey(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InMemoryRevocations keeps revoked token ids until they expire. Expired
// entries are dropped on every Revoke.
type InMemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewInMemoryRevocations() *InMemoryRevocations {
	return &InMemoryRevocations{revoked: map[string]time.Time{}, now: time.Now}
}

func (a *InMemoryRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.now()
	for id, end := range a.revoked {
		if now.After(end) {
			delete(a.revoked, id)
		}
	}
	a.revoked[tokenID] = until
	return nil
}

func (a *InMemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	until, ok := a.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if a.now().After(until) {
		delete(a.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
