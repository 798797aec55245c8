package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/repository"
)

// AccountCache caches the per-user active account snapshot in Redis so feed
// assembly does not hit the accounts table on every request. Cache-aside with
// TTL; mutations on the directory must call Invalidate.
type AccountCache struct {
	accounts repository.AccountRepository
	cache    *redis.Client
	ttl      time.Duration
}

func NewAccountCache(accounts repository.AccountRepository, cache *redis.Client, ttl time.Duration) *AccountCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AccountCache{accounts: accounts, cache: cache, ttl: ttl}
}

func snapshotKey(userID string) string {
	return fmt.Sprintf("accounts:snapshot:%s", userID)
}

// Snapshot returns the active account refs for a user, read-through cached.
// Redis being down degrades to a plain repository read, never to an error.
func (c *AccountCache) Snapshot(ctx context.Context, userID string) ([]model.AccountRef, error) {
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, snapshotKey(userID)).Bytes(); err == nil {
			var refs []model.AccountRef
			if uErr := json.Unmarshal(data, &refs); uErr == nil {
				return refs, nil
			}
		}
	}

	accounts, err := c.accounts.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	refs := make([]model.AccountRef, len(accounts))
	for i, a := range accounts {
		refs[i] = a.Ref()
	}

	if c.cache != nil {
		if payload, err := json.Marshal(refs); err == nil {
			_ = c.cache.Set(ctx, snapshotKey(userID), payload, c.ttl).Err()
		}
	}
	return refs, nil
}

// Invalidate drops the cached snapshot after a directory mutation.
func (c *AccountCache) Invalidate(ctx context.Context, userID string) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Del(ctx, snapshotKey(userID)).Err()
}
