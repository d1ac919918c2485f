package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RomanSiu/contacts-api/internal/constants"
	"github.com/RomanSiu/contacts-api/internal/dto"
	"github.com/RomanSiu/contacts-api/pkg/cache"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"go.uber.org/zap"
)

// SessionCache keeps authenticated-user snapshots keyed by email so that
// most requests skip the directory round trip. It is a best-effort
// accelerator: any store failure is logged and treated as a miss, never as a
// request failure.
type SessionCache struct {
	store cache.Store
	ttl   time.Duration
}

func NewSessionCache(store cache.Store, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = 900 * time.Second
	}
	return &SessionCache{
		store: store,
		ttl:   ttl,
	}
}

// TTL returns the configured entry lifetime.
func (c *SessionCache) TTL() time.Duration {
	return c.ttl
}

func sessionKey(email string) string {
	return constants.CacheKeyUserPrefix + email
}

// Get returns the cached snapshot for the email, or ok=false on a miss.
// A disabled cache, a store error or an undecodable payload all count as
// misses.
func (c *SessionCache) Get(ctx context.Context, email string) (*dto.AuthUser, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}

	data, found, err := c.store.Get(ctx, sessionKey(email))
	if err != nil {
		logger.GetLogger().Warn("Session cache read failed, falling back to directory",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var user dto.AuthUser
	if err := json.Unmarshal(data, &user); err != nil {
		logger.GetLogger().Warn("Session cache entry is not decodable, treating as miss",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, false
	}

	return &user, true
}

// Put stores the snapshot with the configured TTL, overwriting any existing
// entry. Concurrent writers for the same email race benignly: every write
// within the TTL window carries equivalent data, last write wins.
func (c *SessionCache) Put(ctx context.Context, email string, user *dto.AuthUser) {
	if c == nil || c.store == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		logger.GetLogger().Error("Failed to serialize session cache entry",
			zap.String("email", email),
			zap.Error(err),
		)
		return
	}

	if err := c.store.Set(ctx, sessionKey(email), data, c.ttl); err != nil {
		logger.GetLogger().Warn("Session cache write failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}
}

// Invalidate removes the entry immediately. Called whenever the cached
// representation may have gone stale server-side, e.g. an avatar change or
// email confirmation.
func (c *SessionCache) Invalidate(ctx context.Context, email string) {
	if c == nil || c.store == nil {
		return
	}

	if err := c.store.Delete(ctx, sessionKey(email)); err != nil {
		logger.GetLogger().Warn("Session cache invalidation failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}
}
