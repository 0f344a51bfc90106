package auth

import (
	"context"
	"errors"
	"stayquest/pkg/logger"
	"stayquest/pkg/metrics"
	"time"

	"github.com/redis/go-redis/v9"
)

// Authorizer decides whether a user may use admin-only operations.
type Authorizer interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RoleAuthorizer grants admin when the user's public role equals role.
type RoleAuthorizer struct {
	directory Directory
	role      string
}

func NewRoleAuthorizer(directory Directory, role string) *RoleAuthorizer {
	return &RoleAuthorizer{directory: directory, role: role}
}

func (a *RoleAuthorizer) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := a.directory.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Role() == a.role, nil
}

const roleCacheName = "admin_role"

// CachedAuthorizer remembers decisions in Redis for ttl. Redis failures fall
// through to the wrapped Authorizer.
type CachedAuthorizer struct {
	next Authorizer
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

func NewCachedAuthorizer(next Authorizer, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedAuthorizer {
	return &CachedAuthorizer{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (a *CachedAuthorizer) IsAdmin(ctx context.Context, userID string) (bool, error) {
	key := "stayquest:admin:" + userID

	v, err := a.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		metrics.ObserveCache(roleCacheName, "hit")
		return v == "1", nil
	case errors.Is(err, redis.Nil):
		metrics.ObserveCache(roleCacheName, "miss")
	default:
		metrics.ObserveCache(roleCacheName, "error")
		a.log.Warn("Role cache read failed", "user_id", userID, "error", err)
	}

	isAdmin, err := a.next.IsAdmin(ctx, userID)
	if err != nil {
		return false, err
	}

	value := "0"
	if isAdmin {
		value = "1"
	}
	if err := a.rdb.Set(ctx, key, value, a.ttl).Err(); err != nil {
		metrics.ObserveCache(roleCacheName, "error")
		a.log.Warn("Role cache write failed", "user_id", userID, "error", err)
	} else {
		metrics.ObserveCache(roleCacheName, "set")
	}

	return isAdmin, nil
}

// NewAuthorizer wraps the role check in a cache when Redis is available and
// ttl is positive.
func NewAuthorizer(directory Directory, role string, rdb *redis.Client, ttl time.Duration, log *logger.Logger) Authorizer {
	var a Authorizer = NewRoleAuthorizer(directory, role)
	if rdb != nil && ttl > 0 {
		a = NewCachedAuthorizer(a, rdb, ttl, log)
	}
	return a
}
