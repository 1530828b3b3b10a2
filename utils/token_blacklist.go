package utils

import (
	"context"
	"sync"
	"time"
)

const revokedKeyPrefix = "featherpress:jwt:revoked:"

// memoryBlacklist backs logout when Redis is unreachable. Revocations then
// only hold within one process, which matches single-instance deployments.
type memoryBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

var revoked = &memoryBlacklist{tokens: map[string]time.Time{}}

// BlacklistToken revokes a token until its natural expiry.
func BlacklistToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = rc.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
		return
	}
	revoked.mu.Lock()
	revoked.tokens[token] = expiresAt
	revoked.mu.Unlock()
}

// IsTokenBlacklisted reports whether a token was revoked before expiry.
func IsTokenBlacklisted(token string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := rc.Exists(ctx, revokedKeyPrefix+token).Result()
		// a Redis error counts as not blacklisted
		return err == nil && n > 0
	}

	revoked.mu.RLock()
	expiresAt, ok := revoked.tokens[token]
	revoked.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		revoked.mu.Lock()
		delete(revoked.tokens, token)
		revoked.mu.Unlock()
		return false
	}
	return true
}
