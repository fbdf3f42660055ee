package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gradely/pkg/cache"
)

const denyListKeyPrefix = "gradely:auth:denylist:"

// DenyList records logged-out tokens until their natural expiry. Entries
// live exactly as long as the token would have, so the store never grows
// beyond the set of tokens that are still decodable.
type DenyList interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) bool
}

type redisDenyList struct {
	cache cache.Service
}

func NewDenyList(cacheService cache.Service) DenyList {
	return &redisDenyList{cache: cacheService}
}

func (d *redisDenyList) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to deny
	}
	return d.cache.Set(ctx, denyListKey(token), true, ttl)
}

func (d *redisDenyList) IsRevoked(ctx context.Context, token string) bool {
	return d.cache.Exists(ctx, denyListKey(token))
}

// tokens are opaque signed strings; keying by digest keeps raw tokens out
// of the store
func denyListKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return denyListKeyPrefix + hex.EncodeToString(sum[:])
}

// NopDenyList never revokes anything. Used when Redis is disabled, which
// restores the documented no-op logout behavior.
type NopDenyList struct{}

func (NopDenyList) Revoke(ctx context.Context, token string, ttl time.Duration) error { return nil }
func (NopDenyList) IsRevoked(ctx context.Context, token string) bool                  { return false }
