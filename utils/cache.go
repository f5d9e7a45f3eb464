package utils

import (
	"context"
	"fmt"
	"time"

	"dreamhi/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for token revocation.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

var connectRedis = newRedisClient

// InitCache connects the generic cache and the auth cache.
func InitCache() error {
	var err error
	if CacheClient, err = connectRedis(config.AppConfig.RedisCacheDB); err != nil {
		return err
	}
	if AuthCacheClient, err = connectRedis(config.AppConfig.RedisAuthDB); err != nil {
		CacheClient.Close()
		CacheClient = nil
		return err
	}
	return nil
}

// GetCacheClient returns the generic cache client, nil if not connected.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for token revocation, nil if
// not connected.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// TokenRevocations records logged-out tokens in the auth cache.
type TokenRevocations struct {
	Client *redis.Client
}

// Revoke marks a token as revoked until it would have expired anyway.
func (r *TokenRevocations) Revoke(ctx context.Context, tokenString string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, AuthRevokedPrefix+HashToken(tokenString), 1, ttl).Err()
}

// IsRevoked reports whether a token was revoked.
func (r *TokenRevocations) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	n, err := r.Client.Exists(ctx, AuthRevokedPrefix+HashToken(tokenString)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
