package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// ScanLockRepository is a cross-process single-flight lock that expires on its own.
type ScanLockRepository interface {
	Acquire(ctx context.Context, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, token string) error
}

// NewScanLockRepository creates a Redis-backed scan lock stored under key.
func NewScanLockRepository(client *redis.Client, key string) ScanLockRepository {
	return &scanLockRepository{client: client, key: key}
}

type scanLockRepository struct {
	client *redis.Client
	key    string
}

func (r *scanLockRepository) Acquire(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.key, token, ttl).Result()
}

// Release deletes the lock only while it still holds token.
func (r *scanLockRepository) Release(ctx context.Context, token string) error {
	return releaseScript.Run(ctx, r.client, []string{r.key}, token).Err()
}
