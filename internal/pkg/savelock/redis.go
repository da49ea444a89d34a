package savelock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "intake:save:"

// releaseScript deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Guard shared by every API instance. Holds expire after ttl so a crashed
// instance cannot keep an application locked.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, keyPrefix+key, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire save lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release even when the request context is already cancelled.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, r.client, []string{keyPrefix + key}, token).Err(); err != nil {
				slog.Warn("Failed to release save lock", "key", key, "error", err)
			}
		})
	}, nil
}

// NewClient connects to url. It returns nil when url is empty.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
