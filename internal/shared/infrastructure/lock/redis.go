package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces lock keys in Redis.
const KeyPrefix = "recruita:lock:"

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by another holder is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisConfig tunes the Redis locker.
type RedisConfig struct {
	// TTL bounds how long a crashed holder can block a key.
	TTL time.Duration
	// Wait bounds how long Acquire retries before ErrLockTimeout.
	Wait time.Duration
	// RetryInterval is the pause between SET NX attempts.
	RetryInterval time.Duration
}

// DefaultRedisConfig returns a 10s TTL, 5s wait and 25ms retry interval.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{TTL: 10 * time.Second, Wait: 5 * time.Second, RetryInterval: 25 * time.Millisecond}
}

// RedisLocker is a Locker backed by SET NX PX on a shared Redis.
type RedisLocker struct {
	client redis.UniversalClient
	config RedisConfig
}

// NewRedisLocker creates a Redis-backed locker.
func NewRedisLocker(client redis.UniversalClient, config RedisConfig) *RedisLocker {
	defaults := DefaultRedisConfig()
	if config.TTL <= 0 {
		config.TTL = defaults.TTL
	}
	if config.Wait <= 0 {
		config.Wait = defaults.Wait
	}
	if config.RetryInterval <= 0 {
		config.RetryInterval = defaults.RetryInterval
	}
	return &RedisLocker{client: client, config: config}
}

// Acquire retries SET NX until it wins, the wait budget runs out, or ctx is
// done.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	redisKey := KeyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.config.Wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.config.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return l.release(redisKey, token), nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}

		timer := time.NewTimer(l.config.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %s: %w", ErrLockTimeout, key, ctx.Err())
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) release(redisKey, token string) Release {
	var once sync.Once
	var err error
	return func(ctx context.Context) error {
		once.Do(func() {
			err = releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err()
			if errors.Is(err, redis.Nil) {
				err = nil
			}
		})
		return err
	}
}

// Ping checks the Redis connection for health reporting.
func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
