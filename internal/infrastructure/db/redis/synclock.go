package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const syncLockKey = "sync:directory:lock"

// releaseScript deletes the lock only when it still holds our token, so an
// expired lock reacquired by another process is never released from here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// SyncLock serialises directory reconciliation runs across processes with a
// single Redis key. The TTL bounds how long a crashed run can block the
// next one.
type SyncLock struct {
	client *redis.Client
	ttl    time.Duration
	token  string
}

// NewSyncLock creates a SyncLock wrapping the given Redis client.
func NewSyncLock(client *redis.Client, ttl time.Duration) *SyncLock {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SyncLock{client: client, ttl: ttl}
}

// Acquire attempts to take the lock. It reports false when another run
// already holds it.
func (l *SyncLock) Acquire(ctx context.Context) (bool, error) {
	token, err := randomToken()
	if err != nil {
		return false, err
	}

	ok, err := l.client.SetNX(ctx, syncLockKey, token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire sync lock: %w", err)
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Release frees the lock if this instance still owns it.
func (l *SyncLock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, l.client, []string{syncLockKey}, l.token).Err(); err != nil {
		return fmt.Errorf("release sync lock: %w", err)
	}
	l.token = ""
	return nil
}

func randomToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate lock token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
