package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("session lock not acquired")

// SessionLocker guards one session turn at a time with a per-session key.
// A turn that finds the key taken fails immediately with ErrLockNotAcquired,
// which the API reports as 409 session_busy. The in-process locker queues the
// turn instead. The key expires after ttl, so a crashed holder frees the
// session without a release, and fn sees a context bounded by the same ttl.
type SessionLocker struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewSessionLocker(client *redis.Client, ttl time.Duration) *SessionLocker {
	return &SessionLocker{
		client: client,
		ttl:    ttl,
		prefix: "lock:session:",
	}
}

func (l *SessionLocker) Key(sessionID uuid.UUID) string {
	return l.prefix + sessionID.String()
}

func (l *SessionLocker) WithSessionLock(ctx context.Context, sessionID uuid.UUID, fn func(ctx context.Context) error) error {
	key := l.Key(sessionID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// release on a fresh context so a cancelled request still frees the key
		relCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = l.release(relCtx, key, token)
	}()

	turnCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(turnCtx)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *SessionLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release session lock: %w", err)
	}
	return nil
}
