package otpstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// One-time codes expire after this long, matching the email copy sent to
// the user.
const TTL = 10 * time.Minute

const keyPattern = "otp:%s"

// ErrCodeMismatch is returned when the stored code does not match, has
// expired, or was never issued. Callers cannot tell these apart on purpose.
var ErrCodeMismatch = errors.New("otp code mismatch or expired")

// Store keeps one-time verification codes keyed by email with a TTL.
type Store interface {
	Set(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, code string) error
}

// RedisStore is the redis-backed Store used in production.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Store over the given redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Set stores the code for the email, replacing any previous one and
// restarting the TTL.
func (s *RedisStore) Set(ctx context.Context, email, code string) error {
	key := fmt.Sprintf(keyPattern, email)
	if err := s.rdb.Set(ctx, key, code, TTL).Err(); err != nil {
		return fmt.Errorf("failed to store otp for %s: %w", email, err)
	}
	return nil
}

// Verify compares the submitted code against the stored one and deletes it
// on success so a code can only be used once.
func (s *RedisStore) Verify(ctx context.Context, email, code string) error {
	key := fmt.Sprintf(keyPattern, email)
	stored, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to read otp for %s: %w", email, err)
	}
	if stored != code {
		return ErrCodeMismatch
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to consume otp for %s: %w", email, err)
	}
	return nil
}

// MemoryStore is an in-process Store for tests and redis-less setups.
type MemoryStore struct {
	codes map[string]entry
	mu    sync.Mutex
	now   func() time.Time
}

type entry struct {
	code    string
	expires time.Time
}

// NewMemoryStore creates an in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]entry),
		now:   time.Now,
	}
}

// SetClock overrides the store's clock; tests use it to expire codes.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Set stores the code for the email with the standard TTL.
func (s *MemoryStore) Set(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = entry{code: code, expires: s.now().Add(TTL)}
	return nil
}

// Verify compares and consumes the stored code.
func (s *MemoryStore) Verify(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.codes[email]
	if !ok || s.now().After(e.expires) || e.code != code {
		return ErrCodeMismatch
	}
	delete(s.codes, email)
	return nil
}
