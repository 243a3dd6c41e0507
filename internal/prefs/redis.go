package prefs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps preferences in Redis so they survive service restarts and
// follow the learner across connections.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(learnerID uuid.UUID) string {
	return fmt.Sprintf("prefs:%s:%s", learnerID.String(), MutedKey)
}

// Muted returns the stored flag. A missing key reads as unmuted.
func (s *RedisStore) Muted(ctx context.Context, learnerID uuid.UUID) (bool, error) {
	val, err := s.client.Get(ctx, s.key(learnerID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", MutedKey, err)
	}
	return val == "true", nil
}

// SetMuted writes the flag on every toggle.
func (s *RedisStore) SetMuted(ctx context.Context, learnerID uuid.UUID, muted bool) error {
	if err := s.client.Set(ctx, s.key(learnerID), encodeBool(muted), 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", MutedKey, err)
	}
	return nil
}
