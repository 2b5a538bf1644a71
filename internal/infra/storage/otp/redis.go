package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "parking:otp:"

// RedisStore хранит коды в Redis с TTL, так что истёкшие записи удаляются сами
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, email string, entry Entry, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrStorage, err)
	}
	if err := s.client.Set(ctx, keyPrefix+email, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - email=%s: %v", ErrStorage, email, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, email string) (*Entry, error) {
	payload, err := s.client.Get(ctx, keyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: email=%s", ErrCodeNotFound, email)
		}
		return nil, fmt.Errorf("%w: Get - email=%s: %v", ErrStorage, email, err)
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal: %v", ErrStorage, err)
	}
	return &entry, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, keyPrefix+email).Err(); err != nil {
		return fmt.Errorf("%w: Delete - email=%s: %v", ErrStorage, email, err)
	}
	return nil
}

// Ping проверка готовности для /readyz
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
