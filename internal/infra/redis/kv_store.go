package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "quiz:stats:"

// KVStore keeps statistics scalars as plain Redis strings.
// Keys are stored as: SET quiz:stats:{key} {value}
type KVStore struct {
	client *redis.Client
	prefix string
}

func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client, prefix: defaultPrefix}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// SetMany writes all values in one MULTI/EXEC transaction.
func (s *KVStore) SetMany(ctx context.Context, values map[string]string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, s.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *KVStore) key(name string) string {
	return s.prefix + name
}
