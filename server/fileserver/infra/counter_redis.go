package infra

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore persiste os contadores de acesso em um hash do Redis.
//
// HINCRBY é atômico no servidor, então este backend é sempre sincronizado;
// o modo racy de demonstração só existe no MemoryCounterStore.
type RedisCounterStore struct {
	rdb    *redis.Client
	prefix string
}

type RedisCounterOption func(*RedisCounterStore)

func WithCounterPrefix(prefix string) RedisCounterOption {
	return func(s *RedisCounterStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func NewRedisCounterStore(rdb *redis.Client, opts ...RedisCounterOption) *RedisCounterStore {
	s := &RedisCounterStore{
		rdb:    rdb,
		prefix: "fileserver:hits",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisCounterStore) Increment(ctx context.Context, path string) error {
	return s.rdb.HIncrBy(ctx, s.prefix, path, 1).Err()
}

func (s *RedisCounterStore) Get(ctx context.Context, path string) (int64, error) {
	n, err := s.rdb.HGet(ctx, s.prefix, path).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
