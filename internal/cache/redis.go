package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"lotomania/internal/lotto"
)

const (
	redisResultKey = "lotomania:result:%d"
	redisLatestKey = "lotomania:latest"
)

// RedisConfig selects the Redis instance used for the shared cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore shares the cache between processes. The latest entry relies on key expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg RedisConfig, ttl time.Duration) *RedisStore {
	return NewRedisStoreWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), ttl)
}

func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultLatestTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, contest int) (lotto.Draw, bool) {
	return s.get(ctx, fmt.Sprintf(redisResultKey, contest))
}

func (s *RedisStore) Put(ctx context.Context, d lotto.Draw) error {
	if d.Partial {
		return nil
	}
	return s.set(ctx, fmt.Sprintf(redisResultKey, d.Contest), d, 0)
}

func (s *RedisStore) Latest(ctx context.Context) (lotto.Draw, bool) {
	return s.get(ctx, redisLatestKey)
}

func (s *RedisStore) PutLatest(ctx context.Context, d lotto.Draw) error {
	return s.set(ctx, redisLatestKey, d, s.ttl)
}

func (s *RedisStore) get(ctx context.Context, key string) (lotto.Draw, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Redis read failed, treating as miss")
		}
		return lotto.Draw{}, false
	}
	var d lotto.Draw
	if err := json.Unmarshal(data, &d); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Skipping corrupt Redis entry")
		return lotto.Draw{}, false
	}
	return d, true
}

func (s *RedisStore) set(ctx context.Context, key string, d lotto.Draw, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
