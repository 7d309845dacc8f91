package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const roomIndexKey = "rooms:snapshots"

func snapshotKey(code string) string { return fmt.Sprintf("room:%s:snapshot", code) }

// RedisStore keeps snapshots as plain string keys that expire after ttl,
// plus a set indexing the codes that have one.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, opts RedisOptions, logger *zap.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	logger.Named("store").Info("redis connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return NewRedisStore(rdb, opts.TTL), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, code string, data []byte) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, snapshotKey(code), data, s.ttl)
		pipe.SAdd(ctx, roomIndexKey, code)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", code, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, code string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, snapshotKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", code, err)
	}
	return data, nil
}

func (s *RedisStore) Delete(ctx context.Context, code string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, snapshotKey(code))
		pipe.SRem(ctx, roomIndexKey, code)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", code, err)
	}
	return nil
}

// Codes lists the rooms with a saved snapshot. Codes whose key already
// expired are dropped from the index on the way.
func (s *RedisStore) Codes(ctx context.Context) ([]string, error) {
	codes, err := s.rdb.SMembers(ctx, roomIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	out := codes[:0]
	for _, code := range codes {
		n, err := s.rdb.Exists(ctx, snapshotKey(code)).Result()
		if err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		if n == 0 {
			s.rdb.SRem(ctx, roomIndexKey, code)
			continue
		}
		out = append(out, code)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
