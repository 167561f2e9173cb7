package repository

import (
	"Vinelytics/internal/pkg/redis"
	"context"
	"time"

	"github.com/pkg/errors"
)

// KVStore 底层键值存储抽象。不提供原子计数与跨键事务，
// 计数器的读-增-写由上层自行完成，允许并发丢写（只会少计，不会多计）。
type KVStore interface {
	// Get 键不存在时返回空串
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// MGet 批量读取，缺失的键对应空串
	MGet(ctx context.Context, keys []string) ([]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

type redisStoreImpl struct{}

func NewRedisStore() KVStore {
	return &redisStoreImpl{}
}

func (s *redisStoreImpl) Get(ctx context.Context, key string) (string, error) {
	val, err := redis.GetValue(ctx, key)
	if err != nil {
		return "", errors.Wrap(err, "redis get")
	}
	return val, nil
}

func (s *redisStoreImpl) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return errors.Wrap(redis.SetWithExpiration(ctx, key, value, expiration), "redis set")
}

func (s *redisStoreImpl) MGet(ctx context.Context, keys []string) ([]string, error) {
	vals, err := redis.MGetValues(ctx, keys)
	if err != nil {
		return nil, errors.Wrap(err, "redis mget")
	}
	return vals, nil
}

func (s *redisStoreImpl) SAdd(ctx context.Context, key string, members ...string) error {
	return errors.Wrap(redis.AddToSet(ctx, key, members...), "redis sadd")
}

func (s *redisStoreImpl) SMembers(ctx context.Context, key string) ([]string, error) {
	vals, err := redis.GetSet(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "redis smembers")
	}
	return vals, nil
}

func (s *redisStoreImpl) Delete(ctx context.Context, key string) error {
	return errors.Wrap(redis.DeleteKey(ctx, key), "redis del")
}
