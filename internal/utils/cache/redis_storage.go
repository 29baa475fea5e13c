package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const operationTimeout = 2 * time.Second

// RedisStorage implements fiber.Storage on top of redis so that middleware
// state (rate limiter counters) is shared between instances.
type RedisStorage struct {
	client      redis.UniversalClient
	serviceName string
}

func NewRedisStorage(addr, serviceName string) *RedisStorage {
	return NewRedisStorageFromClient(redis.NewClient(&redis.Options{Addr: addr}), serviceName)
}

func NewRedisStorageFromClient(client redis.UniversalClient, serviceName string) *RedisStorage {
	return &RedisStorage{client: client, serviceName: serviceName}
}

func (r *RedisStorage) GenerateKey(key string) string {
	return fmt.Sprintf("%s:limiter:%s", r.serviceName, key)
}

func (r *RedisStorage) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.GenerateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	return r.client.Set(ctx, r.GenerateKey(key), val, exp).Err()
}

func (r *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	return r.client.Del(ctx, r.GenerateKey(key)).Err()
}

// Reset removes only the keys owned by this storage.
func (r *RedisStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*operationTimeout)
	defer cancel()

	iter := r.client.Scan(ctx, 0, r.GenerateKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
