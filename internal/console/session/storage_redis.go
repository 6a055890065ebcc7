// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veloura/veloura/internal/platform/constants"
)

// RedisStorage persists console session blobs in Redis so identities
// survive console restarts and are shared across replicas.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (storage *RedisStorage) key(key string) string {
	return constants.RedisPrefixConsoleState + key
}

func (storage *RedisStorage) Get(context context.Context, key string) (string, bool, error) {
	value, err := storage.client.Get(context, storage.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (storage *RedisStorage) Set(context context.Context, key string, value string, ttl time.Duration) error {
	return storage.client.Set(context, storage.key(key), value, ttl).Err()
}

func (storage *RedisStorage) Delete(context context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for index, key := range keys {
		prefixed[index] = storage.key(key)
	}
	return storage.client.Del(context, prefixed...).Err()
}
