package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// snapshotKey is the single Redis key holding the whole document.
const snapshotKey = "ambientchat:snapshot"

// RedisStore keeps the snapshot under one Redis key.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore wraps an already connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (r *RedisStore) Load(ctx context.Context) ([]byte, error) {
	doc, err := r.Client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *RedisStore) Save(ctx context.Context, doc []byte) error {
	return r.Client.Set(ctx, snapshotKey, doc, 0).Err()
}
