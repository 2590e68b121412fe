package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage keeps each document as a single string value under
// prefix+path.
func NewRedisStorage(client *redis.Client, prefix string) DocumentStorage {
	return &redisStorage{client: client, prefix: prefix}
}

func (s *redisStorage) Save(ctx context.Context, path string, data io.Reader) error {
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(path), body, 0).Err()
}

func (s *redisStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	body, err := s.client.Get(ctx, s.key(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis key %s: %w", s.key(path), fs.ErrNotExist)
		}
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (s *redisStorage) key(path string) string {
	return s.prefix + path
}
