package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const docKeyPrefix = "session:doc:"

// RedisStore keeps chat sessions in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) SetDocument(ctx context.Context, chatID int64, text string) error {
	return s.client.Set(ctx, docKey(chatID), text, s.ttl).Err()
}

func (s *RedisStore) Document(ctx context.Context, chatID int64) (string, error) {
	text, err := s.client.Get(ctx, docKey(chatID)).Result()
	if err == redis.Nil {
		return "", nil // no document stored
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *RedisStore) Clear(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, docKey(chatID)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func docKey(chatID int64) string {
	return docKeyPrefix + strconv.FormatInt(chatID, 10)
}
