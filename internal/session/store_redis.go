package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session records in Redis so conversations survive
// process restarts and arbitrary user delays. Records expire after ttl;
// an expired record simply reads back as a new conversation.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(addr string) string {
	return "session:" + addr
}

func (s *RedisStore) Load(ctx context.Context, addr string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(addr)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", addr, err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", addr, err)
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.Addr, err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.Addr), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sess.Addr, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, addr string) error {
	if err := s.client.Del(ctx, sessionKey(addr)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", addr, err)
	}
	return nil
}
