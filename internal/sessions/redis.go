package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in a shared redis so replicated API instances
// agree on session identity. TTL handling is native: keys are written with
// an expiry and rewritten with a fresh one on Touch.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(userID uint64, kind Kind) string {
	return fmt.Sprintf("session:%d:%s", userID, kind)
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	stored := *sess
	stored.ExpiresAt = time.Now().Add(s.ttl)

	payload, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, sessionKey(sess.UserID, sess.Kind), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("setnx session: %w", err)
	}

	if !ok {
		return ErrSessionActive
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID uint64, kind Kind) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(userID, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}

		return nil, fmt.Errorf("get session: %w", err)
	}

	sess := new(Session)

	err = json.Unmarshal(raw, sess)
	if err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return sess, nil
}

func (s *RedisStore) Touch(ctx context.Context, userID uint64, kind Kind, state json.RawMessage) error {
	sess, err := s.Get(ctx, userID, kind)
	if err != nil {
		return err
	}

	sess.State = state
	sess.ExpiresAt = time.Now().Add(s.ttl)

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// XX: only refresh a key that still exists; racing an expiry here just
	// reports the session as gone on the next access.
	ok, err := s.client.SetXX(ctx, sessionKey(userID, kind), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("setxx session: %w", err)
	}

	if !ok {
		return ErrNoSession
	}

	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, userID uint64, kind Kind) error {
	err := s.client.Del(ctx, sessionKey(userID, kind)).Err()
	if err != nil {
		return fmt.Errorf("del session: %w", err)
	}

	return nil
}
