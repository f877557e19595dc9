// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Each session is a JSON value under auth:session:<hash>. A per-user set
// under auth:user_sessions:<uid> indexes the hashes so all sessions of an
// account can be revoked at once.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Create stores a session and indexes it under its user.

Parameters:
  - context: context.Context
  - session: *Session
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	userKey := userSessionsKeyPrefix + session.UserID
	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Set(context, sessionKeyPrefix+session.TokenHash, payload, ttl)
		pipe.SAdd(context, userKey, session.TokenHash)
		pipe.Expire(context, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
Consume removes a session with GETDEL and returns what it held.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session, bool: the session, or false when absent or expired
  - error: connectivity errors
*/
func (repository *RedisSessionRepository) Consume(context context.Context, tokenHash string) (*Session, bool, error) {
	payload, err := repository.client.GetDel(context, sessionKeyPrefix+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis_session_consume_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, false, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	session.TokenHash = tokenHash

	// The index entry is advisory; a stale member only costs a no-op DEL later.
	_ = repository.client.SRem(context, userSessionsKeyPrefix+session.UserID, tokenHash).Err()

	return session, true, nil
}

/*
RevokeAll deletes every session of a user along with the index set.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	userKey := userSessionsKeyPrefix + userID

	hashes, err := repository.client.SMembers(context, userKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_list_failed: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKeyPrefix+hash)
	}
	keys = append(keys, userKey)

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	return nil
}
