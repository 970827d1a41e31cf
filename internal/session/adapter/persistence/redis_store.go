package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ev-storefront/internal/session/domain/model"
	"ev-storefront/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix  = "session:"
	searchesKeySuffix = ":searches"
)

// RedisSessionStore persists session records in Redis. Each session is one
// JSON blob under "session:<id>"; the recent-search list lives next to it
// under "session:<id>:searches". Keys carry the session TTL so abandoned
// records age out even without a lazy-expiry read.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisSessionStore creates a new Redis-backed session store
func NewRedisSessionStore(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

// Save overwrites the stored session unconditionally.
func (r *RedisSessionStore) Save(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("Failed to serialize session", zap.Error(err))
		return err
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to store session in Redis",
			zap.String("sessionID", session.ID),
			zap.Error(err))
		return err
	}

	return nil
}

// Get returns the stored session, or model.ErrSessionNotFound when absent.
// A record that fails to decode is treated as absent and removed.
func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		r.logger.Error("Failed to read session from Redis",
			zap.String("sessionID", sessionID),
			zap.Error(err))
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Warn("Discarding malformed session record",
			zap.String("sessionID", sessionID),
			zap.Error(err))
		_ = r.Delete(ctx, sessionID)
		return nil, model.ErrSessionNotFound
	}

	return &session, nil
}

// Delete removes the session and its search history. Deleting a missing
// session is not an error.
func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID), searchesKey(sessionID)).Err(); err != nil {
		r.logger.Error("Failed to delete session from Redis",
			zap.String("sessionID", sessionID),
			zap.Error(err))
		return err
	}
	return nil
}

// SaveSearches replaces the recent-search list for the session.
func (r *RedisSessionStore) SaveSearches(ctx context.Context, sessionID string, searches []string) error {
	key := searchesKey(sessionID)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(searches) > 0 {
		values := make([]interface{}, len(searches))
		for i, s := range searches {
			values[i] = s
		}
		pipe.RPush(ctx, key, values...)
		pipe.Expire(ctx, key, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to store recent searches",
			zap.String("sessionID", sessionID),
			zap.Error(err))
		return err
	}
	return nil
}

// RecentSearches returns the stored search list, most recent first. A missing
// key yields an empty list.
func (r *RedisSessionStore) RecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	searches, err := r.client.LRange(ctx, searchesKey(sessionID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		r.logger.Error("Failed to read recent searches",
			zap.String("sessionID", sessionID),
			zap.Error(err))
		return nil, err
	}
	return searches, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func searchesKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + searchesKeySuffix
}
