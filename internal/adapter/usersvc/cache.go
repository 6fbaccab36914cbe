package usersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abcall/clients/internal/core/facade"
)

const cacheKeyPrefix = "clients:user:"

// Store is the key-value backend of the user cache.
type Store interface {
	// Get returns false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisStore implements Store on Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore parses url and connects to Redis.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// CachedFacade keeps successful user lookups in a Store for a while.
// Cache trouble never fails a lookup; the remote service is asked instead.
type CachedFacade struct {
	next   facade.UserFacade
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

var _ facade.UserFacade = (*CachedFacade)(nil)

// NewCachedFacade wraps next with a read-through cache.
func NewCachedFacade(next facade.UserFacade, store Store, ttl time.Duration, logger *slog.Logger) *CachedFacade {
	return &CachedFacade{next: next, store: store, ttl: ttl, logger: logger}
}

func (f *CachedFacade) GetUser(ctx context.Context, subject string) (*facade.UserRecord, error) {
	key := cacheKeyPrefix + subject

	raw, found, err := f.store.Get(ctx, key)
	switch {
	case err != nil:
		f.logger.WarnContext(ctx, "user cache read failed", "error", err)
	case found:
		var user facade.UserRecord
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			return &user, nil
		}
		f.logger.WarnContext(ctx, "discarding malformed user cache entry", "key", key)
	}

	user, err := f.next.GetUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	// Users without a client are not cached so a later assignment shows up at once
	if user != nil && user.ClientID != "" {
		encoded, err := json.Marshal(user)
		if err == nil {
			err = f.store.Set(ctx, key, string(encoded), f.ttl)
		}
		if err != nil {
			f.logger.WarnContext(ctx, "user cache write failed", "error", err)
		}
	}

	return user, nil
}
