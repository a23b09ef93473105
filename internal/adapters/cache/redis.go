// Package cache содержит реализацию кэша сессий на Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bookshelf/internal/config"
	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/cache"
	"bookshelf/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet    = "get"
	LogMethodSet    = "set"
	LogMethodDelete = "delete"

	ErrorFailedToConnect = "failed to connect to redis"
	ErrorFailedToGet     = "failed to get session from redis"
	ErrorFailedToSet     = "failed to set session in redis"
	ErrorFailedToDelete  = "failed to delete sessions from redis"
	ErrorFailedToClose   = "failed to close redis connection"
	ErrorFailedToDecode  = "failed to decode cached session"
)

type cachedSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// RedisSessionCache реализует cache.SessionCache с использованием Redis.
type RedisSessionCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// NewRedisSessionCache подключается к Redis и возвращает кэш сессий.
func NewRedisSessionCache(ctx context.Context, cfg *config.RedisConfig) (cache.SessionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return &RedisSessionCache{
		client:    client,
		ttl:       cfg.SessionTTL,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

func (c *RedisSessionCache) key(sessionID string) string {
	return c.keyPrefix + sessionID
}

// Get возвращает закэшированную сессию или nil при промахе.
func (c *RedisSessionCache) Get(ctx context.Context, sessionID string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet))

	raw, err := c.client.Get(ctx, c.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var cached cachedSession
	if err := json.Unmarshal(raw, &cached); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	return &entities.Session{ID: cached.ID, UserID: cached.UserID, CreatedAt: cached.CreatedAt}, nil
}

// Set кэширует сессию на настроенное время жизни.
func (c *RedisSessionCache) Set(ctx context.Context, session *entities.Session) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet))

	raw, err := json.Marshal(cachedSession{ID: session.ID, UserID: session.UserID, CreatedAt: session.CreatedAt})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	if err := c.client.Set(ctx, c.key(session.ID), raw, c.ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Delete удаляет сессии из кэша.
func (c *RedisSessionCache) Delete(ctx context.Context, sessionIDs ...string) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.Int("count", len(sessionIDs)))

	keys := make([]string, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		keys = append(keys, c.key(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisSessionCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
