// Package redis содержит реализацию хранилища сессий на основе Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeeper/internal/auth/ports/services"
	"notekeeper/internal/config"
	"notekeeper/pkg/logger"
)

// Префикс ключей сессий в Redis.
const sessionKeyPrefix = "session:"

// Константы для логирования.
const (
	LogMethodCreate  = "create"
	LogMethodResolve = "resolve"
	LogMethodDestroy = "destroy"

	ErrorFailedToStore   = "failed to store session in redis"
	ErrorFailedToResolve = "failed to resolve session in redis"
	ErrorFailedToDestroy = "failed to destroy session in redis"
)

// SessionStore реализует интерфейс services.SessionService с использованием Redis.
// Каждая сессия - ключ session:<token> со значением ID пользователя и TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// Проверка соответствия интерфейсу.
var _ services.SessionService = (*SessionStore)(nil)

// NewSessionStore создает новое хранилище сессий.
func NewSessionStore(ctx context.Context, cfg *config.RedisConfig, ttl time.Duration) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddressString(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdle,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SessionStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Create создает новую сессию для пользователя и возвращает ее токен.
func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("store", "session"), zap.String("method", LogMethodCreate))

	token := uuid.New().String()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToStore, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToStore, err)
	}

	log.Debug(ctx, "session created", zap.String("userID", userID))
	return token, nil
}

// Resolve возвращает ID пользователя, связанного с токеном.
func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	log := logger.Log(ctx).With(zap.String("store", "session"), zap.String("method", LogMethodResolve))

	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug(ctx, "session not found")
			return "", services.ErrSessionNotFound
		}
		log.Error(ctx, ErrorFailedToResolve, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToResolve, err)
	}

	return userID, nil
}

// Destroy уничтожает сессию. Отсутствующий токен не является ошибкой.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("store", "session"), zap.String("method", LogMethodDestroy))

	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDestroy, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDestroy, err)
	}

	log.Debug(ctx, "session destroyed")
	return nil
}

// Close закрывает соединение с Redis.
func (s *SessionStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("closing redis connection: %w", err)
	}
	return nil
}
