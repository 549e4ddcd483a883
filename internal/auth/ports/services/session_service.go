package services

import (
	"context"
	"errors"
)

// ErrSessionNotFound возвращается, когда токен не связан ни с одной сессией.
var ErrSessionNotFound = errors.New("session not found")

// SessionService определяет интерфейс для управления сессиями пользователей.
// Токен - непрозрачное значение, передаваемое клиенту в cookie.
type SessionService interface {
	Create(ctx context.Context, userID string) (string, error)

	Resolve(ctx context.Context, token string) (string, error)

	Destroy(ctx context.Context, token string) error
}
