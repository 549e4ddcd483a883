// Package api defines the application-facing interfaces of the auth module.
package api

import (
	"context"

	"notekeeper/internal/auth/domain/entities"
)

// AuthUseCase определяет операции аутентификации и управления сессиями.
type AuthUseCase interface {
	// Register создает нового пользователя. Email может быть пустым.
	Register(ctx context.Context, username, email, password string) (*entities.User, error)

	// Login проверяет учетные данные и создает сессию, возвращая ее токен.
	Login(ctx context.Context, username, password string) (string, *entities.User, error)

	// Logout уничтожает сессию. Несуществующий токен не является ошибкой.
	Logout(ctx context.Context, token string) error

	// ResolveSession возвращает пользователя, связанного с токеном сессии.
	ResolveSession(ctx context.Context, token string) (*entities.User, error)
}
