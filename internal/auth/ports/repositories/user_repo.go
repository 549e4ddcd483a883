// Package repositories defines repository interfaces for authentication.
package repositories

import (
	"context"

	"notekeeper/internal/auth/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)
}
