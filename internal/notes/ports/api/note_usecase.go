// Package api defines the application-facing interfaces of the notes module.
package api

import (
	"context"

	"notekeeper/internal/notes/domain/entities"
)

// NoteUseCase определяет операции над заметками. Идентификатор пользователя
// передается явно: он разрешается один раз на запрос в HTTP слое.
type NoteUseCase interface {
	CreateNote(ctx context.Context, userID, title, content string) (*entities.Note, error)

	GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error)

	// ListNotes возвращает заметки пользователя, отсортированные по убыванию
	// updated_at. limit <= 0 означает отсутствие ограничения.
	ListNotes(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error)

	// UpdateNote обновляет заголовок и/или содержимое. nil-поле не изменяется.
	UpdateNote(ctx context.Context, userID, noteID string, title, content *string) (*entities.Note, error)

	DeleteNote(ctx context.Context, userID, noteID string) error
}
