// Package app implements application business logic for the notes module.
package app

import (
	"context"
	"errors"
	"fmt"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/api"
	"notekeeper/internal/notes/ports/repositories"
)

// Ошибки уровня бизнес-логики.
var (
	// ErrNotFound покрывает и несуществующую, и чужую заметку:
	// наличие чужих заметок не раскрывается.
	ErrNotFound      = errors.New("note not found")
	ErrInvalidParams = errors.New("invalid parameters")
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) api.NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// CreateNote создает новую заметку для пользователя.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID, title, content string) (*entities.Note, error) {
	if title == "" || len(title) > entities.MaxTitleLength || content == "" {
		return nil, ErrInvalidParams
	}

	note, err := uc.noteRepo.Create(ctx, entities.NewNote(userID, title, content))
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// GetNote возвращает заметку по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	return note, nil
}

// ListNotes возвращает список заметок пользователя.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	notes, total, err := uc.noteRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, total, nil
}

// UpdateNote обновляет существующую заметку. nil-поле не изменяется.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID string, title, content *string) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	if title != nil {
		if *title == "" || len(*title) > entities.MaxTitleLength {
			return nil, ErrInvalidParams
		}
		note.Title = *title
	}
	if content != nil {
		if *content == "" {
			return nil, ErrInvalidParams
		}
		note.Content = *content
	}

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteNote удаляет заметку.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return ErrNotFound
	}

	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
