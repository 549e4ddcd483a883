package dto

import (
	"time"

	"notekeeper/internal/notes/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Validate проверяет запрос и возвращает ошибки по полям.
func (r *CreateNoteRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	validateTitle(errs, r.Title, true)
	validateContent(errs, r.Content, true)
	return errs
}

// UpdateNoteRequest содержит данные для обновления заметки.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ValidatePartial проверяет частичное обновление: отсутствующие поля допустимы.
func (r *UpdateNoteRequest) ValidatePartial() FieldErrors {
	errs := FieldErrors{}
	validateTitle(errs, r.Title, false)
	validateContent(errs, r.Content, false)
	return errs
}

// ValidateFull проверяет полное обновление: оба поля обязательны.
func (r *UpdateNoteRequest) ValidateFull() FieldErrors {
	errs := FieldErrors{}
	validateTitle(errs, r.Title, true)
	validateContent(errs, r.Content, true)
	return errs
}

func validateTitle(errs FieldErrors, title *string, required bool) {
	switch {
	case title == nil:
		if required {
			errs.Add("title", MsgFieldRequired)
		}
	case *title == "":
		errs.Add("title", MsgFieldBlank)
	case len(*title) > entities.MaxTitleLength:
		errs.Add("title", MsgTitleTooLong)
	}
}

func validateContent(errs FieldErrors, content *string, required bool) {
	switch {
	case content == nil:
		if required {
			errs.Add("content", MsgFieldRequired)
		}
	case *content == "":
		errs.Add("content", MsgFieldBlank)
	}
}

// NoteResponse содержит сериализованную заметку. Owner - имя владельца,
// доступно только для чтения.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Owner     string    `json:"owner"`
}

// NewNoteResponse сериализует заметку. Все заметки в ответах принадлежат
// текущему пользователю, поэтому имя владельца передается из identity.
func NewNoteResponse(note *entities.Note, ownerUsername string) *NoteResponse {
	return &NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		Owner:     ownerUsername,
	}
}

// NewNoteListResponse сериализует список заметок.
func NewNoteListResponse(notes []*entities.Note, ownerUsername string) []*NoteResponse {
	responses := make([]*NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, NewNoteResponse(note, ownerUsername))
	}
	return responses
}
