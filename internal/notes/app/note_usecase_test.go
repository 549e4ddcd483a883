package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/domain/entities"
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Note), args.Int(1), args.Error(2)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	args := m.Called(ctx, noteID, userID)
	return args.Error(0)
}

const (
	testUserID = "user-id-1"
	testNoteID = "note-id-1"
)

func TestCreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное создание", func(t *testing.T) {
		repo := new(mockNoteRepository)
		created := &entities.Note{ID: testNoteID, UserID: testUserID, Title: "Groceries", Content: "milk"}

		repo.On("Create", ctx, mock.MatchedBy(func(n *entities.Note) bool {
			return n.UserID == testUserID && n.Title == "Groceries" && n.Content == "milk"
		})).Return(created, nil)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.CreateNote(ctx, testUserID, "Groceries", "milk")

		require.NoError(t, err)
		assert.Equal(t, testNoteID, note.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Пустой заголовок", func(t *testing.T) {
		uc := app.NewNoteUseCase(new(mockNoteRepository))

		note, err := uc.CreateNote(ctx, testUserID, "", "milk")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, app.ErrInvalidParams)
	})

	t.Run("Слишком длинный заголовок", func(t *testing.T) {
		uc := app.NewNoteUseCase(new(mockNoteRepository))

		longTitle := strings.Repeat("a", entities.MaxTitleLength+1)
		note, err := uc.CreateNote(ctx, testUserID, longTitle, "milk")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, app.ErrInvalidParams)
	})

	t.Run("Пустое содержимое", func(t *testing.T) {
		uc := app.NewNoteUseCase(new(mockNoteRepository))

		note, err := uc.CreateNote(ctx, testUserID, "Groceries", "")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, app.ErrInvalidParams)
	})
}

func TestGetNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Заметка найдена", func(t *testing.T) {
		repo := new(mockNoteRepository)
		stored := &entities.Note{ID: testNoteID, UserID: testUserID, Title: "Groceries", Content: "milk"}

		repo.On("GetByID", ctx, testNoteID, testUserID).Return(stored, nil)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.GetNote(ctx, testUserID, testNoteID)

		require.NoError(t, err)
		assert.Equal(t, stored.Title, note.Title)
	})

	t.Run("Чужая или несуществующая заметка", func(t *testing.T) {
		repo := new(mockNoteRepository)

		repo.On("GetByID", ctx, testNoteID, "other-user").Return(nil, nil)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.GetNote(ctx, "other-user", testNoteID)

		assert.Nil(t, note)
		assert.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("Список заметок", func(t *testing.T) {
		repo := new(mockNoteRepository)
		stored := []*entities.Note{
			{ID: "id-2", UserID: testUserID, Title: "Newest"},
			{ID: "id-1", UserID: testUserID, Title: "Older"},
		}

		repo.On("ListByUserID", ctx, testUserID, 0, 0).Return(stored, 2, nil)

		uc := app.NewNoteUseCase(repo)
		notes, total, err := uc.ListNotes(ctx, testUserID, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, notes, 2)
	})

	t.Run("Отрицательные limit и offset нормализуются", func(t *testing.T) {
		repo := new(mockNoteRepository)

		repo.On("ListByUserID", ctx, testUserID, 0, 0).Return([]*entities.Note{}, 0, nil)

		uc := app.NewNoteUseCase(repo)
		_, _, err := uc.ListNotes(ctx, testUserID, -5, -10)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestUpdateNote(t *testing.T) {
	ctx := context.Background()

	makeStored := func() *entities.Note {
		return &entities.Note{ID: testNoteID, UserID: testUserID, Title: "Old title", Content: "old content"}
	}

	strPtr := func(s string) *string { return &s }

	t.Run("Полное обновление", func(t *testing.T) {
		repo := new(mockNoteRepository)
		stored := makeStored()

		repo.On("GetByID", ctx, testNoteID, testUserID).Return(stored, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(n *entities.Note) bool {
			return n.Title == "New title" && n.Content == "new content"
		})).Return(nil)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.UpdateNote(ctx, testUserID, testNoteID, strPtr("New title"), strPtr("new content"))

		require.NoError(t, err)
		assert.Equal(t, "New title", note.Title)
		repo.AssertExpectations(t)
	})

	t.Run("Частичное обновление не трогает nil-поля", func(t *testing.T) {
		repo := new(mockNoteRepository)
		stored := makeStored()

		repo.On("GetByID", ctx, testNoteID, testUserID).Return(stored, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(n *entities.Note) bool {
			return n.Title == "New title" && n.Content == "old content"
		})).Return(nil)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.UpdateNote(ctx, testUserID, testNoteID, strPtr("New title"), nil)

		require.NoError(t, err)
		assert.Equal(t, "old content", note.Content)
		repo.AssertExpectations(t)
	})

	t.Run("Пустой заголовок отклоняется", func(t *testing.T) {
		repo := new(mockNoteRepository)

		repo.On("GetByID", ctx, testNoteID, testUserID).Return(makeStored(), nil)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.UpdateNote(ctx, testUserID, testNoteID, strPtr(""), nil)

		assert.Nil(t, note)
		assert.ErrorIs(t, err, app.ErrInvalidParams)
	})

	t.Run("Чужая или несуществующая заметка", func(t *testing.T) {
		repo := new(mockNoteRepository)

		repo.On("GetByID", ctx, testNoteID, testUserID).Return(nil, nil)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.UpdateNote(ctx, testUserID, testNoteID, strPtr("New title"), nil)

		assert.Nil(t, note)
		assert.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное удаление", func(t *testing.T) {
		repo := new(mockNoteRepository)
		stored := &entities.Note{ID: testNoteID, UserID: testUserID}

		repo.On("GetByID", ctx, testNoteID, testUserID).Return(stored, nil)
		repo.On("Delete", ctx, testNoteID, testUserID).Return(nil)

		uc := app.NewNoteUseCase(repo)

		require.NoError(t, uc.DeleteNote(ctx, testUserID, testNoteID))
		repo.AssertExpectations(t)
	})

	t.Run("Чужая или несуществующая заметка", func(t *testing.T) {
		repo := new(mockNoteRepository)

		repo.On("GetByID", ctx, testNoteID, testUserID).Return(nil, nil)

		uc := app.NewNoteUseCase(repo)

		assert.ErrorIs(t, uc.DeleteNote(ctx, testUserID, testNoteID), app.ErrNotFound)
	})

	t.Run("Ошибка репозитория при удалении", func(t *testing.T) {
		repo := new(mockNoteRepository)
		stored := &entities.Note{ID: testNoteID, UserID: testUserID}
		repoErr := errors.New("database connection error")

		repo.On("GetByID", ctx, testNoteID, testUserID).Return(stored, nil)
		repo.On("Delete", ctx, testNoteID, testUserID).Return(repoErr)

		uc := app.NewNoteUseCase(repo)

		assert.ErrorIs(t, uc.DeleteNote(ctx, testUserID, testNoteID), repoErr)
	})
}
