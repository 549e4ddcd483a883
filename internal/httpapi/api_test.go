package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessredis "notekeeper/internal/auth/adapters/redis"
	authsvc "notekeeper/internal/auth/adapters/services"
	authapp "notekeeper/internal/auth/app"
	authentities "notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/config"
	"notekeeper/internal/httpapi"
	notesapp "notekeeper/internal/notes/app"
	noteentities "notekeeper/internal/notes/domain/entities"
)

// memoryUserRepo - потокобезопасная реализация UserRepository в памяти.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*authentities.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*authentities.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *authentities.User) (*authentities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, authentities.ErrUsernameTaken
		}
	}

	stored := *user
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*authentities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, authentities.ErrUserNotFound
	}
	result := *user
	return &result, nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*authentities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			result := *user
			return &result, nil
		}
	}
	return nil, authentities.ErrUserNotFound
}

var errNoteMissing = errors.New("note not found")

// memoryNoteRepo - потокобезопасная реализация NoteRepository в памяти.
type memoryNoteRepo struct {
	mu    sync.Mutex
	notes map[string]*noteentities.Note
}

func newMemoryNoteRepo() *memoryNoteRepo {
	return &memoryNoteRepo{notes: make(map[string]*noteentities.Note)}
}

func (r *memoryNoteRepo) Create(_ context.Context, note *noteentities.Note) (*noteentities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *note
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.notes[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *memoryNoteRepo) GetByID(_ context.Context, noteID, userID string) (*noteentities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, nil
	}
	result := *note
	return &result, nil
}

func (r *memoryNoteRepo) ListByUserID(_ context.Context, userID string, limit, offset int) ([]*noteentities.Note, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := make([]*noteentities.Note, 0)
	for _, note := range r.notes {
		if note.UserID == userID {
			result := *note
			owned = append(owned, &result)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].UpdatedAt.After(owned[j].UpdatedAt)
	})

	total := len(owned)
	if offset > 0 {
		if offset > total {
			offset = total
		}
		owned = owned[offset:]
	}
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}

	return owned, total, nil
}

func (r *memoryNoteRepo) Update(_ context.Context, note *noteentities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notes[note.ID]
	if !ok || stored.UserID != note.UserID {
		return errNoteMissing
	}

	stored.Title = note.Title
	stored.Content = note.Content
	stored.UpdatedAt = time.Now().UTC()
	note.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memoryNoteRepo) Delete(_ context.Context, noteID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notes[noteID]
	if !ok || stored.UserID != userID {
		return errNoteMissing
	}
	delete(r.notes, noteID)
	return nil
}

// testServer собирает приложение с хранилищами в памяти и сессиями в miniredis.
func testServer(t *testing.T) *fiber.App {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	sessionCfg := &config.SessionConfig{TTL: time.Hour, CookieName: "notes_session"}
	redisCfg := &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
		PoolSize:       10,
		MinIdle:        2,
	}

	sessionStore, err := sessredis.NewSessionStore(context.Background(), redisCfg, sessionCfg.TTL)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sessionStore.Close()
	})

	authUC := authapp.NewAuthUseCase(newMemoryUserRepo(), authsvc.NewBcrypt(bcrypt.MinCost), sessionStore)
	noteUC := notesapp.NewNoteUseCase(newMemoryNoteRepo())

	app := fiber.New()
	httpapi.SetupRouter(app, authUC, noteUC, sessionCfg)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, cookies ...*http.Cookie) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doListRequest(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(cookie)

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func sessionCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func login(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()

	resp, body := doRequest(t, app, http.MethodPost, "/auth/login",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Logged in successfully.", body["detail"])

	return sessionCookie(t, resp, "notes_session")
}

func TestHealthEndpoint(t *testing.T) {
	app := testServer(t)

	resp, body := doRequest(t, app, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Server is up!", body["message"])
}

func TestAuthFlow(t *testing.T) {
	app := testServer(t)

	t.Run("Регистрация нового пользователя", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/auth/register",
			`{"username":"bob","email":"bob@example.com","password":"password1"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "User registered successfully.", body["detail"])
	})

	t.Run("Повторная регистрация того же имени", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/auth/register",
			`{"username":"bob","password":"password2"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []any{"A user with that username already exists."}, body["username"])
	})

	t.Run("Регистрация с коротким паролем", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/auth/register",
			`{"username":"carol","password":"12345"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []any{"Ensure this field has at least 6 characters."}, body["password"])
	})

	t.Run("Регистрация без обязательных полей", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/auth/register", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []any{"This field is required."}, body["username"])
		assert.Equal(t, []any{"This field is required."}, body["password"])
	})

	t.Run("Вход с неверным паролем", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/auth/login",
			`{"username":"bob","password":"wrongpass"}`)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials.", body["detail"])
	})

	t.Run("Вход с неизвестным именем", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/auth/login",
			`{"username":"ghost","password":"password1"}`)

		// Неизвестное имя неотличимо от неверного пароля.
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials.", body["detail"])
	})

	t.Run("Вход и выход", func(t *testing.T) {
		cookie := login(t, app, "bob", "password1")
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)

		resp, body := doRequest(t, app, http.MethodPost, "/auth/logout", "", cookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Logged out successfully.", body["detail"])

		// Уничтоженная сессия больше не принимается.
		resp, body = doRequest(t, app, http.MethodGet, "/notes", "", cookie)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Authentication credentials were not provided.", body["detail"])
	})

	t.Run("Выход без аутентификации", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/auth/logout", "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Authentication credentials were not provided.", body["detail"])
	})
}

func TestNotesFlow(t *testing.T) {
	app := testServer(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/auth/register",
		`{"username":"bob","password":"password1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodPost, "/auth/register",
		`{"username":"alice","password":"password2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	bobCookie := login(t, app, "bob", "password1")
	aliceCookie := login(t, app, "alice", "password2")

	var noteID string
	var firstUpdatedAt time.Time

	t.Run("Доступ без cookie запрещен", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodGet, "/notes", "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Authentication credentials were not provided.", body["detail"])
	})

	t.Run("Создание заметки", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/notes",
			`{"title":"Groceries","content":"milk, eggs"}`, bobCookie)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Groceries", body["title"])
		assert.Equal(t, "milk, eggs", body["content"])
		assert.Equal(t, "bob", body["owner"])

		noteID = body["id"].(string)
		require.NotEmpty(t, noteID)

		var err error
		firstUpdatedAt, err = time.Parse(time.RFC3339Nano, body["updated_at"].(string))
		require.NoError(t, err)
	})

	t.Run("Создание заметки без заголовка", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/notes",
			`{"content":"milk"}`, bobCookie)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []any{"This field is required."}, body["title"])
	})

	t.Run("Список заметок владельца", func(t *testing.T) {
		resp, notes := doListRequest(t, app, "/notes", bobCookie)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, notes, 1)
		assert.Equal(t, noteID, notes[0]["id"])
	})

	t.Run("Чужая заметка невидима", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodGet, "/notes/"+noteID, "", aliceCookie)

		// Чужая заметка неотличима от несуществующей.
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Not found.", body["detail"])

		listResp, notes := doListRequest(t, app, "/notes", aliceCookie)
		assert.Equal(t, http.StatusOK, listResp.StatusCode)
		assert.Empty(t, notes)
	})

	t.Run("Чужая заметка не обновляется и не удаляется", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPatch, "/notes/"+noteID,
			`{"title":"hijacked"}`, aliceCookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Not found.", body["detail"])

		resp, _ = doRequest(t, app, http.MethodDelete, "/notes/"+noteID, "", aliceCookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		// Заметка осталась нетронутой.
		resp, body = doRequest(t, app, http.MethodGet, "/notes/"+noteID, "", bobCookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Groceries", body["title"])
	})

	t.Run("Частичное обновление", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPatch, "/notes/"+noteID,
			`{"title":"Shopping list"}`, bobCookie)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Shopping list", body["title"])
		assert.Equal(t, "milk, eggs", body["content"])

		updatedAt, err := time.Parse(time.RFC3339Nano, body["updated_at"].(string))
		require.NoError(t, err)
		assert.False(t, updatedAt.Before(firstUpdatedAt))
	})

	t.Run("Полное обновление", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPut, "/notes/"+noteID,
			`{"title":"Weekend plans","content":"hiking"}`, bobCookie)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Weekend plans", body["title"])
		assert.Equal(t, "hiking", body["content"])
	})

	t.Run("Полное обновление требует оба поля", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPut, "/notes/"+noteID,
			`{"title":"Only title"}`, bobCookie)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []any{"This field is required."}, body["content"])
	})

	t.Run("Невалидный ID в пути", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodGet, "/notes/not-a-uuid", "", bobCookie)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Not found.", body["detail"])
	})

	t.Run("Удаление заметки", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodDelete, "/notes/"+noteID, "", bobCookie)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, body := doRequest(t, app, http.MethodGet, "/notes/"+noteID, "", bobCookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Not found.", body["detail"])
	})

	t.Run("Несуществующий маршрут", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodGet, "/unknown", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Not found.", body["detail"])
	})
}

func TestNotesOrderedByUpdatedAt(t *testing.T) {
	app := testServer(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/auth/register",
		`{"username":"bob","password":"password1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cookie := login(t, app, "bob", "password1")

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		resp, body := doRequest(t, app, http.MethodPost, "/notes",
			`{"title":"`+title+`","content":"text"}`, cookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, body["id"].(string))
		time.Sleep(5 * time.Millisecond)
	}

	// Новейшая заметка идет первой.
	_, notes := doListRequest(t, app, "/notes", cookie)
	require.Len(t, notes, 3)
	assert.Equal(t, "third", notes[0]["title"])
	assert.Equal(t, "first", notes[2]["title"])

	// Обновление поднимает заметку в начало списка.
	resp, _ = doRequest(t, app, http.MethodPatch, "/notes/"+ids[0],
		`{"content":"updated"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, notes = doListRequest(t, app, "/notes", cookie)
	require.Len(t, notes, 3)
	assert.Equal(t, "first", notes[0]["title"])

	// Постраничная выборка.
	_, notes = doListRequest(t, app, "/notes?limit=1&offset=1", cookie)
	require.Len(t, notes, 1)
	assert.Equal(t, "third", notes[0]["title"])
}
