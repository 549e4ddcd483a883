// Package httpapi содержит компоненты HTTP сервера.
package httpapi

import (
	"github.com/gofiber/fiber/v3"

	authapi "notekeeper/internal/auth/ports/api"
	"notekeeper/internal/config"
	"notekeeper/internal/httpapi/dto"
	"notekeeper/internal/httpapi/handlers"
	"notekeeper/internal/httpapi/middleware"
	notesapi "notekeeper/internal/notes/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, authUC authapi.AuthUseCase, noteUC notesapi.NoteUseCase, sessionCfg *config.SessionConfig) {
	authHandler := handlers.NewAuthHandler(authUC, sessionCfg.CookieName, sessionCfg.TTL)
	noteHandler := handlers.NewNoteHandler(noteUC)
	requireAuth := middleware.NewAuthMiddleware(authUC, sessionCfg.CookieName)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", handlers.Health)

	// Auth routes (выход требует аутентификации).
	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout, requireAuth)

	// Защищенные маршруты заметок.
	noteRoutes := app.Group("/notes")
	noteRoutes.Use(requireAuth)
	noteRoutes.Get("/", noteHandler.List)
	noteRoutes.Post("/", noteHandler.Create)
	noteRoutes.Get("/:id", noteHandler.Get)
	noteRoutes.Put("/:id", noteHandler.Put)
	noteRoutes.Patch("/:id", noteHandler.Patch)
	noteRoutes.Delete("/:id", noteHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{
			Detail: dto.MsgNotFound,
		})
	})
}
