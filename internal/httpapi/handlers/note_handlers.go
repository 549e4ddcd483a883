package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notekeeper/internal/httpapi/dto"
	"notekeeper/internal/httpapi/middleware"
	notesapp "notekeeper/internal/notes/app"
	"notekeeper/internal/notes/ports/api"
	"notekeeper/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListNotes  = "note handler: list"
	LogHandlerCreateNote = "note handler: create"
	LogHandlerGetNote    = "note handler: get"
	LogHandlerUpdateNote = "note handler: update"
	LogHandlerDeleteNote = "note handler: delete"
)

// NoteHandler содержит HTTP обработчики для работы с заметками.
type NoteHandler struct {
	noteUC api.NoteUseCase
}

// NewNoteHandler создает новый экземпляр обработчика заметок.
func NewNoteHandler(noteUC api.NoteUseCase) *NoteHandler {
	return &NoteHandler{noteUC: noteUC}
}

// List возвращает заметки текущего пользователя, отсортированные по
// убыванию updated_at. limit и offset - необязательные параметры запроса.
func (h *NoteHandler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListNotes)

	user, ok := middleware.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
			Detail: dto.MsgNotAuthenticated,
		})
	}

	limit, _ := strconv.Atoi(ctx.Query("limit", "0"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	notes, _, err := h.noteUC.ListNotes(requestCtx, user.ID, limit, offset)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{
			Detail: "Internal Server Error",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewNoteListResponse(notes, user.Username))
}

// Create создает новую заметку, принадлежащую текущему пользователю.
func (h *NoteHandler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateNote)

	user, ok := middleware.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
			Detail: dto.MsgNotAuthenticated,
		})
	}

	var req dto.CreateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{
			Detail: dto.MsgMalformedBody,
		})
	}

	if errs := req.Validate(); !errs.Empty() {
		return ctx.Status(fiber.StatusBadRequest).JSON(errs)
	}

	note, err := h.noteUC.CreateNote(requestCtx, user.ID, *req.Title, *req.Content)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{
			Detail: "Internal Server Error",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.NewNoteResponse(note, user.Username))
}

// Get возвращает заметку по ID. Чужая заметка неотличима от несуществующей.
func (h *NoteHandler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetNote)

	user, ok := middleware.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
			Detail: dto.MsgNotAuthenticated,
		})
	}

	noteID, ok := noteIDParam(ctx)
	if !ok {
		return notFound(ctx)
	}

	note, err := h.noteUC.GetNote(requestCtx, user.ID, noteID)
	if err != nil {
		if errors.Is(err, notesapp.ErrNotFound) {
			return notFound(ctx)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{
			Detail: "Internal Server Error",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewNoteResponse(note, user.Username))
}

// Put полностью обновляет заметку: оба поля обязательны.
func (h *NoteHandler) Put(ctx fiber.Ctx) error {
	return h.update(ctx, true)
}

// Patch частично обновляет заметку: отсутствующие поля не изменяются.
func (h *NoteHandler) Patch(ctx fiber.Ctx) error {
	return h.update(ctx, false)
}

func (h *NoteHandler) update(ctx fiber.Ctx, full bool) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateNote)

	user, ok := middleware.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
			Detail: dto.MsgNotAuthenticated,
		})
	}

	noteID, ok := noteIDParam(ctx)
	if !ok {
		return notFound(ctx)
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{
			Detail: dto.MsgMalformedBody,
		})
	}

	var errs dto.FieldErrors
	if full {
		errs = req.ValidateFull()
	} else {
		errs = req.ValidatePartial()
	}
	if !errs.Empty() {
		return ctx.Status(fiber.StatusBadRequest).JSON(errs)
	}

	note, err := h.noteUC.UpdateNote(requestCtx, user.ID, noteID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, notesapp.ErrNotFound) {
			return notFound(ctx)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{
			Detail: "Internal Server Error",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewNoteResponse(note, user.Username))
}

// Delete удаляет заметку.
func (h *NoteHandler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteNote)

	user, ok := middleware.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
			Detail: dto.MsgNotAuthenticated,
		})
	}

	noteID, ok := noteIDParam(ctx)
	if !ok {
		return notFound(ctx)
	}

	if err := h.noteUC.DeleteNote(requestCtx, user.ID, noteID); err != nil {
		if errors.Is(err, notesapp.ErrNotFound) {
			return notFound(ctx)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{
			Detail: "Internal Server Error",
		})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// noteIDParam извлекает и проверяет параметр пути id.
// Синтаксически невалидный id неотличим от несуществующего.
func noteIDParam(ctx fiber.Ctx) (string, bool) {
	id := ctx.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func notFound(ctx fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{
		Detail: dto.MsgNotFound,
	})
}
