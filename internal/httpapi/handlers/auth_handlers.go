package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/auth/app"
	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/ports/api"
	"notekeeper/internal/httpapi/dto"
	"notekeeper/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"
	LogHandlerLogout   = "auth handler: logout"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// AuthHandler содержит HTTP обработчики для аутентификации.
type AuthHandler struct {
	authUC     api.AuthUseCase
	cookieName string
	sessionTTL time.Duration
}

// NewAuthHandler создает новый экземпляр обработчика аутентификации.
func NewAuthHandler(authUC api.AuthUseCase, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authUC:     authUC,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{
			Detail: dto.MsgMalformedBody,
		})
	}

	if errs := req.Validate(); !errs.Empty() {
		return ctx.Status(fiber.StatusBadRequest).JSON(errs)
	}

	_, err := h.authUC.Register(requestCtx, *req.Username, req.GetEmail(), *req.Password)
	if err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			errs := dto.FieldErrors{}
			errs.Add("username", dto.MsgUsernameTaken)
			return ctx.Status(fiber.StatusBadRequest).JSON(errs)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{
			Detail: "Internal Server Error",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.DetailResponse{
		Detail: dto.MsgRegistered,
	})
}

// Login обрабатывает запрос на вход пользователя и устанавливает сессионный cookie.
func (h *AuthHandler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{
			Detail: dto.MsgMalformedBody,
		})
	}

	if errs := req.Validate(); !errs.Empty() {
		return ctx.Status(fiber.StatusBadRequest).JSON(errs)
	}

	token, _, err := h.authUC.Login(requestCtx, *req.Username, *req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
				Detail: dto.MsgInvalidCredentials,
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{
			Detail: "Internal Server Error",
		})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctx.Status(fiber.StatusOK).JSON(dto.DetailResponse{
		Detail: dto.MsgLoggedIn,
	})
}

// Logout обрабатывает запрос на выход пользователя. Требует аутентификации.
func (h *AuthHandler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	token := ctx.Cookies(h.cookieName)
	if err := h.authUC.Logout(requestCtx, token); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{
			Detail: "Internal Server Error",
		})
	}

	// Немедленно гасим cookie на клиенте.
	ctx.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctx.Status(fiber.StatusOK).JSON(dto.DetailResponse{
		Detail: dto.MsgLoggedOut,
	})
}
