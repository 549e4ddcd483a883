// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/ports/api"
	"notekeeper/internal/httpapi/dto"
	"notekeeper/pkg/logger"
)

// IdentityKey - ключ Locals, под которым хранится аутентифицированный пользователь.
const IdentityKey = "identity"

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoSessionCookie = "no session cookie provided"
	ErrorInvalidSession  = "session could not be resolved"
)

// NewAuthMiddleware создает промежуточное ПО, разрешающее сессионный cookie
// в идентичность пользователя. Идентичность разрешается один раз на запрос.
func NewAuthMiddleware(authUC api.AuthUseCase, cookieName string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token := ctx.Cookies(cookieName)
		if token == "" {
			log.Debug(requestCtx, ErrorNoSessionCookie)
			return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
				Detail: dto.MsgNotAuthenticated,
			})
		}

		user, err := authUC.ResolveSession(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidSession, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
				Detail: dto.MsgNotAuthenticated,
			})
		}

		ctx.Locals(IdentityKey, user)

		return ctx.Next()
	}
}

// IdentityFromCtx извлекает аутентифицированного пользователя из запроса.
func IdentityFromCtx(ctx fiber.Ctx) (*entities.User, bool) {
	user, ok := ctx.Locals(IdentityKey).(*entities.User)
	return user, ok
}
