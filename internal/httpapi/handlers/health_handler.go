// Package handlers содержит HTTP обработчики сервиса заметок.
package handlers

import (
	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/httpapi/dto"
)

// Health сообщает, что сервер работает.
func Health(ctx fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": dto.MsgServerUp,
	})
}
