package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/domain/entities"
	"bookshelf/pkg/logger"
)

// Сообщения ответов об ошибках.
const (
	MessageResourceNotFound = "Resource not found"
	MessageResourceExists   = "Resource already exist"
	MessageInternalError    = "Internal server error"
	MessageRouteNotFound    = "Route Not Found"

	LogUnhandledError = "unhandled request error"
)

// ErrorHandler переводит ошибку обработчика в HTTP ответ.
// Правила проверяются по порядку, первое совпадение определяет ответ.
func ErrorHandler(c fiber.Ctx, err error) error {
	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(validationErr.Fields)
	}

	var statusErr *entities.StatusError
	if errors.As(err, &statusErr) {
		return c.Status(statusErr.Status).JSON(fiber.Map{"message": statusErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	if errors.Is(err, entities.ErrMalformedID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": MessageResourceNotFound})
	}

	if errors.Is(err, entities.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": MessageResourceExists})
	}

	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Error(requestCtx, LogUnhandledError,
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()))

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": MessageInternalError})
}
