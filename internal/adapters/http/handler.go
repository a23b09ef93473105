// Package http содержит HTTP транспорт сервиса bookshelf на базе fiber.
package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// Константы для логирования.
const (
	ErrorInvalidRequest = "invalid request body"
)

// bindJSON разбирает тело запроса; пустое тело оставляет dst без изменений.
func bindJSON(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s: %v", ErrorInvalidRequest, err))
	}
	return nil
}
