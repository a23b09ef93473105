package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"bookshelf/internal/adapters/http/middleware"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHealthHandler отвечает {status: ok}, если хранилище доступно.
func NewHealthHandler(store Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := store.Ping(middleware.RequestContext(c)); err != nil {
			return fmt.Errorf("pinging store: %w", err)
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
