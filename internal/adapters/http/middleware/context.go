// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"bookshelf/internal/domain/entities"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const (
	localsRequestContext = "requestContext"
	localsSession        = "session"
)

// RequestContext возвращает контекст запроса с request_id, выставленный logger middleware.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// SessionFromContext возвращает сессию, прикрепленную auth middleware.
func SessionFromContext(c fiber.Ctx) (*entities.Session, bool) {
	session, ok := c.Locals(localsSession).(*entities.Session)
	return session, ok && session != nil
}
