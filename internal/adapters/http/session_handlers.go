package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/api"
	"bookshelf/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerLogin     = "session handler: login"
	LogHandlerProfile   = "session handler: profile"
	LogHandlerLogout    = "session handler: logout"
	LogHandlerLogoutAll = "session handler: logout all"
)

// SessionHandler содержит обработчики входа, выхода и профиля.
type SessionHandler struct {
	sessions     api.SessionUseCase
	secureCookie bool
}

// NewSessionHandler создает обработчик сессий. secureCookie выставляет флаг Secure у cookie.
func NewSessionHandler(sessions api.SessionUseCase, secureCookie bool) *SessionHandler {
	return &SessionHandler{sessions: sessions, secureCookie: secureCookie}
}

// Login открывает сессию и выдает cookie sessionId.
func (h *SessionHandler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogin)

	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	session, err := h.sessions.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secureCookie,
	})
	return c.Status(fiber.StatusOK).Send(nil)
}

// Profile возвращает пользователя текущей сессии.
func (h *SessionHandler) Profile(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerProfile)

	session, ok := middleware.SessionFromContext(c)
	if !ok || session.User == nil {
		return entities.ErrUnauthorized
	}
	return c.JSON(newUserResponse(session.User))
}

// Logout закрывает текущую сессию.
func (h *SessionHandler) Logout(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogout)

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return entities.ErrUnauthorized
	}

	if err := h.sessions.Logout(requestCtx, session.ID); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	c.ClearCookie(middleware.SessionCookie)
	return c.SendStatus(fiber.StatusNoContent)
}

// LogoutAll закрывает все сессии текущего пользователя.
func (h *SessionHandler) LogoutAll(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogoutAll)

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return entities.ErrUnauthorized
	}

	if err := h.sessions.LogoutAll(requestCtx, session.UserID); err != nil {
		return fmt.Errorf("logging out everywhere: %w", err)
	}

	c.ClearCookie(middleware.SessionCookie)
	return c.SendStatus(fiber.StatusNoContent)
}
