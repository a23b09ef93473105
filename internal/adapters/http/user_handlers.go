package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/api"
	"bookshelf/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListUsers  = "user handler: list"
	LogHandlerGetUser    = "user handler: get"
	LogHandlerCreateUser = "user handler: create"
	LogHandlerUpdateUser = "user handler: update"
	LogHandlerDeleteUser = "user handler: delete"
)

// UserHandler содержит HTTP обработчики для пользователей.
type UserHandler struct {
	users api.UserUseCase
}

// NewUserHandler создает обработчик пользователей.
func NewUserHandler(users api.UserUseCase) *UserHandler {
	return &UserHandler{users: users}
}

// List возвращает всех пользователей без книг.
func (h *UserHandler) List(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListUsers)

	users, err := h.users.List(requestCtx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}
	return c.JSON(newUserResponses(users))
}

// Get возвращает пользователя вместе с его книгами.
func (h *UserHandler) Get(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetUser, zap.String("user_id", c.Params("id")))

	user, err := h.users.Get(requestCtx, c.Params("id"))
	if err != nil {
		return fmt.Errorf("getting user: %w", err)
	}
	return c.JSON(newUserDetailResponse(user))
}

// Create регистрирует пользователя.
func (h *UserHandler) Create(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreateUser)

	var req UserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	input, err := req.toNewUser()
	if err != nil {
		return err
	}

	user, err := h.users.Create(requestCtx, input)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

// Update применяет частичное изменение пользователя.
func (h *UserHandler) Update(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerUpdateUser, zap.String("user_id", c.Params("id")))

	var req UserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	patch, err := req.toPatch()
	if err != nil {
		return err
	}

	user, err := h.users.Update(requestCtx, c.Params("id"), patch)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return c.JSON(newUserResponse(user))
}

// Delete удаляет пользователя. Отсутствующий пользователь описывается полем error.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteUser, zap.String("user_id", c.Params("id")))

	if err := h.users.Delete(requestCtx, c.Params("id")); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": entities.ErrUserNotFound.Message})
		}
		return fmt.Errorf("deleting user: %w", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
