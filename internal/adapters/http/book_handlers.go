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
	LogHandlerListBooks  = "book handler: list"
	LogHandlerGetBook    = "book handler: get"
	LogHandlerCreateBook = "book handler: create"
	LogHandlerUpdateBook = "book handler: update"
	LogHandlerDeleteBook = "book handler: delete"
)

// BookHandler содержит HTTP обработчики для книг.
type BookHandler struct {
	books api.BookUseCase
}

// NewBookHandler создает обработчик книг.
func NewBookHandler(books api.BookUseCase) *BookHandler {
	return &BookHandler{books: books}
}

// List возвращает все книги.
func (h *BookHandler) List(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListBooks)

	books, err := h.books.List(requestCtx)
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}
	return c.JSON(newBookResponses(books))
}

// Get возвращает книгу по id.
func (h *BookHandler) Get(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetBook, zap.String("book_id", c.Params("id")))

	book, err := h.books.Get(requestCtx, c.Params("id"))
	if err != nil {
		return fmt.Errorf("getting book: %w", err)
	}
	return c.JSON(newBookResponse(book))
}

// Create создает книгу.
func (h *BookHandler) Create(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreateBook)

	var req BookRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	book, err := h.books.Create(requestCtx, req.toBook())
	if err != nil {
		return fmt.Errorf("creating book: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newBookResponse(book))
}

// Update применяет частичное изменение книги.
func (h *BookHandler) Update(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerUpdateBook, zap.String("book_id", c.Params("id")))

	var req BookRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	book, err := h.books.Update(requestCtx, c.Params("id"), req.toPatch())
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return c.JSON(newBookResponse(book))
}

// Delete удаляет книгу. Отсутствующая книга описывается полем error.
func (h *BookHandler) Delete(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteBook, zap.String("book_id", c.Params("id")))

	if err := h.books.Delete(requestCtx, c.Params("id")); err != nil {
		if errors.Is(err, entities.ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": entities.ErrBookNotFound.Message})
		}
		return fmt.Errorf("deleting book: %w", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
