// Package app содержит сценарии использования сервиса bookshelf.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/api"
	"bookshelf/internal/ports/repositories"
	"bookshelf/pkg/logger"
)

const (
	methodListBooks  = "ListBooks"
	methodCreateBook = "CreateBook"
	methodUpdateBook = "UpdateBook"
	methodDeleteBook = "DeleteBook"

	msgBookCreated   = "book created"
	msgBookUpdated   = "book updated"
	msgBookDeleted   = "book deleted"
	msgBookInvalid   = "book failed validation"
	msgBookListError = "failed to list books"

	errCtxListingBooks   = "listing books"
	errCtxFindingBook    = "finding book"
	errCtxValidatingBook = "validating book"
	errCtxCreatingBook   = "creating book"
	errCtxUpdatingBook   = "updating book"
	errCtxDeletingBook   = "deleting book"
)

// BookUseCaseImpl реализует api.BookUseCase.
type BookUseCaseImpl struct {
	bookRepo  repositories.BookRepository
	validator *Validator
}

// NewBookUseCase создает сценарии работы с книгами.
func NewBookUseCase(bookRepo repositories.BookRepository, validator *Validator) api.BookUseCase {
	return &BookUseCaseImpl{bookRepo: bookRepo, validator: validator}
}

// List возвращает все книги.
func (b *BookUseCaseImpl) List(ctx context.Context) ([]entities.Book, error) {
	books, err := b.bookRepo.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgBookListError, zap.String("method", methodListBooks), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingBooks, err)
	}
	return books, nil
}

// Get возвращает книгу по ID.
func (b *BookUseCaseImpl) Get(ctx context.Context, id string) (*entities.Book, error) {
	book, err := b.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingBook, err)
	}
	return book, nil
}

// Create проверяет и сохраняет новую книгу.
func (b *BookUseCaseImpl) Create(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateBook))

	trimBook(book)
	if err := b.validator.Book(book); err != nil {
		log.Debug(ctx, msgBookInvalid, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingBook, err)
	}

	created, err := b.bookRepo.Create(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBook, err)
	}

	log.Debug(ctx, msgBookCreated, zap.String("book_id", created.ID), zap.String("title", created.Title))
	return created, nil
}

// Update применяет переданные поля к книге и проверяет результат целиком.
func (b *BookUseCaseImpl) Update(ctx context.Context, id string, patch entities.BookPatch) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateBook), zap.String("book_id", id))

	book, err := b.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingBook, err)
	}

	patch.Apply(book)
	trimBook(book)
	if err := b.validator.Book(book); err != nil {
		log.Debug(ctx, msgBookInvalid, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingBook, err)
	}

	updated, err := b.bookRepo.Update(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingBook, err)
	}

	log.Debug(ctx, msgBookUpdated)
	return updated, nil
}

// Delete удаляет книгу по ID.
func (b *BookUseCaseImpl) Delete(ctx context.Context, id string) error {
	if err := b.bookRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingBook, err)
	}
	logger.Log(ctx).Debug(ctx, msgBookDeleted, zap.String("method", methodDeleteBook), zap.String("book_id", id))
	return nil
}

func trimBook(book *entities.Book) {
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)
	book.Genre = strings.TrimSpace(book.Genre)
	book.Summary = strings.TrimSpace(book.Summary)
	book.ISBN = strings.TrimSpace(book.ISBN)
}
