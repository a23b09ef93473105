// Package api определяет сценарии использования, доступные транспортному слою.
package api

import (
	"context"

	"bookshelf/internal/domain/entities"
)

// BookUseCase определяет операции над книгами.
type BookUseCase interface {
	List(ctx context.Context) ([]entities.Book, error)
	Get(ctx context.Context, id string) (*entities.Book, error)
	Create(ctx context.Context, book *entities.Book) (*entities.Book, error)
	Update(ctx context.Context, id string, patch entities.BookPatch) (*entities.Book, error)
	Delete(ctx context.Context, id string) error
}
