// Package repositories определяет порты хранилища.
package repositories

import (
	"context"

	"bookshelf/internal/domain/entities"
)

// BookRepository определяет операции хранилища для книг.
type BookRepository interface {
	List(ctx context.Context) ([]entities.Book, error)
	FindByID(ctx context.Context, id string) (*entities.Book, error)
	Create(ctx context.Context, book *entities.Book) (*entities.Book, error)
	Update(ctx context.Context, book *entities.Book) (*entities.Book, error)
	Delete(ctx context.Context, id string) error
}
