package repositories

import (
	"context"

	"bookshelf/internal/domain/entities"
)

// UserRepository определяет операции хранилища для пользователей.
type UserRepository interface {
	List(ctx context.Context) ([]entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	// FindWithBooks возвращает пользователя вместе с книгами, где он указан владельцем.
	FindWithBooks(ctx context.Context, id string) (*entities.UserWithBooks, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
	Delete(ctx context.Context, id string) error
}
