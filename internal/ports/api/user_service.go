package api

import (
	"context"

	"bookshelf/internal/domain/entities"
)

// UserUseCase определяет операции над пользователями.
type UserUseCase interface {
	List(ctx context.Context) ([]entities.User, error)
	Get(ctx context.Context, id string) (*entities.UserWithBooks, error)
	Create(ctx context.Context, input entities.NewUser) (*entities.User, error)
	Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error)
	Delete(ctx context.Context, id string) error
}
