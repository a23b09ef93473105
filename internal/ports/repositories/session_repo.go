package repositories

import (
	"context"

	"bookshelf/internal/domain/entities"
)

// SessionRepository определяет операции хранилища для сессий.
type SessionRepository interface {
	Create(ctx context.Context, userID string) (*entities.Session, error)
	// FindByID возвращает сессию с присоединенным пользователем.
	FindByID(ctx context.Context, id string) (*entities.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteAllByUser возвращает идентификаторы удаленных сессий.
	DeleteAllByUser(ctx context.Context, userID string) ([]string, error)
}
