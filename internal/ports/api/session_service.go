package api

import (
	"context"

	"bookshelf/internal/domain/entities"
)

// SessionUseCase управляет сессиями пользователей.
type SessionUseCase interface {
	Login(ctx context.Context, email, password string) (*entities.Session, error)
	Resolve(ctx context.Context, sessionID string) (*entities.Session, error)
	Logout(ctx context.Context, sessionID string) error
	LogoutAll(ctx context.Context, userID string) error
}
