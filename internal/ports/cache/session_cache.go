// Package cache определяет интерфейсы для кэширования.
package cache

import (
	"context"

	"bookshelf/internal/domain/entities"
)

// SessionCache хранит соответствие идентификатора сессии ее владельцу.
// Get возвращает nil без ошибки при промахе.
type SessionCache interface {
	Get(ctx context.Context, sessionID string) (*entities.Session, error)
	Set(ctx context.Context, session *entities.Session) error
	Delete(ctx context.Context, sessionIDs ...string) error
	Close() error
}
