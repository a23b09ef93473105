package postgres

import (
	"bookshelf/internal/ports/repositories"
)

// RepositoryFactory создает все репозитории поверх одного пула.
type RepositoryFactory struct {
	bookRepo    repositories.BookRepository
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		bookRepo:    NewBookRepository(pool),
		userRepo:    NewUserRepository(pool),
		sessionRepo: NewSessionRepository(pool),
	}
}

// BookRepository возвращает репозиторий книг.
func (f *RepositoryFactory) BookRepository() repositories.BookRepository {
	return f.bookRepo
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// SessionRepository возвращает репозиторий сессий.
func (f *RepositoryFactory) SessionRepository() repositories.SessionRepository {
	return f.sessionRepo
}
