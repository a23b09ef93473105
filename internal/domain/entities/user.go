package entities

import (
	"time"
)

// User представляет пользователя. PasswordHash никогда не покидает сервис.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Bio          string
	BirthDate    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserWithBooks - пользователь вместе с принадлежащими ему книгами.
type UserWithBooks struct {
	User
	Books []Book
}

// NewUser содержит данные регистрации с паролем в открытом виде.
type NewUser struct {
	Email     string
	Password  string
	FullName  string
	Bio       string
	BirthDate *time.Time
}

// UserPatch содержит поля частичного обновления пользователя.
type UserPatch struct {
	Email     *string
	Password  *string
	FullName  *string
	Bio       *string
	BirthDate *time.Time
}
