package entities

import (
	"time"
)

// Session - серверная запись об одном входе пользователя.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	User      *User
}
