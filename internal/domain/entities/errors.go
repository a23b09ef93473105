package entities

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// FieldError описывает ошибку валидации одного поля.
type FieldError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
}

// ValidationError - ошибка валидации, сгруппированная по полям.
type ValidationError struct {
	Fields map[string]FieldError
}

// NewValidationError создает пустую ошибку валидации.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]FieldError)}
}

// Add регистрирует ошибку поля; первая ошибка поля сохраняется.
func (e *ValidationError) Add(path, kind, message string) {
	if _, exists := e.Fields[path]; exists {
		return
	}
	e.Fields[path] = FieldError{Message: message, Kind: kind, Path: path}
}

// HasErrors сообщает, есть ли ошибки.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	messages := make([]string, 0, len(paths))
	for _, path := range paths {
		messages = append(messages, path+": "+e.Fields[path].Message)
	}
	return "validation failed: " + strings.Join(messages, ", ")
}

// StatusError - ошибка, явно несущая HTTP статус и сообщение для клиента.
type StatusError struct {
	Status  int
	Message string
}

// NewStatusError создает ошибку с явным статусом.
func NewStatusError(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

func (e *StatusError) Error() string {
	return e.Message
}

// Ошибки с явным статусом.
var (
	ErrBookNotFound       = NewStatusError(http.StatusNotFound, "Book not found")
	ErrUserNotFound       = NewStatusError(http.StatusNotFound, "User not found")
	ErrUnauthorized       = NewStatusError(http.StatusUnauthorized, "unauthorized")
	ErrMissingCredentials = NewStatusError(http.StatusBadRequest, "missing mail or password")
	ErrTooManyRequests    = NewStatusError(http.StatusTooManyRequests, "Too many requests")
)

// Ошибки хранилища.
var (
	ErrMalformedID     = errors.New("malformed identifier")
	ErrConflict        = errors.New("unique constraint violation")
	ErrSessionNotFound = errors.New("session not found")
)
