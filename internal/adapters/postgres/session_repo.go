package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/repositories"
	"bookshelf/pkg/logger"
)

// SessionRepository реализует repositories.SessionRepository для Postgres.
type SessionRepository struct {
	pool PgxPoolInterface
}

// NewSessionRepository создает репозиторий сессий.
func NewSessionRepository(pool PgxPoolInterface) repositories.SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create открывает новую сессию пользователя.
func (r *SessionRepository) Create(ctx context.Context, userID string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "Create"))

	if err := parseID(userID); err != nil {
		return nil, err
	}

	query := `
        INSERT INTO sessions (user_id)
        VALUES ($1)
        RETURNING id, user_id, created_at
    `

	var session entities.Session
	err := r.pool.QueryRow(ctx, query, userID).Scan(&session.ID, &session.UserID, &session.CreatedAt)
	if err != nil {
		log.Error(ctx, "error creating session", zap.Error(err))
		return nil, fmt.Errorf("error creating session: %w", mapPgError(err))
	}

	return &session, nil
}

// FindByID находит сессию вместе с ее пользователем.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "FindByID"))

	if err := parseID(id); err != nil {
		log.Debug(ctx, "malformed session id")
		return nil, err
	}

	query := `
        SELECT s.id, s.user_id, s.created_at,
               u.id, u.email, u.password_hash, u.full_name, u.bio, u.birth_date, u.created_at, u.updated_at
        FROM sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.id = $1
    `

	var (
		session entities.Session
		user    entities.User
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.CreatedAt,
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Bio,
		&user.BirthDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "session not found")
			return nil, entities.ErrSessionNotFound
		}
		log.Error(ctx, "error finding session", zap.Error(err))
		return nil, fmt.Errorf("error querying session: %w", mapPgError(err))
	}

	session.User = &user
	return &session, nil
}

// Delete закрывает одну сессию.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "Delete"))

	if err := parseID(id); err != nil {
		return err
	}

	query := `
        DELETE FROM sessions
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting session", zap.Error(err))
		return fmt.Errorf("error deleting session: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "session not found for deletion")
		return entities.ErrSessionNotFound
	}

	return nil
}

// DeleteAllByUser закрывает все сессии пользователя и возвращает их идентификаторы.
func (r *SessionRepository) DeleteAllByUser(ctx context.Context, userID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "DeleteAllByUser"))

	if err := parseID(userID); err != nil {
		return nil, err
	}

	query := `
        DELETE FROM sessions
        WHERE user_id = $1
        RETURNING id
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		log.Error(ctx, "error deleting user sessions", zap.Error(err))
		return nil, fmt.Errorf("error deleting user sessions: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error(ctx, "error scanning session id", zap.Error(err))
			return nil, fmt.Errorf("error scanning session id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating deleted sessions", zap.Error(err))
		return nil, fmt.Errorf("error iterating deleted sessions: %w", err)
	}

	log.Debug(ctx, "user sessions deleted", zap.Int("count", len(ids)))
	return ids, nil
}
