package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/repositories"
	"bookshelf/pkg/logger"
)

const userColumns = `id, email, password_hash, full_name, bio, birth_date, created_at, updated_at`

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row rowScanner) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Bio,
		&user.BirthDate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List возвращает всех пользователей в порядке создания.
func (r *UserRepository) List(ctx context.Context) ([]entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at, id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	if err := parseID(id); err != nil {
		log.Debug(ctx, "malformed user id", zap.String("id", id))
		return nil, err
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", mapPgError(err))
	}

	return user, nil
}

// FindWithBooks находит пользователя и присоединяет его книги одним запросом.
func (r *UserRepository) FindWithBooks(ctx context.Context, id string) (*entities.UserWithBooks, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindWithBooks"))

	if err := parseID(id); err != nil {
		log.Debug(ctx, "malformed user id", zap.String("id", id))
		return nil, err
	}

	query := `
        SELECT u.id, u.email, u.password_hash, u.full_name, u.bio, u.birth_date, u.created_at, u.updated_at,
               b.id, b.title, b.author, b.published_year, b.genre, b.summary, b.isbn, b.owner_id, b.created_at, b.updated_at
        FROM users u
        LEFT JOIN books b ON b.owner_id = u.id
        WHERE u.id = $1
        ORDER BY b.created_at, b.id
    `

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error querying user with books", zap.Error(err))
		return nil, fmt.Errorf("error querying user with books: %w", mapPgError(err))
	}
	defer rows.Close()

	var result *entities.UserWithBooks
	for rows.Next() {
		var (
			user entities.User
			book joinedBook
		)
		err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Bio,
			&user.BirthDate, &user.CreatedAt, &user.UpdatedAt,
			&book.ID, &book.Title, &book.Author, &book.PublishedYear, &book.Genre,
			&book.Summary, &book.ISBN, &book.OwnerID, &book.CreatedAt, &book.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "error scanning user with books", zap.Error(err))
			return nil, fmt.Errorf("error scanning user with books: %w", err)
		}

		if result == nil {
			result = &entities.UserWithBooks{User: user, Books: make([]entities.Book, 0)}
		}
		if b, ok := book.toEntity(); ok {
			result.Books = append(result.Books, b)
		}
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating user with books", zap.Error(err))
		return nil, fmt.Errorf("error iterating user with books: %w", err)
	}

	if result == nil {
		log.Debug(ctx, "user not found", zap.String("id", id))
		return nil, entities.ErrUserNotFound
	}

	return result, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// Create сохраняет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (email, password_hash, full_name, bio, birth_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Bio,
		user.BirthDate,
	))
	if err != nil {
		mapped := mapPgError(err)
		if errors.Is(mapped, entities.ErrConflict) {
			log.Debug(ctx, "user email already exists", zap.String("email", user.Email))
		} else {
			log.Error(ctx, "error creating user", zap.Error(err))
		}
		return nil, fmt.Errorf("error creating user: %w", mapped)
	}

	return created, nil
}

// Update перезаписывает поля пользователя, включая хэш пароля.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	if err := parseID(user.ID); err != nil {
		return nil, err
	}

	query := `
        UPDATE users
        SET email = $2, password_hash = $3, full_name = $4, bio = $5, birth_date = $6, updated_at = $7
        WHERE id = $1
        RETURNING ` + userColumns

	updated, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Bio,
		user.BirthDate,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.String("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		mapped := mapPgError(err)
		if !errors.Is(mapped, entities.ErrConflict) {
			log.Error(ctx, "error updating user", zap.Error(err))
		}
		return nil, fmt.Errorf("error updating user: %w", mapped)
	}

	return updated, nil
}

// Delete удаляет пользователя по ID. Сессии удаляются каскадно.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	if err := parseID(id); err != nil {
		return err
	}

	query := `
        DELETE FROM users
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}

// joinedBook - книга из LEFT JOIN, все колонки которой могут быть NULL.
type joinedBook struct {
	ID            *string
	Title         *string
	Author        *string
	PublishedYear *int
	Genre         *string
	Summary       *string
	ISBN          *string
	OwnerID       *string
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
}

func (j joinedBook) toEntity() (entities.Book, bool) {
	if j.ID == nil {
		return entities.Book{}, false
	}
	book := entities.Book{
		ID:            *j.ID,
		PublishedYear: j.PublishedYear,
		OwnerID:       j.OwnerID,
	}
	book.Title = deref(j.Title)
	book.Author = deref(j.Author)
	book.Genre = deref(j.Genre)
	book.Summary = deref(j.Summary)
	book.ISBN = deref(j.ISBN)
	if j.CreatedAt != nil {
		book.CreatedAt = *j.CreatedAt
	}
	if j.UpdatedAt != nil {
		book.UpdatedAt = *j.UpdatedAt
	}
	return book, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
