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

const bookColumns = `id, title, author, published_year, genre, summary, isbn, owner_id, created_at, updated_at`

// BookRepository реализует repositories.BookRepository для Postgres.
type BookRepository struct {
	pool PgxPoolInterface
}

// NewBookRepository создает репозиторий книг.
func NewBookRepository(pool PgxPoolInterface) repositories.BookRepository {
	return &BookRepository{pool: pool}
}

func scanBook(row rowScanner) (*entities.Book, error) {
	var book entities.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.PublishedYear,
		&book.Genre,
		&book.Summary,
		&book.ISBN,
		&book.OwnerID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List возвращает все книги в порядке создания.
func (r *BookRepository) List(ctx context.Context) ([]entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "List"))

	query := `
        SELECT ` + bookColumns + `
        FROM books
        ORDER BY created_at, id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing books", zap.Error(err))
		return nil, fmt.Errorf("error querying books: %w", err)
	}
	defer rows.Close()

	books := make([]entities.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error(ctx, "error scanning book", zap.Error(err))
			return nil, fmt.Errorf("error scanning book: %w", err)
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating books", zap.Error(err))
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// FindByID находит книгу по ID.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "FindByID"))

	if err := parseID(id); err != nil {
		log.Debug(ctx, "malformed book id", zap.String("id", id))
		return nil, err
	}

	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE id = $1
    `

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found", zap.String("id", id))
			return nil, entities.ErrBookNotFound
		}
		log.Error(ctx, "error finding book by id", zap.Error(err))
		return nil, fmt.Errorf("error querying book by id: %w", mapPgError(err))
	}

	return book, nil
}

// Create сохраняет новую книгу.
func (r *BookRepository) Create(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Create"))

	query := `
        INSERT INTO books (title, author, published_year, genre, summary, isbn, owner_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.PublishedYear,
		book.Genre,
		book.Summary,
		book.ISBN,
		book.OwnerID,
	))
	if err != nil {
		mapped := mapPgError(err)
		if errors.Is(mapped, entities.ErrConflict) {
			log.Debug(ctx, "book isbn already exists", zap.String("isbn", book.ISBN))
		} else {
			log.Error(ctx, "error creating book", zap.Error(err))
		}
		return nil, fmt.Errorf("error creating book: %w", mapped)
	}

	return created, nil
}

// Update перезаписывает изменяемые поля книги.
func (r *BookRepository) Update(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Update"))

	if err := parseID(book.ID); err != nil {
		return nil, err
	}

	query := `
        UPDATE books
        SET title = $2, author = $3, published_year = $4, genre = $5, summary = $6,
            isbn = $7, owner_id = $8, updated_at = $9
        WHERE id = $1
        RETURNING ` + bookColumns

	updated, err := scanBook(r.pool.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.PublishedYear,
		book.Genre,
		book.Summary,
		book.ISBN,
		book.OwnerID,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found for update", zap.String("id", book.ID))
			return nil, entities.ErrBookNotFound
		}
		mapped := mapPgError(err)
		if !errors.Is(mapped, entities.ErrConflict) {
			log.Error(ctx, "error updating book", zap.Error(err))
		}
		return nil, fmt.Errorf("error updating book: %w", mapped)
	}

	return updated, nil
}

// Delete удаляет книгу по ID.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Delete"))

	if err := parseID(id); err != nil {
		return err
	}

	query := `
        DELETE FROM books
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting book", zap.Error(err))
		return fmt.Errorf("error deleting book: %w", mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "book not found for deletion", zap.String("id", id))
		return entities.ErrBookNotFound
	}

	return nil
}
