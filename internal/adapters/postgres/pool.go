// Package postgres реализует порты хранилища поверх pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookshelf/internal/domain/entities"
)

// Коды ошибок Postgres, которые транслируются в доменные ошибки.
const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// parseID проверяет, что id является корректным идентификатором.
func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", entities.ErrMalformedID, id)
	}
	return nil
}

// mapPgError переводит ошибки Postgres в доменные.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s: %w", entities.ErrConflict, pgErr.ConstraintName, err)
	case pgInvalidTextRepresentation:
		return fmt.Errorf("%w: %w", entities.ErrMalformedID, err)
	default:
		return err
	}
}
