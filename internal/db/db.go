// Package db поднимает базу данных сервиса: миграции и пул соединений.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"bookshelf/internal/config"
	"bookshelf/internal/resilience"
	"bookshelf/pkg/db/postgres"
	"bookshelf/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing bookshelf database"
	LogDBInitialized     = "bookshelf database initialized successfully"
	LogMigrationStarting = "starting database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply database migrations"
	ErrDBConnection = "failed to connect to database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// MigrationsURL превращает каталог миграций в source URL для golang-migrate.
func MigrationsURL(migrationsDir string) (string, error) {
	if filepath.IsAbs(migrationsDir) {
		return "file://" + migrationsDir, nil
	}
	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + absPath, nil
}

// New применяет миграции и открывает пул, повторяя попытки, пока база поднимается.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsURL(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	retry := resilience.NewRetry("postgres", resilience.DefaultRetryConfig(cfg.ConnectAttempts))

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	err = retry.Execute(ctx, func(ctx context.Context) error {
		return postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	var database *postgres.Database
	err = retry.Execute(ctx, func(ctx context.Context) error {
		var connErr error
		database, connErr = postgres.New(ctx, cfg.GetDSN(), postgres.PoolOptions{
			MinConns:        cfg.MinConn,
			MaxConns:        cfg.MaxConn,
			MaxConnLifetime: cfg.MaxConnLifetime,
		})
		return connErr
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
