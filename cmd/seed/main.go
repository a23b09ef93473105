// Package main реализует команду заполнения базы тестовыми книгами.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bookshelf/internal/adapters/postgres"
	"bookshelf/internal/app"
	"bookshelf/internal/config"
	"bookshelf/internal/db"
	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/api"
	dbpostgres "bookshelf/pkg/db/postgres"
	"bookshelf/pkg/logger"
)

// Константы для сообщений.
const (
	LogResettingSchema = "dropping existing data"
	LogSeedingBooks    = "seeding books"
	LogBookSeeded      = "book seeded"
	LogDuplicateISBN   = "duplicate isbn generated, book skipped"
	LogSeedCompleted   = "seeding completed"

	ErrResetSchema = "failed to reset schema"
	ErrSeedBook    = "failed to seed book"
)

const (
	minPublishedYear = 1500
	maxPublishedYear = 2026
)

type options struct {
	count      int
	drop       bool
	configPath string
}

func main() {
	log, err := logger.NewLogger(logger.Development, os.Getenv("BOOKSHELF_LOGGER_LEVEL"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")
	if err := newRootCommand(ctx).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(ctx context.Context) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Fill the bookshelf database with fake books",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return seed(ctx, opts)
		},
	}

	cmd.Flags().IntVar(&opts.count, "count", 1000, "Number of books to insert")
	cmd.Flags().BoolVar(&opts.drop, "drop", true, "Drop existing books, sessions and users first")
	cmd.Flags().StringVar(&opts.configPath, "config", ".env", "Path to env file")

	return cmd
}

func seed(ctx context.Context, opts options) error {
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx, opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if opts.drop {
		log.Info(ctx, LogResettingSchema, zap.String("database", cfg.Postgres.Database))
		migrationsURL, err := db.MigrationsURL(cfg.Migrations.Dir)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrResetSchema, err)
		}
		if err := dbpostgres.ResetDSN(ctx, cfg.Postgres.GetConnectionURL(), migrationsURL); err != nil {
			return fmt.Errorf("%s: %w", ErrResetSchema, err)
		}
	}

	database, err := db.New(ctx, &cfg.Postgres, cfg.Migrations.Dir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close(ctx)

	repos := postgres.NewRepositoryFactory(database.Pool())
	books := app.NewBookUseCase(repos.BookRepository(), app.NewValidator())

	log.Info(ctx, LogSeedingBooks, zap.Int("count", opts.count))
	inserted, err := seedBooks(ctx, books, gofakeit.New(0), opts.count)
	if err != nil {
		return err
	}

	log.Info(ctx, LogSeedCompleted, zap.Int("inserted", inserted))
	return nil
}

func seedBooks(ctx context.Context, books api.BookUseCase, faker *gofakeit.Faker, count int) (int, error) {
	log := logger.Log(ctx)

	inserted := 0
	for range count {
		book, err := books.Create(ctx, fakeBook(faker))
		if errors.Is(err, entities.ErrConflict) {
			log.Warn(ctx, LogDuplicateISBN)
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("%s: %w", ErrSeedBook, err)
		}
		inserted++
		log.Debug(ctx, LogBookSeeded, zap.String("title", book.Title))
	}
	return inserted, nil
}

func fakeBook(faker *gofakeit.Faker) *entities.Book {
	year := faker.Number(minPublishedYear, maxPublishedYear)
	return &entities.Book{
		Title:         faker.BookTitle(),
		Author:        faker.BookAuthor(),
		Genre:         faker.BookGenre(),
		Summary:       faker.Sentence(12),
		PublishedYear: &year,
		ISBN:          faker.Numerify("978-#-###-#####-#"),
	}
}
