// Package main реализует точку входа HTTP сервиса bookshelf.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"bookshelf/internal/adapters/cache"
	httpadapter "bookshelf/internal/adapters/http"
	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/adapters/postgres"
	"bookshelf/internal/adapters/services"
	"bookshelf/internal/app"
	"bookshelf/internal/config"
	"bookshelf/internal/db"
	portcache "bookshelf/internal/ports/cache"
	"bookshelf/pkg/logger"
	"bookshelf/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BOOKSHELF_LOGGER_MODE"
	EnvLoggerLevel = "BOOKSHELF_LOGGER_LEVEL"
	EnvConfigPath  = "BOOKSHELF_CONFIG_PATH"

	defaultConfigPath = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "bookshelf service started"
	LogServiceShutdownDone = "bookshelf service shutdown complete"
	LogInitDB              = "initializing database"
	LogInitCache           = "initializing session cache"
	LogCacheDisabled       = "session cache disabled"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogListenerSuppressed  = "test environment, HTTP listener not started"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogClosingDB           = "closing database connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int
	func() {
		defer func() { syncLogger(logger.Log(ctx)) }()
		exitCode = run(ctx)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func run(ctx context.Context) int {
	log := logger.Log(ctx)

	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return 1
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.App.Env)),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	log.Info(ctx, LogInitDB)
	database, err := db.New(ctx, &cfg.Postgres, cfg.Migrations.Dir)
	if err != nil {
		log.Error(ctx, ErrInitDB, zap.Error(err))
		return 1
	}

	var sessionCache portcache.SessionCache
	if cfg.Redis.Enabled {
		log.Info(ctx, LogInitCache, zap.String("address", cfg.Redis.GetAddress()))
		sessionCache, err = cache.NewRedisSessionCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			return 1
		}
	} else {
		log.Info(ctx, LogCacheDisabled)
	}

	log.Info(ctx, LogInitServices)
	repos := postgres.NewRepositoryFactory(database.Pool())
	passwords := services.NewBcrypt(cfg.Security.BcryptCost)
	validator := app.NewValidator()

	bookUseCase := app.NewBookUseCase(repos.BookRepository(), validator)
	userUseCase := app.NewUserUseCase(repos.UserRepository(), passwords, validator)
	sessionUseCase := app.NewSessionUseCase(repos.SessionRepository(), repos.UserRepository(), passwords, sessionCache)

	log.Info(ctx, LogInitHTTPServer)
	serverCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()

	deps := httpadapter.Dependencies{
		Books:        bookUseCase,
		Users:        userUseCase,
		Sessions:     sessionUseCase,
		Store:        database,
		SecureCookie: cfg.App.IsProduction(),
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit)
		go deps.RateLimiter.Run(serverCtx)
	}

	fiberApp := httpadapter.NewApp(&cfg.HTTP)
	httpadapter.SetupRouter(fiberApp, deps)

	if cfg.App.IsTest() {
		log.Info(ctx, LogListenerSuppressed)
	} else {
		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				stopServer()
			}
		}()
	}

	shutdown.Wait(serverCtx, cfg.Shutdown.GetTimeout(),
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return fiberApp.ShutdownWithContext(ctx)
		},
		func(ctx context.Context) error {
			if sessionCache == nil {
				return nil
			}
			log.Info(ctx, LogClosingRedis)
			return sessionCache.Close()
		},
		func(ctx context.Context) error {
			log.Info(ctx, LogClosingDB)
			database.Close(ctx)
			return nil
		},
	)

	log.Info(ctx, LogServiceShutdownDone)
	return 0
}

func syncLogger(log *logger.Logger) {
	err := log.Sync()
	if err == nil {
		return
	}
	errMsg := err.Error()
	if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
		return
	}
	if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
		panic(writeErr)
	}
}
