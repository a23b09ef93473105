// Package config содержит конфигурацию сервиса bookshelf.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "bookshelf/pkg/config"
	"bookshelf/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "bookshelf"

	LogConfigLoaded     = "configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load configuration"

	testDatabaseSuffix = "_test"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	App        AppConfig        `yaml:"app"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
	Redis      RedisConfig      `yaml:"redis"`
	Security   SecurityConfig   `yaml:"security"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// Load загружает конфигурацию из env-файла и переменных окружения.
// В тестовом окружении к имени базы данных добавляется суффикс _test.
func Load(ctx context.Context, envPath string) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	cfg.applyEnvironment()

	log.Info(ctx, LogConfigLoaded,
		zap.String("env", string(cfg.App.Env)),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_database", cfg.Postgres.Database),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled))

	return cfg, nil
}

func (c *Config) applyEnvironment() {
	if c.App.IsTest() {
		c.Postgres.Database += testDatabaseSuffix
	}
}
