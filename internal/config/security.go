package config

import (
	"time"
)

// SecurityConfig содержит настройки хэширования паролей.
type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BOOKSHELF_BCRYPT_COST" env-default:"10"`
}

// RateLimitConfig содержит настройки ограничения частоты запросов по IP.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled" env:"BOOKSHELF_RATE_LIMIT_ENABLED" env-default:"false"`
	RequestsPerSec  float64       `yaml:"requests_per_sec" env:"BOOKSHELF_RATE_LIMIT_RPS" env-default:"20"`
	Burst           int           `yaml:"burst" env:"BOOKSHELF_RATE_LIMIT_BURST" env-default:"40"`
	VisitorTTL      time.Duration `yaml:"visitor_ttl" env:"BOOKSHELF_RATE_LIMIT_VISITOR_TTL" env-default:"3m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"BOOKSHELF_RATE_LIMIT_CLEANUP_INTERVAL" env-default:"1m"`
}
