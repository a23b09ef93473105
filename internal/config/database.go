package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"BOOKSHELF_POSTGRES_HOST" env-default:"127.0.0.1"`
	Port            int           `yaml:"port" env:"BOOKSHELF_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"BOOKSHELF_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"BOOKSHELF_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"BOOKSHELF_POSTGRES_DB" env-default:"booksdb"`
	SSLMode         string        `yaml:"ssl_mode" env:"BOOKSHELF_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn         int           `yaml:"min_conn" env:"BOOKSHELF_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"BOOKSHELF_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"BOOKSHELF_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	ConnectAttempts int           `yaml:"connect_attempts" env:"BOOKSHELF_POSTGRES_CONNECT_ATTEMPTS" env-default:"5"`
}

// GetDSN возвращает строку подключения для pgx.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

// MigrationsConfig указывает каталог с SQL миграциями.
type MigrationsConfig struct {
	Dir string `yaml:"dir" env:"BOOKSHELF_MIGRATIONS_DIR" env-default:"migrations"`
}
