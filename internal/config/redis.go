package config

import (
	"net"
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию кэша сессий в Redis.
type RedisConfig struct {
	Enabled         bool          `yaml:"enabled" env:"BOOKSHELF_REDIS_ENABLED" env-default:"false"`
	Host            string        `yaml:"host" env:"BOOKSHELF_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"BOOKSHELF_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"BOOKSHELF_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"BOOKSHELF_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"BOOKSHELF_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"BOOKSHELF_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"BOOKSHELF_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"BOOKSHELF_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"BOOKSHELF_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"BOOKSHELF_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"BOOKSHELF_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	SessionTTL      time.Duration `yaml:"session_ttl" env:"BOOKSHELF_REDIS_SESSION_TTL" env-default:"15m"`
	KeyPrefix       string        `yaml:"key_prefix" env:"BOOKSHELF_REDIS_KEY_PREFIX" env-default:"session:"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
