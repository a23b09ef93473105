package config

// Env - окружение запуска сервиса.
type Env string

// Поддерживаемые окружения.
const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
	EnvTest        Env = "test"
)

// AppConfig содержит общие настройки приложения.
type AppConfig struct {
	Env Env `yaml:"env" env:"BOOKSHELF_ENV" env-default:"development"`
}

// IsProduction сообщает, запущен ли сервис в продакшене.
func (a *AppConfig) IsProduction() bool {
	return a.Env == EnvProduction
}

// IsTest сообщает, запущен ли сервис в тестовом режиме.
func (a *AppConfig) IsTest() bool {
	return a.Env == EnvTest
}
