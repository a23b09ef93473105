// Package config загружает конфигурацию сервисов из переменных окружения
// и необязательного env-файла.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"bookshelf/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"
	errFailedStatEnvFile       = "failed to stat env file"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет T из env-файла envPath (если он существует) и переменных окружения.
// Переменные окружения имеют приоритет над значениями из файла.
func Load[T any](ctx context.Context, serviceName, envPath string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	var cfg T

	useFile, err := envFileExists(envPath)
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.String(attrPath, envPath), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	if useFile {
		log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envPath))
		err = cleanenv.ReadConfig(envPath, &cfg)
	} else {
		log.Info(ctx, msgLoadingConfiguration)
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Debug(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

func envFileExists(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errFailedStatEnvFile, err)
	}
	return true, nil
}
