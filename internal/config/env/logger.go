package env

import (
	"os"
	"roulette_backend/internal/config"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logFileEnvName  = "LOG_FILE"
)

type loggerConfig struct {
	level string
	file  string
}

// NewLoggerConfig Уровень по умолчанию info, файл не обязателен
func NewLoggerConfig() config.LoggerConfig {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}
	return &loggerConfig{
		level: level,
		file:  os.Getenv(logFileEnvName),
	}
}

func (cfg *loggerConfig) Level() string {
	return cfg.level
}

func (cfg *loggerConfig) File() string {
	return cfg.file
}
