package config

import (
	"roulette_backend/internal/model"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type RouletteConfig interface {
	StartingBalance() int
	Chips() []int
	DefaultChip() int
	SpinDelay() time.Duration
	SettleDelay() time.Duration
	StatsWindow() int
	Prizes() []model.Prize
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Address() string
	Password() string
	DB() int
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type LoggerConfig interface {
	Level() string
	File() string
}

type SchedulerConfig interface {
	SessionCleanupSpec() string
}
