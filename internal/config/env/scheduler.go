package env

import (
	"os"
	"roulette_backend/internal/config"
)

const (
	sessionCleanupEnvName = "SESSION_CLEANUP_CRON"
	defaultSessionCleanup = "@hourly"
)

type schedulerConfig struct {
	sessionCleanup string
}

func NewSchedulerConfig() config.SchedulerConfig {
	spec := os.Getenv(sessionCleanupEnvName)
	if len(spec) == 0 {
		spec = defaultSessionCleanup
	}
	return &schedulerConfig{sessionCleanup: spec}
}

func (cfg *schedulerConfig) SessionCleanupSpec() string {
	return cfg.sessionCleanup
}
