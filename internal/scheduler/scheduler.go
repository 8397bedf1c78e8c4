package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Таймаут одной очистки просроченных сессий
const cleanupTimeout = time.Minute

// SessionCleaner Удаляет просроченные сессии вместе с игроками
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	cleaner SessionCleaner
	log     *zap.Logger
}

// New - регистрирует задачи по расписанию spec (стандартный cron или @every/@hourly)
func New(spec string, cleaner SessionCleaner, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		cleaner: cleaner,
		log:     log,
	}
	if _, err := s.cron.AddFunc(spec, s.cleanupSessions); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) cleanupSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	n, err := s.cleaner.CleanupExpiredSessions(ctx)
	if err != nil {
		s.log.Error("expired sessions cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("expired sessions removed", zap.Int64("count", n))
	}
}

// Run - запускает расписание и останавливает его при отмене ctx.
// Возвращается после завершения текущих задач
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
