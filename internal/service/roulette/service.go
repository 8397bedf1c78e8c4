package roulette

import (
	"context"
	"math/rand"
	"roulette_backend/internal/config"
	"roulette_backend/internal/repository"
	rouletteModel "roulette_backend/internal/service/roulette/model"
	"sync"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

// Wheel Источник выпавшего числа
type Wheel interface {
	Spin() int
}

type randomWheel struct{}

func (randomWheel) Spin() int {
	return rand.Intn(rouletteModel.Pockets)
}

type serv struct {
	cfg       config.RouletteConfig
	userRepo  repository.UserRepository
	betRepo   repository.BetRepository
	roundRepo repository.RoundRepository
	statsRepo repository.StatsRepository
	cache     repository.ProfileCache
	txManager trm.Manager
	log       *zap.Logger

	wheel Wheel
	// sleep ждет анимацию вращения, after планирует сброс стола
	sleep func(ctx context.Context, d time.Duration) error
	after func(d time.Duration, f func())
	now   func() time.Time

	mtx    sync.Mutex
	tables map[int]*table
}

// NewRouletteService Создать сервис рулетки
func NewRouletteService(
	cfg config.RouletteConfig,
	userRepo repository.UserRepository,
	betRepo repository.BetRepository,
	roundRepo repository.RoundRepository,
	statsRepo repository.StatsRepository,
	cache repository.ProfileCache,
	txManager trm.Manager,
	log *zap.Logger,
) *serv {
	return &serv{
		cfg:       cfg,
		userRepo:  userRepo,
		betRepo:   betRepo,
		roundRepo: roundRepo,
		statsRepo: statsRepo,
		cache:     cache,
		txManager: txManager,
		log:       log,
		wheel:     randomWheel{},
		sleep:     sleepCtx,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		now:    time.Now,
		tables: make(map[int]*table),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
