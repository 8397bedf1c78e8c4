package auth

import (
	"roulette_backend/internal/config"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/service"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

// Максимальная длина имени игрока в символах
const maxNameLength = 20

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	cache     repository.ProfileCache
	tables    service.TableReleaser

	jwtConfig       config.JWTConfig
	startingBalance int
	log             *zap.Logger

	now func() time.Time
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	cache repository.ProfileCache,
	tables service.TableReleaser,
	jwtConfig config.JWTConfig,
	rouletteConfig config.RouletteConfig,
	log *zap.Logger,
) service.AuthService {
	return &serv{
		txManager:       txManager,
		userRepo:        userRepo,
		authRepo:        authRepo,
		cache:           cache,
		tables:          tables,
		jwtConfig:       jwtConfig,
		startingBalance: rouletteConfig.StartingBalance(),
		log:             log,
		now:             time.Now,
	}
}
