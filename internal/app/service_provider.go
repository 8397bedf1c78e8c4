package app

import (
	"context"
	authAPI "roulette_backend/internal/api/auth"
	rouletteAPI "roulette_backend/internal/api/roulette"
	"roulette_backend/internal/config"
	"roulette_backend/internal/config/env"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/repository/auth_repo"
	"roulette_backend/internal/repository/bet_repo"
	"roulette_backend/internal/repository/profile_cache"
	"roulette_backend/internal/repository/round_repo"
	"roulette_backend/internal/repository/stats_repo"
	"roulette_backend/internal/repository/user_repo"
	"roulette_backend/internal/scheduler"
	"roulette_backend/internal/service"
	"roulette_backend/internal/service/auth"
	"roulette_backend/internal/service/roulette"
	"roulette_backend/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rouletteConfigPath = "config.yaml"

// rouletteService Столы игроков освобождаются сервисом авторизации при выходе
type rouletteService interface {
	service.RouletteService
	service.TableReleaser
}

type ServiceProvider struct {
	// Logger
	loggerCfg config.LoggerConfig
	log       *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis
	redisConfig  config.RedisConfig
	redisClient  *redis.Client
	profileCache repository.ProfileCache

	// Auth bits
	jwtConfig config.JWTConfig
	authRepo  repository.AuthRepository
	authServ  service.AuthService
	authHand  *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Roulette bits
	rouletteCfg  config.RouletteConfig
	betRepo      repository.BetRepository
	roundRepo    repository.RoundRepository
	statsRepo    repository.StatsRepository
	rouletteServ rouletteService
	rouletteHand *rouletteAPI.Handler

	// Scheduler
	schedulerCfg config.SchedulerConfig
	scheduler    *scheduler.Scheduler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LoggerCfg() config.LoggerConfig {
	if sp.loggerCfg == nil {
		sp.loggerCfg = env.NewLoggerConfig()
	}
	return sp.loggerCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		log, err := logger.New(sp.LoggerCfg().Level(), sp.LoggerCfg().File())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.log = log
	}
	return sp.log
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) RedisConfig() config.RedisConfig {
	if sp.redisConfig == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisConfig = cfg
	}
	return sp.redisConfig
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		rdb := redis.NewClient(&redis.Options{
			Addr:     sp.RedisConfig().Address(),
			Password: sp.RedisConfig().Password(),
			DB:       sp.RedisConfig().DB(),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = rdb
	}
	return sp.redisClient
}

func (sp *ServiceProvider) ProfileCache(ctx context.Context) repository.ProfileCache {
	if sp.profileCache == nil {
		sp.profileCache = profile_cache.NewProfileCache(sp.RedisClient(ctx))
	}
	return sp.profileCache
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtConfig == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtConfig = cfg
	}
	return sp.jwtConfig
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.ProfileCache(ctx),
			sp.RouletteService(ctx),
			sp.JWTConfig(),
			sp.RouletteCfg(),
			sp.Logger(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:      sp.AuthService(ctx),
			Log:       sp.Logger(),
			CookieTTL: sp.JWTConfig().RefreshTokenDuration(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) RouletteCfg() config.RouletteConfig {
	if sp.rouletteCfg == nil {
		cfg, err := env.NewRouletteConfigFromYAML(rouletteConfigPath)
		if err != nil {
			panic("failed to get roulette config: " + err.Error())
		}
		sp.rouletteCfg = cfg
	}
	return sp.rouletteCfg
}

func (sp *ServiceProvider) BetRepository(ctx context.Context) repository.BetRepository {
	if sp.betRepo == nil {
		sp.betRepo = bet_repo.NewBetRepository(sp.DBClient(ctx))
	}
	return sp.betRepo
}

func (sp *ServiceProvider) RoundRepository(ctx context.Context) repository.RoundRepository {
	if sp.roundRepo == nil {
		sp.roundRepo = round_repo.NewRoundRepository(sp.DBClient(ctx))
	}
	return sp.roundRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(sp.RouletteCfg().StatsWindow())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) RouletteService(ctx context.Context) rouletteService {
	if sp.rouletteServ == nil {
		sp.rouletteServ = roulette.NewRouletteService(
			sp.RouletteCfg(),
			sp.UserRepo(ctx),
			sp.BetRepository(ctx),
			sp.RoundRepository(ctx),
			sp.StatsRepository(),
			sp.ProfileCache(ctx),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.rouletteServ
}

func (sp *ServiceProvider) RouletteHandler(ctx context.Context) *rouletteAPI.Handler {
	if sp.rouletteHand == nil {
		sp.rouletteHand = rouletteAPI.NewHandler(rouletteAPI.HandlerDeps{
			Serv: sp.RouletteService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.rouletteHand
}

func (sp *ServiceProvider) SchedulerCfg() config.SchedulerConfig {
	if sp.schedulerCfg == nil {
		sp.schedulerCfg = env.NewSchedulerConfig()
	}
	return sp.schedulerCfg
}

func (sp *ServiceProvider) Scheduler(ctx context.Context) *scheduler.Scheduler {
	if sp.scheduler == nil {
		s, err := scheduler.New(sp.SchedulerCfg().SessionCleanupSpec(), sp.AuthService(ctx), sp.Logger())
		if err != nil {
			panic("failed to create scheduler: " + err.Error())
		}
		sp.scheduler = s
	}
	return sp.scheduler
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))
		r.Use(chimw.RequestID)
		r.Use(middleware.Logger(sp.Logger()))
		r.Use(chimw.Recoverer)

		r.Handle("/metrics", promhttp.Handler())

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/login", authHandler.Login)
			rr.Get("/me", authHandler.Me)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Roulette endpoints
		rouletteHandler := sp.RouletteHandler(ctx)
		r.Route("/roulette", func(rr chi.Router) {
			rr.Get("/config", rouletteHandler.Config)
			rr.Get("/prizes", rouletteHandler.Prizes)

			rr.Group(func(pr chi.Router) {
				pr.Use(middleware.Auth(sp.JWTConfig().AccessTokenSecretKey()))
				pr.Get("/table", rouletteHandler.Table)
				pr.Post("/chip", rouletteHandler.SelectChip)
				pr.Post("/bets", rouletteHandler.PlaceBet)
				pr.Delete("/bets", rouletteHandler.ClearBets)
				pr.Post("/spin", rouletteHandler.Spin)
				pr.Get("/rounds", rouletteHandler.Rounds)
				pr.Get("/stats", rouletteHandler.Stats)
			})
		})

		sp.router = r
	}

	return sp.router
}

// Close - закрывает соединения с хранилищами
func (sp *ServiceProvider) Close() {
	if sp.redisClient != nil {
		if err := sp.redisClient.Close(); err != nil {
			sp.Logger().Warn("failed to close redis client", zap.Error(err))
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
}
