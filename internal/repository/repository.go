package repository

import (
	"context"
	"errors"
	"roulette_backend/internal/model"
	rouletteModel "roulette_backend/internal/service/roulette/model"
	"time"
)

var (
	// ErrNotFound Запись не найдена
	ErrNotFound = errors.New("not found")
	// ErrSnapshotMalformed Снимок пользователя в кэше не читается
	ErrSnapshotMalformed = errors.New("malformed user snapshot")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	GetUserForUpdate(ctx context.Context, id int) (*model.User, error)
	DeleteUser(ctx context.Context, id int) error

	UpdateBalance(ctx context.Context, id int, amount int) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string, now time.Time) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string, now time.Time) (*model.User, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (userIDs []int, err error)
}

type BetRepository interface {
	AddBet(ctx context.Context, userID int, bet rouletteModel.Bet) error
	ListBets(ctx context.Context, userID int) ([]rouletteModel.Bet, error)
	ClearBets(ctx context.Context, userID int) error
}

type RoundRepository interface {
	CreateRound(ctx context.Context, round *model.Round) (id int, err error)
	ListRounds(ctx context.Context, userID int, limit uint64) ([]model.Round, error)
}

// ProfileCache Снимок пользователя (id, имя, баланс) по ключу сессии
type ProfileCache interface {
	Save(ctx context.Context, sessionID string, user *model.User, ttl time.Duration) error
	Update(ctx context.Context, sessionID string, user *model.User) error
	Load(ctx context.Context, sessionID string) (*model.User, error)
	Delete(ctx context.Context, sessionID string) error
}

type StatsRepository interface {
	UpdateState(bet, payout int)
	Stats() model.TableStats
	DeviationAlarm() (alarm bool, windowRTP float64)
}
