package service

import (
	"context"
	"errors"
	"roulette_backend/internal/model"
	rouletteModel "roulette_backend/internal/service/roulette/model"
)

var (
	ErrNoUser              = errors.New("no logged-in user")
	ErrInvalidName         = errors.New("name must be 1-20 characters")
	ErrInvalidToken        = errors.New("invalid refresh token")
	ErrInvalidChip         = errors.New("unknown chip value")
	ErrInvalidCategory     = errors.New("unknown bet category")
	ErrInsufficientBalance = errors.New("not enough balance")
	ErrNoBets              = errors.New("no bets placed")
	ErrRoundInProgress     = errors.New("round in progress")
)

type AuthService interface {
	Login(ctx context.Context, name string) (*model.AuthData, error)
	Restore(ctx context.Context, sessionID string) (*model.User, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// RouletteService Стол игрока. ID пользователя и сессии берутся из контекста
type RouletteService interface {
	GameInfo() model.GameInfo
	Prizes() []model.Prize
	Stats() model.TableStats

	Table(ctx context.Context) (*model.Table, error)
	SelectChip(ctx context.Context, value int) (*model.Table, error)
	PlaceBet(ctx context.Context, category rouletteModel.Category) (*model.Table, error)
	ClearBets(ctx context.Context) (*model.Table, error)
	Spin(ctx context.Context) (*model.SpinResult, error)
	Rounds(ctx context.Context, limit uint64) ([]model.Round, error)
}

// TableReleaser Освобождает состояние стола вышедшего игрока
type TableReleaser interface {
	Release(userID int)
}
