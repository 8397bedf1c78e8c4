package model

import (
	rouletteModel "roulette_backend/internal/service/roulette/model"
	"time"
)

// Phase Фаза раунда за столом игрока
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseSpinning Phase = "spinning"
	PhaseSettled  Phase = "settled"
)

// Table Состояние стола игрока
type Table struct {
	Phase        Phase
	SelectedChip int
	Bets         []rouletteModel.Bet
	TotalBet     int
	Result       *int // nil, пока раунд не рассчитан
	Balance      int
}

// SpinResult Результат спина
type SpinResult struct {
	Number      int
	Color       rouletteModel.Category
	Outcomes    []rouletteModel.BetOutcome
	TotalBet    int
	TotalPayout int
	Balance     int
}

// Round Запись истории рассчитанного раунда
type Round struct {
	ID          int
	UserID      int
	Number      int
	TotalBet    int
	TotalPayout int
	CreatedAt   time.Time
}

// GameInfo Параметры игры для клиента
type GameInfo struct {
	Chips           []int
	DefaultChip     int
	StartingBalance int
	Categories      []CategoryInfo
}

type CategoryInfo struct {
	Category   rouletteModel.Category
	Multiplier int
}

// Prize Приз из каталога
type Prize struct {
	Name        string
	Emoji       string
	Description string
	Price       int
}

// TableStats Статистика выплат по всем столам
type TableStats struct {
	TotalSpins  int
	TotalBet    int
	TotalPayout int
	CurrentRTP  float64
	WindowRTP   float64
	WindowSize  int
}
