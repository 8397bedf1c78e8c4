package stats_repo

import (
	"math"
	"roulette_backend/internal/model"
	"sync"
)

const (
	// TargetRTP Теоретический RTP при выплатах x2 / x36 на 37 ячейках
	TargetRTP = 36.0 / 37.0 * 100
	// minSpinsToCheck Количество спинов, после которого начинаем проверять отклонение
	minSpinsToCheck = 100
	// periodSpinsToCheck Периодичность проверки (каждые N спинов)
	periodSpinsToCheck = 25
	// criticalRTPDeviation Отклонение RTP окна от целевого, при котором поднимаем тревогу (процентные пункты)
	criticalRTPDeviation = 10.0
)

// Результат спина для окна
type spinRecord struct {
	bet    int
	payout int
}

// StateRepo Хранит статистику выплат по всем столам в памяти
type StateRepo struct {
	mtx sync.RWMutex

	totalSpins  int
	totalBet    int
	totalPayout int

	window     []spinRecord
	windowSize int
	windowBet  int
	windowPay  int
}

// NewStatsRepository Конструктор. windowSize - размер окна последних спинов
func NewStatsRepository(windowSize int) *StateRepo {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &StateRepo{
		window:     make([]spinRecord, 0, windowSize),
		windowSize: windowSize,
	}
}

// UpdateState Обновление статистики после спина
func (r *StateRepo) UpdateState(bet, payout int) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.totalSpins++
	r.totalBet += bet
	r.totalPayout += payout

	// Добавляем спин в окно, вытесняя самый старый
	r.window = append(r.window, spinRecord{bet: bet, payout: payout})
	r.windowBet += bet
	r.windowPay += payout
	if len(r.window) > r.windowSize {
		old := r.window[0]
		r.window = r.window[1:]
		r.windowBet -= old.bet
		r.windowPay -= old.payout
	}
}

// Stats Копия текущей статистики
func (r *StateRepo) Stats() model.TableStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return model.TableStats{
		TotalSpins:  r.totalSpins,
		TotalBet:    r.totalBet,
		TotalPayout: r.totalPayout,
		CurrentRTP:  rtp(r.totalPayout, r.totalBet),
		WindowRTP:   rtp(r.windowPay, r.windowBet),
		WindowSize:  r.windowSize,
	}
}

// DeviationAlarm Проверка отклонения RTP окна от теоретического.
// Срабатывает только на каждом periodSpinsToCheck-м спине после minSpinsToCheck
func (r *StateRepo) DeviationAlarm() (bool, float64) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	windowRTP := rtp(r.windowPay, r.windowBet)
	if r.totalSpins < minSpinsToCheck || r.totalSpins%periodSpinsToCheck != 0 {
		return false, windowRTP
	}
	return math.Abs(windowRTP-TargetRTP) > criticalRTPDeviation, windowRTP
}

func rtp(payout, bet int) float64 {
	if bet == 0 {
		return 0
	}
	return float64(payout) / float64(bet) * 100
}
