package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const labelCategory = "category"

var (
	logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roulette_logins_total",
		Help: "Количество входов",
	})
	betsPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roulette_bets_placed_total",
		Help: "Количество размещенных фишек по категориям",
	}, []string{labelCategory})
	spins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roulette_spins_total",
		Help: "Количество рассчитанных спинов",
	})
	wagered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roulette_wagered_total",
		Help: "Сумма рассчитанных ставок",
	})
	paid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roulette_paid_total",
		Help: "Сумма выплат",
	})
	windowRTP = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roulette_window_rtp_pct",
		Help: "RTP в окне последних спинов, %",
	})
	expiredSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roulette_expired_sessions_total",
		Help: "Пользователи, удаленные вместе с просроченными сессиями",
	})
)

func Login() {
	logins.Inc()
}

func BetPlaced(category string) {
	betsPlaced.WithLabelValues(category).Inc()
}

// Spin - учитывает рассчитанный спин
func Spin(totalBet, totalPayout int, rtp float64) {
	spins.Inc()
	wagered.Add(float64(totalBet))
	paid.Add(float64(totalPayout))
	windowRTP.Set(rtp)
}

func ExpiredSessions(n int64) {
	expiredSessions.Add(float64(n))
}
