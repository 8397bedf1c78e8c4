package roulette

type SelectChipRequest struct {
	Value int `json:"value"` // Номинал фишки из списка chips
}

type PlaceBetRequest struct {
	Category string `json:"category"` // red, black, green, even, odd, low, high
}

type Bet struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
}

type TableResponse struct {
	Phase        string `json:"phase"` // idle, spinning, settled
	SelectedChip int    `json:"selected_chip"`
	Bets         []Bet  `json:"bets"`
	TotalBet     int    `json:"total_bet"`
	Result       *int   `json:"result"` // null, пока раунд не рассчитан
	Balance      int    `json:"balance"`
}

type BetOutcome struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
	Won      bool   `json:"won"`
	Payout   int    `json:"payout"`
}

type SpinResponse struct {
	Number      int          `json:"number"`
	Color       string       `json:"color"`
	Outcomes    []BetOutcome `json:"outcomes"`
	TotalBet    int          `json:"total_bet"`
	TotalPayout int          `json:"total_payout"`
	Balance     int          `json:"balance"`
}

type Category struct {
	Name       string `json:"name"`
	Multiplier int    `json:"multiplier"`
}

type ConfigResponse struct {
	Chips           []int      `json:"chips"`
	DefaultChip     int        `json:"default_chip"`
	StartingBalance int        `json:"starting_balance"`
	Categories      []Category `json:"categories"`
}

type Prize struct {
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type Round struct {
	ID          int    `json:"id"`
	Number      int    `json:"number"`
	TotalBet    int    `json:"total_bet"`
	TotalPayout int    `json:"total_payout"`
	CreatedAt   string `json:"created_at"` // RFC 3339
}

type StatsResponse struct {
	TotalSpins  int     `json:"total_spins"`
	TotalBet    int     `json:"total_bet"`
	TotalPayout int     `json:"total_payout"`
	CurrentRTP  float64 `json:"current_rtp"`
	WindowRTP   float64 `json:"window_rtp"`
	WindowSize  int     `json:"window_size"`
}
