package model

import "fmt"

// Category Категория ставки
type Category string

const (
	Red   Category = "red"
	Black Category = "black"
	Green Category = "green"
	Even  Category = "even"
	Odd   Category = "odd"
	Low   Category = "low"
	High  Category = "high"
)

const (
	// MinNumber Минимальное число на колесе
	MinNumber = 0
	// MaxNumber Максимальное число на колесе
	MaxNumber = 36
	// Pockets Количество ячеек колеса (0-36)
	Pockets = MaxNumber + 1

	// Множители выплат (ставка входит в выплату)
	evenMoneyMultiplier = 2
	zeroMultiplier      = 36
)

// Categories Все категории в порядке отображения на столе
var Categories = []Category{Red, Black, Green, Even, Odd, Low, High}

// Красные и черные числа. Вместе покрывают 1-36 и не пересекаются
var (
	redNumbers = map[int]struct{}{
		1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
		19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
	}
	blackNumbers = map[int]struct{}{
		2: {}, 4: {}, 6: {}, 8: {}, 10: {}, 11: {}, 13: {}, 15: {}, 17: {},
		20: {}, 22: {}, 24: {}, 26: {}, 28: {}, 29: {}, 31: {}, 33: {}, 35: {},
	}
)

// Bet Ставка на категорию
type Bet struct {
	Category Category
	Amount   int
}

// BetOutcome Результат одной ставки после спина
type BetOutcome struct {
	Bet
	Won    bool
	Payout int
}

// Settlement Итог раунда по всем ставкам
type Settlement struct {
	Number      int
	Outcomes    []BetOutcome
	TotalBet    int
	TotalPayout int
}

// ParseCategory - проверяет, что строка является известной категорией
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown bet category %q", s)
	}
	return c, nil
}

// Valid - входит ли категория в закрытый набор
func (c Category) Valid() bool {
	switch c {
	case Red, Black, Green, Even, Odd, Low, High:
		return true
	}
	return false
}

// Multiplier - множитель выплаты для категории
func (c Category) Multiplier() int {
	if c == Green {
		return zeroMultiplier
	}
	return evenMoneyMultiplier
}

func IsRed(n int) bool {
	_, ok := redNumbers[n]
	return ok
}

func IsBlack(n int) bool {
	_, ok := blackNumbers[n]
	return ok
}

// ColorOf - цвет ячейки для отображения клиенту
func ColorOf(n int) Category {
	switch {
	case IsRed(n):
		return Red
	case IsBlack(n):
		return Black
	default:
		return Green
	}
}

// Wins - выиграла ли категория при выпавшем числе n
func Wins(c Category, n int) bool {
	switch c {
	case Red:
		return IsRed(n)
	case Black:
		return IsBlack(n)
	case Green:
		return n == 0
	case Even:
		return n != 0 && n%2 == 0
	case Odd:
		return n != 0 && n%2 == 1
	case Low:
		return n >= 1 && n <= 18
	case High:
		return n >= 19 && n <= 36
	}
	return false
}

// Payout - выплата по ставке. 0 если ставка проиграла
func Payout(b Bet, n int) int {
	if !Wins(b.Category, n) {
		return 0
	}
	return b.Amount * b.Category.Multiplier()
}

// Settle - рассчитывает все ставки раунда против выпавшего числа
func Settle(n int, bets []Bet) Settlement {
	res := Settlement{
		Number:   n,
		Outcomes: make([]BetOutcome, len(bets)),
	}
	for i, b := range bets {
		payout := Payout(b, n)
		res.Outcomes[i] = BetOutcome{Bet: b, Won: payout > 0, Payout: payout}
		res.TotalBet += b.Amount
		res.TotalPayout += payout
	}
	return res
}
