package converter

import (
	dto "roulette_backend/internal/api/dto/roulette"
	"roulette_backend/internal/model"
	rouletteModel "roulette_backend/internal/service/roulette/model"
	"time"
)

func ToTableResponse(t *model.Table) dto.TableResponse {
	return dto.TableResponse{
		Phase:        string(t.Phase),
		SelectedChip: t.SelectedChip,
		Bets:         toBets(t.Bets),
		TotalBet:     t.TotalBet,
		Result:       t.Result,
		Balance:      t.Balance,
	}
}

func toBets(bets []rouletteModel.Bet) []dto.Bet {
	result := make([]dto.Bet, len(bets))
	for i, b := range bets {
		result[i] = dto.Bet{
			Category: string(b.Category),
			Amount:   b.Amount,
		}
	}
	return result
}

func ToSpinResponse(res *model.SpinResult) dto.SpinResponse {
	outcomes := make([]dto.BetOutcome, len(res.Outcomes))
	for i, o := range res.Outcomes {
		outcomes[i] = dto.BetOutcome{
			Category: string(o.Category),
			Amount:   o.Amount,
			Won:      o.Won,
			Payout:   o.Payout,
		}
	}
	return dto.SpinResponse{
		Number:      res.Number,
		Color:       string(res.Color),
		Outcomes:    outcomes,
		TotalBet:    res.TotalBet,
		TotalPayout: res.TotalPayout,
		Balance:     res.Balance,
	}
}

func ToConfigResponse(info model.GameInfo) dto.ConfigResponse {
	categories := make([]dto.Category, len(info.Categories))
	for i, c := range info.Categories {
		categories[i] = dto.Category{
			Name:       string(c.Category),
			Multiplier: c.Multiplier,
		}
	}
	return dto.ConfigResponse{
		Chips:           info.Chips,
		DefaultChip:     info.DefaultChip,
		StartingBalance: info.StartingBalance,
		Categories:      categories,
	}
}

func ToPrizes(prizes []model.Prize) []dto.Prize {
	result := make([]dto.Prize, len(prizes))
	for i, p := range prizes {
		result[i] = dto.Prize{
			Name:        p.Name,
			Emoji:       p.Emoji,
			Description: p.Description,
			Price:       p.Price,
		}
	}
	return result
}

func ToRounds(rounds []model.Round) []dto.Round {
	result := make([]dto.Round, len(rounds))
	for i, r := range rounds {
		result[i] = dto.Round{
			ID:          r.ID,
			Number:      r.Number,
			TotalBet:    r.TotalBet,
			TotalPayout: r.TotalPayout,
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return result
}

func ToStatsResponse(s model.TableStats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalSpins:  s.TotalSpins,
		TotalBet:    s.TotalBet,
		TotalPayout: s.TotalPayout,
		CurrentRTP:  s.CurrentRTP,
		WindowRTP:   s.WindowRTP,
		WindowSize:  s.WindowSize,
	}
}
