package roulette

import (
	"context"
	"roulette_backend/internal/model"
	rouletteModel "roulette_backend/internal/service/roulette/model"
)

// Максимальное количество раундов в истории за один запрос
const maxRoundsLimit = 100

func (s *serv) GameInfo() model.GameInfo {
	categories := make([]model.CategoryInfo, len(rouletteModel.Categories))
	for i, c := range rouletteModel.Categories {
		categories[i] = model.CategoryInfo{Category: c, Multiplier: c.Multiplier()}
	}
	return model.GameInfo{
		Chips:           s.cfg.Chips(),
		DefaultChip:     s.cfg.DefaultChip(),
		StartingBalance: s.cfg.StartingBalance(),
		Categories:      categories,
	}
}

func (s *serv) Prizes() []model.Prize {
	return s.cfg.Prizes()
}

func (s *serv) Stats() model.TableStats {
	return s.statsRepo.Stats()
}

// Rounds - история раундов игрока, новые первыми
func (s *serv) Rounds(ctx context.Context, limit uint64) ([]model.Round, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	if limit == 0 || limit > maxRoundsLimit {
		limit = maxRoundsLimit
	}
	return s.roundRepo.ListRounds(ctx, userID, limit)
}
