package roulette

import (
	"context"
	"roulette_backend/internal/metrics"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/model"
	"roulette_backend/internal/service"
	rouletteModel "roulette_backend/internal/service/roulette/model"
	"slices"

	"go.uber.org/zap"
)

// SelectChip - выбирает номинал фишки для следующих ставок
func (s *serv) SelectChip(ctx context.Context, value int) (*model.Table, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(s.cfg.Chips(), value) {
		return nil, service.ErrInvalidChip
	}

	t := s.table(userID)
	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.chip = value
	return s.view(ctx, userID, t)
}

// PlaceBet - ставит выбранную фишку на категорию.
// При нехватке баланса ничего не меняется и возвращается ErrInsufficientBalance
func (s *serv) PlaceBet(ctx context.Context, category rouletteModel.Category) (*model.Table, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, service.ErrInvalidCategory
	}

	t := s.table(userID)
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if t.phase != model.PhaseIdle {
		return nil, service.ErrRoundInProgress
	}
	chip := t.chip

	var user *model.User
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		user, err = s.userRepo.GetUserForUpdate(txCtx, userID)
		if err != nil {
			return noUser(err)
		}
		if user.Balance < chip {
			return service.ErrInsufficientBalance
		}

		// Списание фишки и накопление ставки
		user.Balance -= chip
		if err := s.userRepo.UpdateBalance(txCtx, userID, user.Balance); err != nil {
			return err
		}
		return s.betRepo.AddBet(txCtx, userID, rouletteModel.Bet{Category: category, Amount: chip})
	})
	if err != nil {
		return nil, s.gone(userID, t, err)
	}

	s.updateSnapshot(ctx, user)
	metrics.BetPlaced(string(category))

	return s.view(ctx, userID, t)
}

// ClearBets - снимает все ставки раунда и возвращает их сумму на баланс
func (s *serv) ClearBets(ctx context.Context) (*model.Table, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	t := s.table(userID)
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if t.phase != model.PhaseIdle {
		return nil, service.ErrRoundInProgress
	}

	var user *model.User
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		bets, err := s.betRepo.ListBets(txCtx, userID)
		if err != nil {
			return err
		}
		if len(bets) == 0 {
			return nil
		}

		user, err = s.userRepo.GetUserForUpdate(txCtx, userID)
		if err != nil {
			return noUser(err)
		}
		for _, b := range bets {
			user.Balance += b.Amount
		}
		if err := s.userRepo.UpdateBalance(txCtx, userID, user.Balance); err != nil {
			return err
		}
		return s.betRepo.ClearBets(txCtx, userID)
	})
	if err != nil {
		return nil, s.gone(userID, t, err)
	}

	if user != nil {
		s.updateSnapshot(ctx, user)
	}
	return s.view(ctx, userID, t)
}

// updateSnapshot - перезаписывает снимок пользователя после изменения баланса
func (s *serv) updateSnapshot(ctx context.Context, user *model.User) {
	sessionID, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		return
	}
	if err := s.cache.Update(ctx, sessionID, user); err != nil {
		s.log.Warn("failed to update user snapshot", zap.Int("user_id", user.ID), zap.Error(err))
	}
}
