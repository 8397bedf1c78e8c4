package roulette

import (
	"context"
	"roulette_backend/internal/metrics"
	"roulette_backend/internal/model"
	"roulette_backend/internal/service"
	rouletteModel "roulette_backend/internal/service/roulette/model"

	"go.uber.org/zap"
)

// Spin - крутит колесо и рассчитывает все ставки раунда.
// Idle -> Spinning (ожидание анимации) -> Settled (результат виден) -> Idle через settle delay
func (s *serv) Spin(ctx context.Context) (*model.SpinResult, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	t := s.table(userID)

	// Проверяем фазу и наличие ставок, занимаем стол
	t.mtx.Lock()
	if t.phase != model.PhaseIdle {
		t.mtx.Unlock()
		return nil, service.ErrRoundInProgress
	}
	bets, err := s.betRepo.ListBets(ctx, userID)
	if err != nil {
		t.mtx.Unlock()
		return nil, err
	}
	if len(bets) == 0 {
		// Ставки удаляются каскадом вместе с пользователем
		_, err := s.userRepo.GetUser(ctx, userID)
		t.mtx.Unlock()
		if err != nil {
			return nil, s.gone(userID, t, noUser(err))
		}
		return nil, service.ErrNoBets
	}
	t.phase = model.PhaseSpinning
	t.mtx.Unlock()

	// Колесо крутится
	if err := s.sleep(ctx, s.cfg.SpinDelay()); err != nil {
		t.reset()
		return nil, err
	}

	number := s.wheel.Spin()

	var (
		settlement rouletteModel.Settlement
		user       *model.User
	)
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Ставки перечитываются внутри транзакции, они удаляются вместе с начислением выигрыша
		bets, err := s.betRepo.ListBets(txCtx, userID)
		if err != nil {
			return err
		}
		settlement = rouletteModel.Settle(number, bets)

		user, err = s.userRepo.GetUserForUpdate(txCtx, userID)
		if err != nil {
			return noUser(err)
		}
		user.Balance += settlement.TotalPayout
		if err := s.userRepo.UpdateBalance(txCtx, userID, user.Balance); err != nil {
			return err
		}
		if err := s.betRepo.ClearBets(txCtx, userID); err != nil {
			return err
		}

		_, err = s.roundRepo.CreateRound(txCtx, &model.Round{
			UserID:      userID,
			Number:      number,
			TotalBet:    settlement.TotalBet,
			TotalPayout: settlement.TotalPayout,
			CreatedAt:   s.now(),
		})
		return err
	})
	if err != nil {
		t.reset()
		return nil, s.gone(userID, t, err)
	}

	// Показываем результат и планируем сброс стола
	t.mtx.Lock()
	t.phase = model.PhaseSettled
	t.result = &number
	t.settled = make([]rouletteModel.Bet, len(settlement.Outcomes))
	for i, o := range settlement.Outcomes {
		t.settled[i] = o.Bet
	}
	t.mtx.Unlock()
	s.after(s.cfg.SettleDelay(), t.reset)

	s.updateSnapshot(ctx, user)
	s.recordStats(settlement)

	s.log.Info("round settled",
		zap.Int("user_id", userID),
		zap.Int("number", number),
		zap.Int("total_bet", settlement.TotalBet),
		zap.Int("total_payout", settlement.TotalPayout),
	)

	return &model.SpinResult{
		Number:      number,
		Color:       rouletteModel.ColorOf(number),
		Outcomes:    settlement.Outcomes,
		TotalBet:    settlement.TotalBet,
		TotalPayout: settlement.TotalPayout,
		Balance:     user.Balance,
	}, nil
}

// recordStats - обновляет статистику столов и метрики
func (s *serv) recordStats(settlement rouletteModel.Settlement) {
	s.statsRepo.UpdateState(settlement.TotalBet, settlement.TotalPayout)

	alarm, windowRTP := s.statsRepo.DeviationAlarm()
	if alarm {
		s.log.Warn("window RTP deviates from target", zap.Float64("window_rtp", windowRTP))
	}
	metrics.Spin(settlement.TotalBet, settlement.TotalPayout, windowRTP)
}
