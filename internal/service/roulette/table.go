package roulette

import (
	"context"
	"errors"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/service"
	rouletteModel "roulette_backend/internal/service/roulette/model"
	"sync"
)

// table Состояние стола одного игрока.
// Ставки до спина хранятся в БД, здесь только фаза, фишка и итог последнего спина
type table struct {
	mtx     sync.Mutex
	phase   model.Phase
	chip    int
	settled []rouletteModel.Bet // ставки рассчитанного раунда, видны до сброса
	result  *int
}

// table - стол пользователя, создается при первом обращении
func (s *serv) table(userID int) *table {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.tables[userID]
	if !ok {
		t = &table{
			phase: model.PhaseIdle,
			chip:  s.cfg.DefaultChip(),
		}
		s.tables[userID] = t
	}
	return t
}

// Release - забывает стол вышедшего игрока
func (s *serv) Release(userID int) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.tables, userID)
}

// forget - убирает стол удаленного пользователя, если он еще зарегистрирован
func (s *serv) forget(userID int, t *table) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.tables[userID] == t {
		delete(s.tables, userID)
	}
}

// gone - при ErrNoUser забывает стол, ошибка возвращается без изменений
func (s *serv) gone(userID int, t *table, err error) error {
	if errors.Is(err, service.ErrNoUser) {
		s.forget(userID, t)
	}
	return err
}

// reset - возвращает стол в Idle после показа результата
func (t *table) reset() {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.phase = model.PhaseIdle
	t.settled = nil
	t.result = nil
}

// view - собирает состояние стола для клиента. Вызывается под t.mtx
func (s *serv) view(ctx context.Context, userID int, t *table) (*model.Table, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, s.gone(userID, t, noUser(err))
	}

	bets := t.settled
	if t.phase != model.PhaseSettled {
		bets, err = s.betRepo.ListBets(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	total := 0
	for _, b := range bets {
		total += b.Amount
	}

	var result *int
	if t.result != nil {
		n := *t.result
		result = &n
	}

	return &model.Table{
		Phase:        t.phase,
		SelectedChip: t.chip,
		Bets:         append([]rouletteModel.Bet(nil), bets...),
		TotalBet:     total,
		Result:       result,
		Balance:      user.Balance,
	}, nil
}

// Table - текущее состояние стола
func (s *serv) Table(ctx context.Context) (*model.Table, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	t := s.table(userID)
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return s.view(ctx, userID, t)
}

// noUser - пользователь удален вместе с сессией
func noUser(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return service.ErrNoUser
	}
	return err
}

func userIDFrom(ctx context.Context) (int, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user id not found in context")
	}
	return userID, nil
}
