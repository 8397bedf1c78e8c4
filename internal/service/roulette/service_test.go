package roulette

import (
	"context"
	"errors"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/repository/stats_repo"
	"roulette_backend/internal/service"
	rouletteModel "roulette_backend/internal/service/roulette/model"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

// ---------- fakes ----------

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTx) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUsers struct {
	mtx   sync.Mutex
	users map[int]model.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user *model.User) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	id := len(f.users) + 1
	u := *user
	u.ID = id
	f.users[id] = u
	return id, nil
}

func (f *fakeUsers) GetUser(_ context.Context, id int) (*model.User, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetUserForUpdate(ctx context.Context, id int) (*model.User, error) {
	return f.GetUser(ctx, id)
}

func (f *fakeUsers) DeleteUser(_ context.Context, id int) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUsers) UpdateBalance(_ context.Context, id int, amount int) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Balance = amount
	f.users[id] = u
	return nil
}

func (f *fakeUsers) balance(id int) int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.users[id].Balance
}

type fakeBets struct {
	mtx  sync.Mutex
	bets map[int][]rouletteModel.Bet
}

func (f *fakeBets) AddBet(_ context.Context, userID int, bet rouletteModel.Bet) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	for i, b := range f.bets[userID] {
		if b.Category == bet.Category {
			f.bets[userID][i].Amount += bet.Amount
			return nil
		}
	}
	f.bets[userID] = append(f.bets[userID], bet)
	return nil
}

func (f *fakeBets) ListBets(_ context.Context, userID int) ([]rouletteModel.Bet, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]rouletteModel.Bet{}, f.bets[userID]...), nil
}

func (f *fakeBets) ClearBets(_ context.Context, userID int) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	delete(f.bets, userID)
	return nil
}

type fakeRounds struct {
	mtx    sync.Mutex
	rounds []model.Round
}

func (f *fakeRounds) CreateRound(_ context.Context, round *model.Round) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	round.ID = len(f.rounds) + 1
	f.rounds = append(f.rounds, *round)
	return round.ID, nil
}

func (f *fakeRounds) ListRounds(_ context.Context, userID int, limit uint64) ([]model.Round, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	var res []model.Round
	for i := len(f.rounds) - 1; i >= 0 && uint64(len(res)) < limit; i-- {
		if f.rounds[i].UserID == userID {
			res = append(res, f.rounds[i])
		}
	}
	return res, nil
}

type fakeCache struct {
	mtx       sync.Mutex
	snapshots map[string]model.User
}

func (f *fakeCache) Save(_ context.Context, sessionID string, user *model.User, _ time.Duration) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.snapshots[sessionID] = *user
	return nil
}

func (f *fakeCache) Update(_ context.Context, sessionID string, user *model.User) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if _, ok := f.snapshots[sessionID]; ok {
		f.snapshots[sessionID] = *user
	}
	return nil
}

func (f *fakeCache) Load(_ context.Context, sessionID string) (*model.User, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	u, ok := f.snapshots[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeCache) Delete(_ context.Context, sessionID string) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	delete(f.snapshots, sessionID)
	return nil
}

type fakeConfig struct{}

func (fakeConfig) StartingBalance() int { return 10000 }
func (fakeConfig) Chips() []int { return []int{10, 50, 100, 500, 1000} }
func (fakeConfig) DefaultChip() int { return 10 }
func (fakeConfig) SpinDelay() time.Duration { return 3 * time.Second }
func (fakeConfig) SettleDelay() time.Duration { return 4 * time.Second }
func (fakeConfig) StatsWindow() int { return 10 }
func (fakeConfig) Prizes() []model.Prize { return []model.Prize{{Name: "Car", Price: 1000000}} }

type fixedWheel int

func (w fixedWheel) Spin() int {
	return int(w)
}

// ---------- helpers ----------

const (
	testUserID    = 1
	testSessionID = "sess-1"
)

type harness struct {
	s      *serv
	users  *fakeUsers
	bets   *fakeBets
	rounds *fakeRounds
	cache  *fakeCache
	resets []func()
}

func newHarness(t *testing.T, balance int) (*harness, context.Context) {
	t.Helper()

	h := &harness{
		users:  &fakeUsers{users: map[int]model.User{testUserID: {ID: testUserID, Name: "Вася", Balance: balance}}},
		bets:   &fakeBets{bets: map[int][]rouletteModel.Bet{}},
		rounds: &fakeRounds{},
		cache:  &fakeCache{snapshots: map[string]model.User{testSessionID: {ID: testUserID, Name: "Вася", Balance: balance}}},
	}
	h.s = NewRouletteService(fakeConfig{}, h.users, h.bets, h.rounds, stats_repo.NewStatsRepository(10),
		h.cache, fakeTx{}, zap.NewNop())
	h.s.wheel = fixedWheel(0)
	h.s.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	h.s.after = func(_ time.Duration, f func()) { h.resets = append(h.resets, f) }

	return h, middleware.WithUser(context.Background(), testUserID, testSessionID)
}

func (h *harness) runResets() {
	for _, f := range h.resets {
		f()
	}
	h.resets = nil
}

// ---------- tests ----------

func TestPlaceBet_Accumulates(t *testing.T) {
	h, ctx := newHarness(t, 10000)

	if _, err := h.s.PlaceBet(ctx, rouletteModel.Red); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	if _, err := h.s.PlaceBet(ctx, rouletteModel.Black); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	tbl, err := h.s.PlaceBet(ctx, rouletteModel.Red)
	if err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	want := []rouletteModel.Bet{{Category: rouletteModel.Red, Amount: 20}, {Category: rouletteModel.Black, Amount: 10}}
	if len(tbl.Bets) != len(want) || tbl.Bets[0] != want[0] || tbl.Bets[1] != want[1] {
		t.Fatalf("bets = %+v, want %+v", tbl.Bets, want)
	}
	if tbl.TotalBet != 30 || tbl.Balance != 9970 {
		t.Errorf("total %d balance %d, want 30 / 9970", tbl.TotalBet, tbl.Balance)
	}
	if got := h.cache.snapshots[testSessionID].Balance; got != 9970 {
		t.Errorf("snapshot balance = %d, want 9970", got)
	}
}

func TestPlaceBet_InsufficientBalanceIsNoop(t *testing.T) {
	h, ctx := newHarness(t, 60)

	if _, err := h.s.SelectChip(ctx, 50); err != nil {
		t.Fatalf("SelectChip: %v", err)
	}
	if _, err := h.s.PlaceBet(ctx, rouletteModel.Odd); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	_, err := h.s.PlaceBet(ctx, rouletteModel.Odd)
	if !errors.Is(err, service.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	if got := h.users.balance(testUserID); got != 10 {
		t.Errorf("balance = %d, want 10", got)
	}
	bets, _ := h.bets.ListBets(ctx, testUserID)
	if len(bets) != 1 || bets[0].Amount != 50 {
		t.Errorf("bets = %+v, want single odd bet of 50", bets)
	}
}

func TestPlaceBet_Validation(t *testing.T) {
	h, ctx := newHarness(t, 10000)

	if _, err := h.s.PlaceBet(ctx, rouletteModel.Category("column")); !errors.Is(err, service.ErrInvalidCategory) {
		t.Errorf("err = %v, want ErrInvalidCategory", err)
	}
	if _, err := h.s.SelectChip(ctx, 25); !errors.Is(err, service.ErrInvalidChip) {
		t.Errorf("err = %v, want ErrInvalidChip", err)
	}
	if _, err := h.s.PlaceBet(context.Background(), rouletteModel.Red); err == nil {
		t.Error("PlaceBet without user in context must fail")
	}
}

func TestSpin_NoBets(t *testing.T) {
	h, ctx := newHarness(t, 10000)

	if _, err := h.s.Spin(ctx); !errors.Is(err, service.ErrNoBets) {
		t.Fatalf("err = %v, want ErrNoBets", err)
	}
	tbl, err := h.s.Table(ctx)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if tbl.Phase != model.PhaseIdle {
		t.Errorf("phase = %s, want idle", tbl.Phase)
	}
}

func TestSpin_FullRound(t *testing.T) {
	h, ctx := newHarness(t, 10000)

	if _, err := h.s.SelectChip(ctx, 100); err != nil {
		t.Fatalf("SelectChip: %v", err)
	}
	if _, err := h.s.PlaceBet(ctx, rouletteModel.Red); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	if _, err := h.s.SelectChip(ctx, 10); err != nil {
		t.Fatalf("SelectChip: %v", err)
	}
	if _, err := h.s.PlaceBet(ctx, rouletteModel.Green); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	res, err := h.s.Spin(ctx)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if res.Number != 0 || res.Color != rouletteModel.Green {
		t.Errorf("result %d %s, want 0 green", res.Number, res.Color)
	}
	if res.TotalBet != 110 || res.TotalPayout != 360 || res.Balance != 10250 {
		t.Errorf("bet %d payout %d balance %d, want 110 / 360 / 10250", res.TotalBet, res.TotalPayout, res.Balance)
	}

	// Результат виден, стол занят до сброса
	tbl, err := h.s.Table(ctx)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if tbl.Phase != model.PhaseSettled || tbl.Result == nil || *tbl.Result != 0 || len(tbl.Bets) != 2 {
		t.Fatalf("settled table = %+v", tbl)
	}
	if _, err := h.s.PlaceBet(ctx, rouletteModel.Red); !errors.Is(err, service.ErrRoundInProgress) {
		t.Errorf("PlaceBet while settled: err = %v, want ErrRoundInProgress", err)
	}
	if _, err := h.s.Spin(ctx); !errors.Is(err, service.ErrRoundInProgress) {
		t.Errorf("Spin while settled: err = %v, want ErrRoundInProgress", err)
	}

	h.runResets()

	tbl, err = h.s.Table(ctx)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if tbl.Phase != model.PhaseIdle || tbl.Result != nil || len(tbl.Bets) != 0 || tbl.TotalBet != 0 {
		t.Errorf("table after reset = %+v", tbl)
	}
	if tbl.Balance != 10000-110+360 {
		t.Errorf("balance = %d, want %d", tbl.Balance, 10000-110+360)
	}

	if len(h.rounds.rounds) != 1 || h.rounds.rounds[0].TotalPayout != 360 {
		t.Errorf("rounds = %+v", h.rounds.rounds)
	}
	if got := h.cache.snapshots[testSessionID].Balance; got != 10250 {
		t.Errorf("snapshot balance = %d, want 10250", got)
	}
	if s := h.s.Stats(); s.TotalSpins != 1 || s.TotalBet != 110 || s.TotalPayout != 360 {
		t.Errorf("stats = %+v", s)
	}
}

func TestSpin_LosingRound(t *testing.T) {
	h, ctx := newHarness(t, 100)
	h.s.wheel = fixedWheel(2)

	for _, c := range []rouletteModel.Category{rouletteModel.Red, rouletteModel.Odd, rouletteModel.High} {
		if _, err := h.s.PlaceBet(ctx, c); err != nil {
			t.Fatalf("PlaceBet(%s): %v", c, err)
		}
	}

	res, err := h.s.Spin(ctx)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if res.TotalPayout != 0 || res.Balance != 70 {
		t.Errorf("payout %d balance %d, want 0 / 70", res.TotalPayout, res.Balance)
	}
	for _, o := range res.Outcomes {
		if o.Won {
			t.Errorf("bet %s must lose on 2", o.Category)
		}
	}
}

func TestSpin_CancelledKeepsBets(t *testing.T) {
	h, ctx := newHarness(t, 10000)

	if _, err := h.s.PlaceBet(ctx, rouletteModel.Even); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := h.s.Spin(cctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	tbl, err := h.s.Table(ctx)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if tbl.Phase != model.PhaseIdle || len(tbl.Bets) != 1 || tbl.Balance != 9990 {
		t.Errorf("table = %+v", tbl)
	}
}

func TestSpin_RefusesConcurrentActions(t *testing.T) {
	h, ctx := newHarness(t, 10000)

	started := make(chan struct{})
	release := make(chan struct{})
	h.s.sleep = func(context.Context, time.Duration) error {
		close(started)
		<-release
		return nil
	}

	if _, err := h.s.PlaceBet(ctx, rouletteModel.Low); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := h.s.Spin(ctx)
		done <- err
	}()
	<-started

	tbl, err := h.s.Table(ctx)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if tbl.Phase != model.PhaseSpinning {
		t.Errorf("phase = %s, want spinning", tbl.Phase)
	}
	if _, err := h.s.Spin(ctx); !errors.Is(err, service.ErrRoundInProgress) {
		t.Errorf("second Spin: err = %v, want ErrRoundInProgress", err)
	}
	if _, err := h.s.PlaceBet(ctx, rouletteModel.Low); !errors.Is(err, service.ErrRoundInProgress) {
		t.Errorf("PlaceBet while spinning: err = %v, want ErrRoundInProgress", err)
	}
	if _, err := h.s.ClearBets(ctx); !errors.Is(err, service.ErrRoundInProgress) {
		t.Errorf("ClearBets while spinning: err = %v, want ErrRoundInProgress", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Spin: %v", err)
	}
}

func TestClearBets_Refunds(t *testing.T) {
	h, ctx := newHarness(t, 1000)

	if _, err := h.s.SelectChip(ctx, 500); err != nil {
		t.Fatalf("SelectChip: %v", err)
	}
	if _, err := h.s.PlaceBet(ctx, rouletteModel.High); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	tbl, err := h.s.ClearBets(ctx)
	if err != nil {
		t.Fatalf("ClearBets: %v", err)
	}
	if len(tbl.Bets) != 0 || tbl.Balance != 1000 {
		t.Errorf("table = %+v, want no bets and balance 1000", tbl)
	}

	// Пустой стол очищается без ошибок
	if _, err := h.s.ClearBets(ctx); err != nil {
		t.Errorf("ClearBets on empty table: %v", err)
	}
}

func TestRelease(t *testing.T) {
	h, ctx := newHarness(t, 1000)

	if _, err := h.s.SelectChip(ctx, 50); err != nil {
		t.Fatalf("SelectChip: %v", err)
	}
	h.s.Release(testUserID)

	tbl, err := h.s.Table(ctx)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if tbl.SelectedChip != 10 {
		t.Errorf("SelectedChip = %d, want default 10", tbl.SelectedChip)
	}
}

func TestGameInfo(t *testing.T) {
	h, _ := newHarness(t, 0)

	info := h.s.GameInfo()
	if len(info.Categories) != 7 || info.StartingBalance != 10000 || info.DefaultChip != 10 {
		t.Fatalf("info = %+v", info)
	}
	for _, c := range info.Categories {
		want := 2
		if c.Category == rouletteModel.Green {
			want = 36
		}
		if c.Multiplier != want {
			t.Errorf("%s multiplier = %d, want %d", c.Category, c.Multiplier, want)
		}
	}
}

func TestDeletedUser_TableIsForgotten(t *testing.T) {
	h, ctx := newHarness(t, 1000)

	if _, err := h.s.SelectChip(ctx, 50); err != nil {
		t.Fatalf("SelectChip: %v", err)
	}
	// Пользователь удален вместе с сессией, access токен еще действует
	if err := h.users.DeleteUser(ctx, testUserID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	calls := []struct {
		name string
		call func(ctx context.Context) error
	}{
		{name: "Table", call: func(ctx context.Context) error { _, err := h.s.Table(ctx); return err }},
		{name: "SelectChip", call: func(ctx context.Context) error { _, err := h.s.SelectChip(ctx, 100); return err }},
		{name: "PlaceBet", call: func(ctx context.Context) error { _, err := h.s.PlaceBet(ctx, rouletteModel.Red); return err }},
		{name: "Spin", call: func(ctx context.Context) error { _, err := h.s.Spin(ctx); return err }},
	}
	for _, c := range calls {
		if err := c.call(ctx); !errors.Is(err, service.ErrNoUser) {
			t.Errorf("%s: err = %v, want ErrNoUser", c.name, err)
		}
		if n := len(h.s.tables); n != 0 {
			t.Errorf("%s: tables = %d, want 0", c.name, n)
		}
	}

	for id := 100; id < 110; id++ {
		uctx := middleware.WithUser(context.Background(), id, "sess-x")
		if _, err := h.s.Table(uctx); !errors.Is(err, service.ErrNoUser) {
			t.Fatalf("Table(%d): err = %v, want ErrNoUser", id, err)
		}
	}
	if n := len(h.s.tables); n != 0 {
		t.Errorf("tables = %d, want 0", n)
	}
}
