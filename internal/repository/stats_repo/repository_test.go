package stats_repo

import (
	"math"
	"testing"
)

func TestUpdateState(t *testing.T) {
	r := NewStatsRepository(2)

	r.UpdateState(100, 200)
	r.UpdateState(100, 0)
	r.UpdateState(100, 0)

	s := r.Stats()
	if s.TotalSpins != 3 || s.TotalBet != 300 || s.TotalPayout != 200 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if math.Abs(s.CurrentRTP-66.666) > 0.01 {
		t.Errorf("CurrentRTP = %.3f, want ~66.667", s.CurrentRTP)
	}
	// В окне остались только два последних проигрыша
	if s.WindowRTP != 0 {
		t.Errorf("WindowRTP = %.3f, want 0", s.WindowRTP)
	}
}

func TestDeviationAlarm(t *testing.T) {
	r := NewStatsRepository(500)

	for i := 0; i < minSpinsToCheck-1; i++ {
		r.UpdateState(10, 0)
	}
	if alarm, _ := r.DeviationAlarm(); alarm {
		t.Fatal("alarm must not fire before enough spins")
	}

	r.UpdateState(10, 0)
	alarm, windowRTP := r.DeviationAlarm()
	if !alarm {
		t.Fatalf("alarm must fire on zero RTP, window RTP %.2f", windowRTP)
	}

	fair := NewStatsRepository(500)
	for i := 0; i < minSpinsToCheck; i++ {
		fair.UpdateState(37, 36)
	}
	if alarm, _ := fair.DeviationAlarm(); alarm {
		t.Error("alarm must not fire at target RTP")
	}
}
