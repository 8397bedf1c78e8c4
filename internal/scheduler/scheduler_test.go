package scheduler

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeCleaner struct {
	calls int
	err   error
}

func (f *fakeCleaner) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("cleanup must run with a deadline")
	}
	return 2, f.err
}

func TestNew_InvalidSpec(t *testing.T) {
	if _, err := New("every now and then", &fakeCleaner{}, zap.NewNop()); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestCleanupSessions(t *testing.T) {
	cleaner := &fakeCleaner{}
	s, err := New("@hourly", cleaner, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s.cleanupSessions()
	cleaner.err = errors.New("db down")
	s.cleanupSessions()

	if cleaner.calls != 2 {
		t.Errorf("calls = %d, want 2", cleaner.calls)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, err := New("@every 1h", &fakeCleaner{}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); err != nil {
		t.Errorf("Run: %v", err)
	}
}
