package auth

import (
	"context"
	"errors"
	"fmt"
	"roulette_backend/internal/metrics"
	"roulette_backend/internal/repository"

	"go.uber.org/zap"
)

// Logout закрывает сессию и удаляет пользователя вместе с его ставками
func (s *serv) Logout(ctx context.Context, sessionID string) error {
	return s.endSession(ctx, sessionID)
}

func (s *serv) endSession(ctx context.Context, sessionID string) error {
	userID := 0
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		user, err := s.authRepo.GetUserBySessionID(ctx, sessionID, s.now())
		if err != nil {
			// Сессии нет или она просрочена - ее подберет очистка по расписанию
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		userID = user.ID

		if err := s.authRepo.DeleteSession(ctx, sessionID); err != nil {
			return err
		}
		return s.userRepo.DeleteUser(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	if userID != 0 {
		s.tables.Release(userID)
		s.log.Info("user logged out", zap.Int("user_id", userID))
	}

	// Ошибка удаления снимка возвращается клиенту, повторный выход дочищает его
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete user snapshot: %w", err)
	}
	return nil
}

// CleanupExpiredSessions удаляет просроченные сессии и их пользователей
func (s *serv) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	userIDs, err := s.authRepo.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, err
	}
	for _, id := range userIDs {
		s.tables.Release(id)
	}

	n := int64(len(userIDs))
	metrics.ExpiredSessions(n)
	return n, nil
}
