package auth

import (
	"context"
	"errors"
	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/service"

	"go.uber.org/zap"
)

// Restore возвращает пользователя сессии по снимку из кэша.
// Битый снимок отбрасывается вместе с сессией: пользователь считается не вошедшим
func (s *serv) Restore(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, service.ErrNoUser
	}

	user, err := s.cache.Load(ctx, sessionID)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, repository.ErrSnapshotMalformed):
		s.log.Warn("discarding malformed user snapshot", zap.String("session_id", sessionID), zap.Error(err))
		if err := s.endSession(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, service.ErrNoUser
	case errors.Is(err, repository.ErrNotFound):
	default:
		// Кэш недоступен - читаем из БД
		s.log.Warn("failed to load user snapshot", zap.String("session_id", sessionID), zap.Error(err))
	}

	user, err = s.authRepo.GetUserBySessionID(ctx, sessionID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, service.ErrNoUser
		}
		return nil, err
	}

	if err := s.cache.Save(ctx, sessionID, user, s.jwtConfig.RefreshTokenDuration()); err != nil {
		s.log.Warn("failed to save user snapshot", zap.String("session_id", sessionID), zap.Error(err))
	}

	return user, nil
}
