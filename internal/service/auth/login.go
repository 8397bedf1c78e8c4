package auth

import (
	"context"
	"roulette_backend/internal/metrics"
	"roulette_backend/internal/model"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/token"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Login создает нового игрока со стартовым балансом и открывает для него сессию
func (s *serv) Login(ctx context.Context, name string) (*model.AuthData, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > maxNameLength {
		return nil, service.ErrInvalidName
	}

	user := &model.User{
		Name:    name,
		Balance: s.startingBalance,
	}

	var (
		sessionID    string
		refreshToken string
		accessToken  string
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		// 1. Создать пользователя в бд
		user.ID, err = s.userRepo.CreateUser(ctx, user)
		if err != nil {
			return err
		}

		// 2. Сгенерировать refresh токен и создать сессию
		sessionID = uuid.NewString()
		refreshToken, err = token.GenerateRefreshToken()
		if err != nil {
			return err
		}
		err = s.authRepo.CreateSession(ctx, &model.Session{
			ID:           sessionID,
			UserID:       user.ID,
			RefreshToken: token.HashRefreshToken(refreshToken),
			ExpiresAt:    s.now().Add(s.jwtConfig.RefreshTokenDuration()),
		})
		if err != nil {
			return err
		}

		// 3. Создать access токен
		accessToken, err = token.GenerateAccessToken(
			user,
			sessionID,
			s.jwtConfig.AccessTokenSecretKey(),
			s.jwtConfig.AccessTokenDuration())
		return err
	})
	if err != nil {
		return nil, err
	}

	// Снимок живет столько же, сколько сессия
	if err := s.cache.Save(ctx, sessionID, user, s.jwtConfig.RefreshTokenDuration()); err != nil {
		s.log.Warn("failed to save user snapshot", zap.String("session_id", sessionID), zap.Error(err))
	}

	metrics.Login()
	s.log.Info("user logged in", zap.Int("user_id", user.ID), zap.String("name", user.Name))

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
		User:         user,
	}, nil
}
