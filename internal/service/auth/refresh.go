package auth

import (
	"context"
	"errors"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/token"
)

func (s *serv) Refresh(ctx context.Context, sessionID, refreshToken string) (string, error) {
	// Получение хэша refresh токена из хранилища по sessionID
	refreshTokenHash, err := s.authRepo.GetRefreshTokenBySessionID(ctx, sessionID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", service.ErrNoUser
		}
		return "", err
	}

	// Верификация переданного refresh токена с хэшем из хранилища
	if !token.VerifyRefreshToken(refreshToken, refreshTokenHash) {
		return "", service.ErrInvalidToken
	}

	user, err := s.authRepo.GetUserBySessionID(ctx, sessionID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", service.ErrNoUser
		}
		return "", err
	}

	return token.GenerateAccessToken(
		user,
		sessionID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
}
