package converter

import (
	dto "roulette_backend/internal/api/dto/auth"
	"roulette_backend/internal/model"
)

func ToUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Name,
		Balance:  user.Balance,
	}
}

func ToLoginResponse(data *model.AuthData) dto.LoginResponse {
	return dto.LoginResponse{
		AccessToken: data.AccessToken,
		User:        ToUserResponse(data.User),
	}
}
