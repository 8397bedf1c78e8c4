package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// User Игрок. Создается при входе, удаляется при выходе
type User struct {
	ID      int
	Name    string
	Balance int
}

type UserClaims struct {
	jwt.RegisteredClaims
}
