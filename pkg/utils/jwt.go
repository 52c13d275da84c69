package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
)

func CreateJWTToken(accountID int64, username string, roles []string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["accountID"] = accountID
	claims["username"] = username
	claims["roles"] = roles
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}
