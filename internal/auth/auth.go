package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const TokenExp = 24 * time.Hour

var jwtSecret = []byte("dev-secret")

var ErrInvalidToken = errors.New("invalid or expired token")

// SetSecret replaces the signing secret. Called once at startup.
func SetSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

type Claims struct {
	jwt.RegisteredClaims
	Login string `json:"login"`
}

func GenerateToken(login string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
		},
		Login: login,
	})

	return token.SignedString(jwtSecret)
}

// ParseLogin validates a token and returns the login it was issued for.
func ParseLogin(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.Login, nil
}
