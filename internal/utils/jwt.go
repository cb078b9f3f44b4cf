package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	OpenID string `json:"open_id"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session JWT for the given open id.
func GenerateToken(secret, openID string, ttl time.Duration) (string, error) {
	if openID == "" {
		return "", errors.New("open id is required")
	}

	now := time.Now()
	claims := &sessionClaims{
		OpenID: openID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   openID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded open id.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*sessionClaims); ok && token.Valid && claims.OpenID != "" {
		return claims.OpenID, nil
	}

	return "", jwt.ErrTokenInvalidClaims
}
