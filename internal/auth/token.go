// Package auth mints and verifies the JWTs that identify websocket clients.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the player identity inside a token.
type Claims struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// CreateToken signs a token for the given player, valid for ttl.
func CreateToken(secret []byte, playerID uuid.UUID, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		PlayerID: playerID.String(),
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "guandan",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and returns the player identity.
func VerifyToken(secret []byte, tokenString string) (uuid.UUID, string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("auth: parse token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, "", fmt.Errorf("auth: invalid token")
	}
	playerID, err := uuid.Parse(claims.PlayerID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("auth: malformed player id: %w", err)
	}
	return playerID, claims.Name, nil
}
