// Package auth issues and verifies guest identity tokens. A guest token pins
// a player id to a client so the same identity survives reconnects without
// persistent accounts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is how long a guest token stays valid.
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken is returned for tokens that fail to parse or verify.
var ErrInvalidToken = errors.New("auth: invalid guest token")

// GuestClaims carries the guest's display name alongside the registered
// claims; the player id travels in Subject.
type GuestClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// IssueGuestToken mints a signed token for a guest identity.
func IssueGuestToken(secret []byte, playerID uuid.UUID, name string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := GuestClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign guest token: %w", err)
	}
	return signed, nil
}

// ParseGuestToken verifies a token and returns the guest's player id and name.
func ParseGuestToken(secret []byte, tokenString string) (uuid.UUID, string, error) {
	var claims GuestClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}
	playerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}
	return playerID, claims.Name, nil
}
