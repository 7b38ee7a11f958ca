package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-not-for-production")

func TestGuestTokenRoundTrip(t *testing.T) {
	playerID := uuid.New()

	token, err := IssueGuestToken(testSecret, playerID, "Alice", DefaultTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, gotName, err := ParseGuestToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, playerID, gotID)
	assert.Equal(t, "Alice", gotName)
}

func TestGuestTokenWrongSecret(t *testing.T) {
	token, err := IssueGuestToken(testSecret, uuid.New(), "Alice", DefaultTTL)
	require.NoError(t, err)

	_, _, err = ParseGuestToken([]byte("some-other-secret"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNonPositiveTTLFallsBackToDefault(t *testing.T) {
	token, err := IssueGuestToken(testSecret, uuid.New(), "Alice", -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseGuestToken(testSecret, token)
	assert.NoError(t, err, "a non-positive ttl is coerced to the default, so the token is valid")
}

func TestGuestTokenExpired(t *testing.T) {
	now := time.Now()
	claims := GuestClaims{
		Name: "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, _, err = ParseGuestToken(testSecret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGuestTokenBadSubject(t *testing.T) {
	now := time.Now()
	claims := GuestClaims{
		Name: "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, _, err = ParseGuestToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGuestTokenGarbage(t *testing.T) {
	_, _, err := ParseGuestToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
