package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/event-booking-api/internal/utils"
)

func TestNewAccessTokenClaims(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 42, "ORGANIZER", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "ORGANIZER", claims["role"])
}

func TestRefreshTokenHashedNotRaw(t *testing.T) {
	rt, err := utils.NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)

	hash := utils.HashRefreshRaw(rt.Raw)
	assert.NotEqual(t, rt.Raw, hash)
	assert.Equal(t, hash, utils.HashRefreshRaw(rt.Raw))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(hash, "hunter22"))
	assert.False(t, utils.VerifyPassword(hash, "hunter23"))
}
