package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = TokenConfig{
	AccessSecret:  []byte("test-access-secret"),
	RefreshSecret: []byte("test-refresh-secret"),
	AccessTTL:     time.Hour,
	RefreshTTL:    7 * 24 * time.Hour,
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndVerifyToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	token, err := generateToken(testConfig.AccessSecret, "user-1", now, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyAccessToken(testConfig, token, fixedClock(now.Add(30*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestVerifyToken_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	token, err := generateToken(testConfig.AccessSecret, "user-1", now, time.Hour)
	require.NoError(t, err)

	// valid just before the boundary
	_, err = VerifyAccessToken(testConfig, token, fixedClock(now.Add(59*time.Minute)))
	assert.NoError(t, err)

	_, err = VerifyAccessToken(testConfig, token, fixedClock(now.Add(2*time.Hour)))
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyToken_Invalid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyAccessToken(testConfig, tt.token, fixedClock(now))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyToken_SecretsAreNotInterchangeable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	refresh, err := generateToken(testConfig.RefreshSecret, "user-1", now, testConfig.RefreshTTL)
	require.NoError(t, err)

	// a refresh token must not pass as an access token
	_, err = VerifyAccessToken(testConfig, refresh, fixedClock(now))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifyRefreshToken(testConfig, refresh, fixedClock(now))
	assert.NoError(t, err)
}
