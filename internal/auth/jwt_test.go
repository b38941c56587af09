package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("access-secret", 42, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), tok.Exp, 5*time.Second)

	id, err := VerifyToken("access-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("access-secret", 1, 60)
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := VerifyToken("secret", raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}
}

func TestAccessAndRefreshSecretsAreNotInterchangeable(t *testing.T) {
	access, err := NewAccessToken("access-secret", 7, 60)
	require.NoError(t, err)
	refresh, err := NewRefreshToken("refresh-secret", 7, 7)
	require.NoError(t, err)

	// A refresh token must not verify as an access token and vice versa.
	_, err = VerifyToken("access-secret", refresh.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = VerifyToken("refresh-secret", access.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	id, err := VerifyToken("refresh-secret", refresh.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
}

func TestRefreshTokenExpiry(t *testing.T) {
	refresh, err := NewRefreshToken("refresh-secret", 3, 7)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), refresh.Exp, 5*time.Second)
}

func TestHashRefreshIsStable(t *testing.T) {
	a := HashRefresh("some-token")
	b := HashRefresh("some-token")
	c := HashRefresh("other-token")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // sha256 hex
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secret1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, VerifyPassword(hash, "secret1"))
	assert.False(t, VerifyPassword(hash, "secret2"))
	assert.False(t, VerifyPassword("not-a-hash", "secret1"))
}
