package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tronghn/taskhub/internal/model"
)

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)

	access, err := j.GenerateAccessToken("alice")
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, "alice", got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)

	refresh, err := j.GenerateRefreshToken("alice")
	require.NoError(t, err)
	got, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, "alice", got)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)

	access, err := j.GenerateAccessToken("alice")
	require.NoError(t, err)

	_, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	refresh, err := j.GenerateRefreshToken("alice")
	require.NoError(t, err)

	_, err = j.ParseAccessToken(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", -time.Minute, 24*time.Hour)

	access, err := j.GenerateAccessToken("alice")
	require.NoError(t, err)

	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_WrongSecret(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)
	other := NewJWT("other", time.Hour, 24*time.Hour)

	access, err := j.GenerateAccessToken("alice")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)

	_, err := j.ParseAccessToken("not-a-token")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}
