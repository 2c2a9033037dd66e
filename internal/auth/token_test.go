package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.GenerateToken("a@x.com", 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestValidateToken_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.GenerateToken("a@x.com", -time.Minute)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongKey(t *testing.T) {
	issuer := NewTokenManager("key-one")
	verifier := NewTokenManager("key-two")

	token, err := issuer.GenerateToken("a@x.com", 30*time.Minute)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, bad := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := tm.ValidateToken(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q should be rejected", bad)
	}
}

func TestGenerateToken_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.GenerateToken("a@x.com", 0)
	require.NoError(t, err)

	subject, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}
