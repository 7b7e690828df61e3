package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-key")

	token, err := tokens.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestValidateRejectsForeignKey(t *testing.T) {
	token, err := NewTokenManager("key-one").Generate(1)
	require.NoError(t, err)

	_, err = NewTokenManager("key-two").Validate(token)
	assert.Error(t, err)
}

func TestFromRequestHeader(t *testing.T) {
	tokens := NewTokenManager("test-key")
	token, err := tokens.Generate(7)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/realtime/chat/1/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	claims, err := tokens.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestFromRequestQueryParam(t *testing.T) {
	tokens := NewTokenManager("test-key")
	token, err := tokens.Generate(7)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/realtime/chat/1/?token="+token, nil)

	claims, err := tokens.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestFromRequestNoToken(t *testing.T) {
	tokens := NewTokenManager("test-key")

	r := httptest.NewRequest("GET", "/realtime/chat/1/", nil)

	_, err := tokens.FromRequest(r)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("a_very_secure_password_123")
	require.NoError(t, err)
	require.NotEqual(t, "a_very_secure_password_123", hash)

	assert.True(t, CheckPasswordHash("a_very_secure_password_123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
