package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewService(nil, "test-secret")

	token, err := s.issueToken("user_123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", userID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewService(nil, "secret-a")
	verifier := NewService(nil, "secret-b")

	token, err := issuer.issueToken("user_123")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	s := NewService(nil, "test-secret")
	_, err := s.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsUnsignedAlg(t *testing.T) {
	s := NewService(nil, "test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user_123"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}
