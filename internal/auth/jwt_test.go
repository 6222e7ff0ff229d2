package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	manager, err := NewJWTManager("test-secret")
	require.NoError(t, err)

	token, err := manager.GenerateSessionJWT("user-1", "sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := manager.ValidateSessionJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestJWTManagerRejectsBadTokens(t *testing.T) {
	manager, err := NewJWTManager("test-secret")
	require.NoError(t, err)
	other, err := NewJWTManager("other-secret")
	require.NoError(t, err)

	expired, err := manager.GenerateSessionJWT("user-1", "sid-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = manager.ValidateSessionJWT(expired)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)

	foreign, err := other.GenerateSessionJWT("user-1", "sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = manager.ValidateSessionJWT(foreign)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	_, err = manager.ValidateSessionJWT("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{UserID: "user-1", SessionID: "sid-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = manager.ValidateSessionJWT(unsigned)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager("")
	assert.Error(t, err)
}
