package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-testing", 15*time.Minute)

	token, err := manager.GenerateAccessToken("user-1", "john@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-testing", -time.Minute)

	token, err := manager.GenerateAccessToken("user-1", "john@example.com", "customer")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-testing", 15*time.Minute)
	other := NewJWTManager("a-completely-different-secret", 15*time.Minute)

	token, err := manager.GenerateAccessToken("user-1", "john@example.com", "customer")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_MalformedToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-testing", 15*time.Minute)

	_, err := manager.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
