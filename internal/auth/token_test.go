package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personaai/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Name:  "John Doe",
		Email: "john@example.com",
		Type:  models.RoleAdmin,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "personaai-api", claims.Issuer)
}

func TestNewTokenIssuerEmptySecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	issuer.ttl = -time.Minute

	token, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = issuer.Validate("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2!", hash)

	assert.True(t, CheckPassword(hash, "hunter2!"))
	assert.False(t, CheckPassword(hash, "hunter3!"))
	assert.False(t, CheckPassword("", "hunter2!"))
}
