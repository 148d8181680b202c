package auth_test

import (
	"testing"
	"time"

	"planner/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	token, err := auth.GenerateToken("test-secret-key", userID, "Admin", 24*time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ParseToken("test-secret-key", token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Admin", claims.Role)
}

func TestParseToken_InvalidToken(t *testing.T) {
	_, err := auth.ParseToken("test-secret-key", "invalid-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("test-secret-key", uuid.New(), "User", time.Hour)
	assert.NoError(t, err)

	_, err = auth.ParseToken("another-secret", token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := auth.GenerateToken("test-secret-key", uuid.New(), "User", -time.Hour)
	assert.NoError(t, err)

	_, err = auth.ParseToken("test-secret-key", token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
