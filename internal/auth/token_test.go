package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(TokenConfig{
		Secret: []byte("test-secret-key-for-learner-tokens"),
		TTL:    ttl,
	})
}

func TestManager_GenerateAndValidate(t *testing.T) {
	manager := newTestManager(time.Hour)
	learnerID := uuid.New()

	token, err := manager.Generate(learnerID, "Ada")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, learnerID, claims.LearnerID)
	assert.Equal(t, "Ada", claims.DisplayName)
	assert.Equal(t, learnerID.String(), claims.Subject)
}

func TestManager_Validate_Expired(t *testing.T) {
	manager := newTestManager(-time.Minute)

	token, err := manager.Generate(uuid.New(), "Ada")
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_Validate_WrongSecret(t *testing.T) {
	manager := newTestManager(time.Hour)
	other := NewManager(TokenConfig{Secret: []byte("a-completely-different-secret")})

	token, err := manager.Generate(uuid.New(), "Ada")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Validate_Garbage(t *testing.T) {
	manager := newTestManager(time.Hour)

	_, err := manager.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
