package prefs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	learner := uuid.New()

	muted, err := store.Muted(ctx, learner)
	require.NoError(t, err)
	assert.False(t, muted, "unknown learner defaults to unmuted")

	require.NoError(t, store.SetMuted(ctx, learner, true))
	muted, err = store.Muted(ctx, learner)
	require.NoError(t, err)
	assert.True(t, muted)

	require.NoError(t, store.SetMuted(ctx, learner, false))
	muted, err = store.Muted(ctx, learner)
	require.NoError(t, err)
	assert.False(t, muted)
}

func TestBoolEncodingContract(t *testing.T) {
	// Clients store and compare the literal strings, so the encoding is
	// bit-exact: "true" / "false", nothing else.
	assert.Equal(t, "true", encodeBool(true))
	assert.Equal(t, "false", encodeBool(false))
	assert.Equal(t, "chatbot_muted", MutedKey)
}
