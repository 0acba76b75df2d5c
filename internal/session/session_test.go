package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetUnknownReturnsFreshSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.ID)
	assert.Equal(t, DefaultNumPeople, sess.NumPeople)
	assert.False(t, sess.HasRecipe)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	sess := New("abc")
	sess.SetRecipe("eggs, flour, milk", 4, "Step 1: ...")
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "eggs, flour, milk", loaded.Ingredients)
	assert.Equal(t, 4, loaded.NumPeople)
	assert.Equal(t, "Step 1: ...", loaded.Recipe)
	assert.True(t, loaded.HasRecipe)

	// Mutating the returned copy must not change the stored session
	loaded.Recipe = "changed"
	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Step 1: ...", again.Recipe)
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	sess := New("abc")
	sess.SetRecipe("eggs", 2, "first")
	require.NoError(t, store.Save(ctx, sess))
	sess.SetRecipe("rice", 3, "second")
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "rice", loaded.Ingredients)
	assert.Equal(t, 3, loaded.NumPeople)
	assert.Equal(t, "second", loaded.Recipe)
}

func TestMemoryStoreExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, New("abc")))
	assert.Equal(t, 1, store.Len())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, store.Len())

	sess, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, sess.HasRecipe)
}

func TestMemoryStoreSaveRequiresID(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	assert.ErrorIs(t, store.Save(context.Background(), &Session{}), ErrMissingID)
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	id := NewSessionID()

	token, err := manager.GenerateToken(id)
	require.NoError(t, err)

	got, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).GenerateToken(NewSessionID())
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := NewTokenManager("secret", -time.Minute).GenerateToken(NewSessionID())
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateTokenRejectsNonUUIDSession(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	token, err := manager.GenerateToken("not-a-uuid")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}
