package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.winapps.chatterbox/internal/db"
	models "io.winapps.chatterbox/internal/models/account"
)

func TestDirectory_RegisterAndGet(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	dir := NewDirectory(store)

	alice := models.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Image: "https://img/a.png"}
	require.NoError(t, dir.Register(ctx, alice))

	got, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	id, err := dir.IDByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestDirectory_Get_Errors(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	dir := NewDirectory(store)

	_, err := dir.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, db.UserKey("broken"), "{not json"))
	_, err = dir.Get(ctx, "broken")
	assert.ErrorIs(t, err, ErrInvalidRecord)

	boom := errors.New("boom")
	store.FailOn(db.OpGet, db.UserKey("u9"), boom)
	_, err = dir.Get(ctx, "u9")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDirectory_Get_FillsMissingID(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	require.NoError(t, store.Set(ctx, db.UserKey("u2"), `{"name":"Bob","email":"bob@example.com"}`))

	got, err := NewDirectory(store).Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "u2", got.ID)
	assert.Equal(t, "bob@example.com", got.Email)
}

func TestDirectory_IDByEmail_Errors(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	dir := NewDirectory(store)

	_, err := dir.IDByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	boom := errors.New("boom")
	store.FailOn(db.OpGet, db.UserEmailKey("x@example.com"), boom)
	_, err = dir.IDByEmail(ctx, "x@example.com")
	assert.ErrorIs(t, err, boom)
}

func TestDirectory_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("empty id", func(t *testing.T) {
		err := NewDirectory(db.NewMemoryStore()).Register(ctx, models.User{Email: "a@example.com"})
		assert.Error(t, err)
	})

	t.Run("no email skips index", func(t *testing.T) {
		store := db.NewMemoryStore()
		require.NoError(t, NewDirectory(store).Register(ctx, models.User{ID: "u3"}))

		keys, err := store.ScanKeys(ctx, "user:email:*")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("index write fails after profile write", func(t *testing.T) {
		store := db.NewMemoryStore()
		store.FailOn(db.OpSet, db.UserEmailKey("c@example.com"), errors.New("boom"))

		err := NewDirectory(store).Register(ctx, models.User{ID: "u4", Email: "c@example.com"})
		assert.ErrorContains(t, err, "index email")

		_, err = store.Get(ctx, db.UserKey("u4"))
		assert.NoError(t, err, "profile write is not rolled back")
	})
}
