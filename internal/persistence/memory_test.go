package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/ownership"
)

func testTheme(id, owner string) models.Theme {
	block := models.Block{
		Bg: "#fffcf0", Bg2: "#f2f0e5", UI: "#e6e4d9", UI2: "#dad8ce", UI3: "#cecdc3",
		Tx3: "#b7b5ac", Tx2: "#6f6e69", Tx: "#100f0f", Pr: "#205ea6", Sc: "#5e409d",
		Ac1: "#af3029", Ac2: "#66800b", Ac3: "#ad8301",
	}
	return models.Theme{ID: id, Name: "Theme " + id, OwnerID: owner, Light: block, Dark: block}
}

func TestMemoryStoreSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	layers := []models.OverrideLayer{{Channel: models.ChannelEditor, Mode: models.ModeDark, Values: map[string]string{"editor.background": "#000000"}}}
	res, err := store.Save(ctx, testTheme("a", "user_1"), layers, true)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.True(t, res.Saved.IsPublic)

	_, err = store.Save(ctx, testTheme("b", "user_1"), nil, false)
	require.NoError(t, err)
	_, err = store.Save(ctx, testTheme("c", "user_2"), nil, false)
	require.NoError(t, err)

	themes, err := store.LoadUserThemes(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, themes, 2)
	assert.Equal(t, "b", themes[0].Theme.ID, "newest first")
	assert.Equal(t, "a", themes[1].Theme.ID)
	assert.Equal(t, "#000000", themes[1].Overrides[0].Values["editor.background"])

	// Stored layers are isolated from the caller.
	layers[0].Values["editor.background"] = "#ffffff"
	themes, _ = store.LoadUserThemes(ctx, "user_1")
	assert.Equal(t, "#000000", themes[1].Overrides[0].Values["editor.background"])
}

func TestMemoryStoreAssignsIDAndAnonymousOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	res, err := store.Save(ctx, testTheme("", ownership.OwnerMine), nil, false)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Saved.ID)

	themes, err := store.LoadUserThemes(ctx, "")
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Equal(t, res.Saved.ID, themes[0].Theme.ID)
}

func TestMemoryStoreRejectsInvalidTheme(t *testing.T) {
	theme := testTheme("bad", "user_1")
	theme.Dark.Pr = ""
	_, err := NewMemoryStore().Save(context.Background(), theme, nil, false)
	require.ErrorIs(t, err, ErrPersistence)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.Save(ctx, testTheme("a", "user_1"), nil, false)
	require.NoError(t, err)

	ok, err := store.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Save(ctx, testTheme("a", "user_1"), nil, false)
	require.ErrorIs(t, err, ErrPersistence)
	_, err = NewMemoryStore().LoadUserThemes(ctx, "user_1")
	require.ErrorIs(t, err, ErrPersistence)
	_, err = NewMemoryStore().Delete(ctx, "a")
	require.ErrorIs(t, err, ErrPersistence)
}
