package database

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStore_GetMissing(t *testing.T) {
	db, err := InitDatabase(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, &Setting{}))

	store := NewSettingsStore(db)
	value, ok, err := store.Get(context.Background(), "librarySortOption")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSettingsStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	db, err := InitDatabase(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, &Setting{}))

	store := NewSettingsStore(db)
	require.NoError(t, store.Set(ctx, "librarySortOption", "byActive"))
	require.NoError(t, store.Set(ctx, "librarySortOption", "byDateAscending"))

	value, ok, err := store.Get(ctx, "librarySortOption")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "byDateAscending", value)

	var count int64
	require.NoError(t, db.Model(&Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
