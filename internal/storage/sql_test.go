package storage

import (
	"context"
	"path/filepath"
	"sentinel/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "sentinel.db")
	store, err := NewSQLStore("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStore_UnknownDriver(t *testing.T) {
	_, err := NewSQLStore("oracle", "dsn")
	assert.Error(t, err)
}

func TestSQLStore_SeedsDefaultCategory(t *testing.T) {
	store := newSQLiteStore(t)

	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, models.DefaultCategoryID, cats[0].ID)
	assert.Equal(t, models.DefaultCategoryName, cats[0].Name)
}

func TestSQLStore_SeedsOnlyOnce(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "sentinel.db")
	store, err := NewSQLStore("sqlite", dsn)
	require.NoError(t, err)

	_, err = store.CreateCategory(context.Background(), "Extra")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLStore("sqlite", dsn)
	require.NoError(t, err)
	defer reopened.Close()

	cats, err := reopened.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestSQLStore_SiteLifecycle(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	site, err := store.CreateSite(ctx, models.SiteInput{Title: "Example", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnknown, site.Status)
	assert.Equal(t, models.DefaultCategoryID, site.CategoryID)
	assert.Nil(t, site.Latency)

	status := models.StatusOnline
	checked := int64(1700000000000)
	latency := int64(80)
	ok, err := store.UpdateSite(ctx, site.ID, models.SitePatch{
		Status:      &status,
		LastChecked: &checked,
		Latency:     &latency,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	sites, err := store.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "Example", sites[0].Title)
	assert.Equal(t, models.StatusOnline, sites[0].Status)
	assert.Equal(t, checked, sites[0].LastChecked)
	require.NotNil(t, sites[0].Latency)
	assert.Equal(t, latency, *sites[0].Latency)

	ok, err = store.DeleteSite(ctx, site.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteSite(ctx, site.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLStore_CreateSite_Validation(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.CreateSite(context.Background(), models.SiteInput{URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSQLStore_CreateSite_DanglingCategoryFallsBack(t *testing.T) {
	store := newSQLiteStore(t)

	site, err := store.CreateSite(context.Background(), models.SiteInput{
		Title:      "Example",
		URL:        "https://example.com",
		CategoryID: "no-such-category",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategoryID, site.CategoryID)
}

func TestSQLStore_UpdateSite_EmptyPatchReportsExistence(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	site, err := store.CreateSite(ctx, models.SiteInput{Title: "Example", URL: "https://example.com"})
	require.NoError(t, err)

	ok, err := store.UpdateSite(ctx, site.ID, models.SitePatch{})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.UpdateSite(ctx, "missing", models.SitePatch{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLStore_DeleteCategory_Cascade(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, "Doomed")
	require.NoError(t, err)

	site, err := store.CreateSite(ctx, models.SiteInput{
		Title:      "Example",
		URL:        "https://example.com",
		CategoryID: cat.ID,
	})
	require.NoError(t, err)
	require.Equal(t, cat.ID, site.CategoryID)

	ok, err := store.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	sites, err := store.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, models.DefaultCategoryID, sites[0].CategoryID)
}

func TestSQLStore_DeleteCategory_LastOneRejected(t *testing.T) {
	store := newSQLiteStore(t)

	ok, err := store.DeleteCategory(context.Background(), models.DefaultCategoryID)
	assert.ErrorIs(t, err, ErrLastCategory)
	assert.False(t, ok)
}

func TestSQLStore_DefaultCategoryIsFallbackWhileItExists(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	// Even with other categories present, the default one wins the
	// fallback because it sorts first.
	_, err := store.CreateCategory(ctx, "Other")
	require.NoError(t, err)

	site, err := store.CreateSite(ctx, models.SiteInput{Title: "Example", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategoryID, site.CategoryID)
}

func TestSQLStore_Theme(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	theme, err := store.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeMinimal, theme)

	require.NoError(t, store.SetTheme(ctx, models.ThemeVibe))
	theme, err = store.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeVibe, theme)

	// Second write goes down the update path.
	require.NoError(t, store.SetTheme(ctx, models.ThemeSunset))
	theme, err = store.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeSunset, theme)

	err = store.SetTheme(ctx, models.Theme("neon"))
	assert.ErrorIs(t, err, ErrValidation)
}
