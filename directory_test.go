package trovia

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trovia/trovia/catalog"
	"github.com/trovia/trovia/core"
)

func boolPtr(b bool) *bool { return &b }

func newTestDirectory(t *testing.T, opts ...Option) *Directory {
	t.Helper()

	opts = append([]Option{
		WithCatalogOptions(catalog.WithDelay(0)),
	}, opts...)

	dir, err := OpenInMemory(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { dir.Close() })
	return dir
}

func TestDirectorySearch(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	results, err := dir.Search(ctx, core.NewFilterState(), core.SortRelevance)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	t.Run("top three flagged", func(t *testing.T) {
		for i, r := range results {
			assert.Equal(t, i < 3, r.Top, "position %d", i)
		}
	})

	t.Run("query is recorded in history", func(t *testing.T) {
		state := core.NewFilterState()
		state.Query = "plumber"
		_, err := dir.Search(ctx, state, core.SortRelevance)
		require.NoError(t, err)

		terms, err := dir.RecentSearches(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"plumber"}, terms)
	})

	t.Run("blank query is not recorded", func(t *testing.T) {
		state := core.NewFilterState()
		state.Query = "   "
		_, err := dir.Search(ctx, state, core.SortRelevance)
		require.NoError(t, err)

		terms, err := dir.RecentSearches(ctx)
		require.NoError(t, err)
		assert.Len(t, terms, 1)
	})
}

func TestDirectoryFavorites(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	now, err := dir.ToggleFavorite(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, now)

	favs, err := dir.Favorites(ctx)
	require.NoError(t, err)
	assert.True(t, favs["p1"])

	now, err = dir.ToggleFavorite(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, now)

	favs, err = dir.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestDirectoryProfile(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	profile, err := dir.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Profile{}, profile)

	require.NoError(t, dir.SaveProfile(ctx, core.Profile{Location: "Boston", Role: "member"}))

	profile, err = dir.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Boston", profile.Location)
}

func TestDirectoryDetail(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	t.Run("guest role is refused", func(t *testing.T) {
		_, err := dir.Detail(ctx, core.SourceStatic, "p1")
		assert.ErrorIs(t, err, ErrRoleRequired)

		require.NoError(t, dir.SaveProfile(ctx, core.Profile{Role: "guest"}))
		_, err = dir.Detail(ctx, core.SourceStatic, "p1")
		assert.ErrorIs(t, err, ErrRoleRequired)
	})

	require.NoError(t, dir.SaveProfile(ctx, core.Profile{Role: "member"}))

	t.Run("member sees detail", func(t *testing.T) {
		res, err := dir.Detail(ctx, core.SourceStatic, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Ace Plumbing", res.Provider.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := dir.Detail(ctx, core.SourceStatic, "nope")
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("removed record is hidden", func(t *testing.T) {
		key := core.OverrideKey(core.SourceStatic, "p1")
		require.NoError(t, dir.stores.Overrides().Set(ctx, key, core.Override{Removed: boolPtr(true)}))

		_, err := dir.Detail(ctx, core.SourceStatic, "p1")
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})
}

func TestDirectoryWatch(t *testing.T) {
	dir := newTestDirectory(t)
	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 8)
	dir.Watch(watchCtx, func(key string) { changed <- key })
	time.Sleep(50 * time.Millisecond)

	ctx := context.Background()
	key := core.OverrideKey(core.SourceStatic, "p2")
	require.NoError(t, dir.stores.Overrides().Set(ctx, key, core.Override{Verified: boolPtr(true)}))

	select {
	case k := <-changed:
		assert.Equal(t, "overrides", k)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification received")
	}

	t.Run("favorites writes are not watched", func(t *testing.T) {
		_, err := dir.ToggleFavorite(ctx, "p1")
		require.NoError(t, err)
		select {
		case k := <-changed:
			t.Fatalf("unexpected notification for %q", k)
		case <-time.After(200 * time.Millisecond):
		}
	})
}

func TestDirectoryLoadFailureSurfaces(t *testing.T) {
	dir := newTestDirectory(t, WithCatalogOptions(catalog.WithFailure(nil)))

	_, err := dir.Search(context.Background(), core.NewFilterState(), core.SortRelevance)
	assert.ErrorIs(t, err, catalog.ErrLoadFailed)
}
