package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trovia/trovia/catalog"
	"github.com/trovia/trovia/core"
	"github.com/trovia/trovia/storage"
	badgerstore "github.com/trovia/trovia/storage/badger"
)

func boolPtr(b bool) *bool { return &b }

func testDataset() []core.Provider {
	return []core.Provider{
		{ID: "p1", Name: "Ace Plumbing", Category: "Plumber", Location: "New York", Status: core.StatusAvailable, Rating: 5, Verified: boolPtr(true)},
		{ID: "p2", Name: "Beacon Hill Movers", Category: "Mover", Location: "Boston", Status: core.StatusAvailable, Rating: 5},
		{ID: "p3", Name: "Charles River Cleaning", Category: "Cleaner", Location: "Boston", Status: core.StatusOffline, Rating: 3.9},
	}
}

func newTestSearcher(t *testing.T, opts ...catalog.Option) (*Searcher, storage.Stores) {
	t.Helper()

	stores, err := badgerstore.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	loaderOpts := append([]catalog.Option{
		catalog.WithDelay(0),
		catalog.WithDataset(testDataset()),
	}, opts...)

	searcher, err := NewSearcher(catalog.NewLoader(loaderOpts...), stores)
	require.NoError(t, err)
	return searcher, stores
}

func TestNewSearcher(t *testing.T) {
	stores, err := badgerstore.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	loader := catalog.NewLoader(catalog.WithDelay(0))

	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSearcher(loader, stores)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("with custom logger", func(t *testing.T) {
		s, err := NewSearcher(loader, stores, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil loader", func(t *testing.T) {
		_, err := NewSearcher(nil, stores)
		assert.Equal(t, ErrLoaderRequired, err)
	})

	t.Run("nil stores", func(t *testing.T) {
		_, err := NewSearcher(loader, nil)
		assert.Equal(t, ErrStoresRequired, err)
	})
}

func TestSearchEmptyEverything(t *testing.T) {
	searcher, _ := newTestSearcher(t, catalog.WithDataset(nil))

	results, err := searcher.Search(context.Background(), core.NewFilterState(), core.SortRelevance)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchDefaultRelevance(t *testing.T) {
	searcher, _ := newTestSearcher(t)

	results, err := searcher.Search(context.Background(), core.NewFilterState(), core.SortRelevance)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Viewer location defaults to New York: the New York record leads.
	assert.Equal(t, "p1", results[0].Provider.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "p2", results[1].Provider.ID)
	assert.InDelta(t, 0.5, results[1].Score, 1e-9)
}

func TestSearchViewerLocationFromProfile(t *testing.T) {
	searcher, stores := newTestSearcher(t)
	ctx := context.Background()

	require.NoError(t, stores.Profile().Save(ctx, core.Profile{Location: "Boston"}))

	results, err := searcher.Search(ctx, core.NewFilterState(), core.SortRelevance)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "p2", results[0].Provider.ID)
}

func TestSearchMalformedProfileFallsBack(t *testing.T) {
	searcher, stores := newTestSearcher(t)
	ctx := context.Background()

	require.NoError(t, stores.KV().Set(ctx, storage.KeyProfile, []byte(`{{{`)))

	results, err := searcher.Search(ctx, core.NewFilterState(), core.SortRelevance)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "p1", results[0].Provider.ID)
}

func TestSearchRemovedOverrideExcludes(t *testing.T) {
	searcher, stores := newTestSearcher(t)
	ctx := context.Background()

	key := core.OverrideKey(core.SourceStatic, "p1")
	require.NoError(t, stores.Overrides().Set(ctx, key, core.Override{Removed: boolPtr(true)}))

	results, err := searcher.Search(ctx, core.NewFilterState(), core.SortRelevance)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, "p1", r.Provider.ID)
	}
}

func TestSearchVerificationOverride(t *testing.T) {
	searcher, stores := newTestSearcher(t)
	ctx := context.Background()

	// p2 carries no verification of its own; the override grants it.
	key := core.OverrideKey(core.SourceStatic, "p2")
	require.NoError(t, stores.Overrides().Set(ctx, key, core.Override{Verified: boolPtr(true)}))

	state := core.NewFilterState()
	state.OnlyVerified = true

	results, err := searcher.Search(ctx, state, core.SortRelevance)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, rankedIDs(results))
}

func TestSearchVendorSubmissionsIncluded(t *testing.T) {
	searcher, stores := newTestSearcher(t)
	ctx := context.Background()

	require.NoError(t, stores.Vendors().Add(ctx, core.Provider{
		ID: "v1", Name: "Pipe Bros", Category: "Plumber", Location: "New York",
		Status: core.StatusAvailable, Rating: 4, IsVendor: true,
	}))

	state := core.NewFilterState()
	state.Query = "pipe"

	results, err := searcher.Search(ctx, state, core.SortRelevance)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.SourceVendor, results[0].Source)
}

func TestSearchOnlyFavorites(t *testing.T) {
	searcher, stores := newTestSearcher(t)
	ctx := context.Background()

	_, err := stores.Favorites().Toggle(ctx, "p3")
	require.NoError(t, err)

	state := core.NewFilterState()
	state.OnlyFavorites = true

	results, err := searcher.Search(ctx, state, core.SortRelevance)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p3", results[0].Provider.ID)
}

func TestSearchLoadFailurePropagates(t *testing.T) {
	searcher, _ := newTestSearcher(t, catalog.WithFailure(nil))

	_, err := searcher.Search(context.Background(), core.NewFilterState(), core.SortRelevance)
	assert.ErrorIs(t, err, catalog.ErrLoadFailed)
}

func TestSearchMalformedVendorAndOverrideValues(t *testing.T) {
	searcher, stores := newTestSearcher(t)
	ctx := context.Background()

	require.NoError(t, stores.KV().Set(ctx, storage.KeyVendors, []byte(`[broken`)))
	require.NoError(t, stores.KV().Set(ctx, storage.KeyOverrides, []byte(`broken]`)))

	results, err := searcher.Search(ctx, core.NewFilterState(), core.SortRelevance)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

type recordingMonitor struct {
	started      bool
	catalogSize  int
	resolvedSize int
	filteredSize int
	finished     int
}

var _ Monitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(_ core.FilterState, _ core.SortMode) { m.started = true }
func (m *recordingMonitor) AfterCatalogLoad(r []core.Provider)        { m.catalogSize = len(r) }
func (m *recordingMonitor) AfterResolve(r []core.Resolved)            { m.resolvedSize = len(r) }
func (m *recordingMonitor) AfterFilter(r []core.Resolved)             { m.filteredSize = len(r) }
func (m *recordingMonitor) Finish(r []core.RankedProvider)            { m.finished = len(r) }

func TestSearchWithMonitor(t *testing.T) {
	searcher, _ := newTestSearcher(t)

	state := core.NewFilterState()
	state.Query = "plumb"

	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(context.Background(), state, core.SortRelevance, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Equal(t, 3, monitor.catalogSize)
	assert.Equal(t, 3, monitor.resolvedSize)
	assert.Equal(t, 1, monitor.filteredSize)
	assert.Equal(t, len(results), monitor.finished)
}
