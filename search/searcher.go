package search

import (
	"context"
	"log/slog"

	"github.com/trovia/trovia/catalog"
	"github.com/trovia/trovia/core"
	"github.com/trovia/trovia/overlay"
	"github.com/trovia/trovia/storage"
)

// Searcher runs the full pipeline: catalog load, overlay resolution,
// filtering, and ranking.
type Searcher struct {
	loader *catalog.Loader
	stores storage.Stores
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the given catalog loader and
// store bundle.
func NewSearcher(loader *catalog.Loader, stores storage.Stores, opts ...Option) (*Searcher, error) {
	if loader == nil {
		return nil, ErrLoaderRequired
	}
	if stores == nil {
		return nil, ErrStoresRequired
	}

	s := &Searcher{
		loader: loader,
		stores: stores,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs the pipeline and returns the ranked results.
func (s *Searcher) Search(ctx context.Context, state core.FilterState, mode core.SortMode) ([]core.RankedProvider, error) {
	return s.SearchWithMonitor(ctx, state, mode, nil)
}

// SearchWithMonitor runs the pipeline with stage callbacks.
// The monitor receives intermediate results at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, state core.FilterState, mode core.SortMode, monitor Monitor) ([]core.RankedProvider, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(state, mode)

	// 1. Load the static catalog (simulated fetch, cached per session).
	catalogRecords, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error("error loading catalog", "err", err)
		return nil, err
	}
	monitor.AfterCatalogLoad(catalogRecords)

	// 2. Read the overlay inputs. Malformed persisted values have already
	// degraded to empty defaults inside the repositories.
	vendors, err := s.stores.Vendors().Vendors(ctx)
	if err != nil {
		s.logger.Error("error reading vendor submissions", "err", err)
		return nil, err
	}
	overrides, err := s.stores.Overrides().Overrides(ctx)
	if err != nil {
		s.logger.Error("error reading overrides", "err", err)
		return nil, err
	}

	// 3. Resolve effective records and drop the removed ones.
	resolved := overlay.ResolveAll(catalogRecords, vendors, overrides)
	visible := make([]core.Resolved, 0, len(resolved))
	for _, r := range resolved {
		if r.Removed {
			continue
		}
		visible = append(visible, r)
	}
	monitor.AfterResolve(visible)

	// 4. Filter.
	favorites, err := s.stores.Favorites().Favorites(ctx)
	if err != nil {
		s.logger.Error("error reading favorites", "err", err)
		return nil, err
	}
	filtered := Filter(visible, state, favorites)
	monitor.AfterFilter(filtered)

	// 5. Rank against the viewer location.
	profile, err := s.stores.Profile().Profile(ctx)
	if err != nil {
		s.logger.Error("error reading profile", "err", err)
		return nil, err
	}
	results := Rank(filtered, viewerLocation(profile), mode)
	monitor.Finish(results)

	return results, nil
}

// viewerLocation resolves the ranking reference location from the
// profile, falling back to the default when absent or blank.
func viewerLocation(p core.Profile) string {
	if loc := normalize(p.ViewerLocation()); loc != "" {
		return p.ViewerLocation()
	}
	return DefaultViewerLocation
}
