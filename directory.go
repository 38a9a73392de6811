// Copyright 2025 Trovia Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package trovia is a local-service discovery directory: a searchable,
// rankable catalog of service providers composed from a bundled static
// dataset, vendor submissions, and moderation overrides, with favorites
// and search history persisted in a local key-value store.
package trovia

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/trovia/trovia/catalog"
	"github.com/trovia/trovia/core"
	"github.com/trovia/trovia/overlay"
	"github.com/trovia/trovia/search"
	"github.com/trovia/trovia/storage"
	badgerstore "github.com/trovia/trovia/storage/badger"
)

var (
	// ErrRoleRequired is returned by Detail when the persisted profile
	// carries no signed-in role. The check runs at the data-access
	// boundary, not in presentation.
	ErrRoleRequired = errors.New("signed-in role required")

	// ErrProviderNotFound is returned by Detail for unknown or removed
	// providers.
	ErrProviderNotFound = errors.New("provider not found")
)

// Directory is a session-scoped facade over the stores, the catalog
// loader, and the search pipeline.
type Directory struct {
	stores   storage.Stores
	loader   *catalog.Loader
	searcher *search.Searcher
	logger   *slog.Logger
}

// Option configures a Directory.
type Option func(*directoryOptions)

type directoryOptions struct {
	catalogOpts []catalog.Option
	logger      *slog.Logger
}

// WithCatalogOptions forwards options to the catalog loader (delay,
// failure injection, alternate dataset).
func WithCatalogOptions(opts ...catalog.Option) Option {
	return func(o *directoryOptions) {
		o.catalogOpts = append(o.catalogOpts, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *directoryOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// Open opens (or creates) a directory backed by BadgerDB at path.
func Open(path string, opts ...Option) (*Directory, error) {
	stores, err := badgerstore.Open(path)
	if err != nil {
		return nil, err
	}
	return newDirectory(stores, opts...)
}

// OpenInMemory opens a directory with no persistence. Used by tests and
// throwaway sessions.
func OpenInMemory(opts ...Option) (*Directory, error) {
	stores, err := badgerstore.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return newDirectory(stores, opts...)
}

func newDirectory(stores storage.Stores, opts ...Option) (*Directory, error) {
	options := &directoryOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	loader := catalog.NewLoader(options.catalogOpts...)

	searcher, err := search.NewSearcher(loader, stores, search.WithLogger(options.logger))
	if err != nil {
		stores.Close()
		return nil, err
	}

	return &Directory{
		stores:   stores,
		loader:   loader,
		searcher: searcher,
		logger:   options.logger,
	}, nil
}

// Search runs the full pipeline and records non-blank queries in the
// recent-search history.
func (d *Directory) Search(ctx context.Context, state core.FilterState, mode core.SortMode) ([]core.RankedProvider, error) {
	results, err := d.searcher.Search(ctx, state, mode)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(state.Query) != "" {
		if err := d.stores.History().Record(ctx, state.Query); err != nil {
			// History is a convenience; a failed write never fails the search.
			d.logger.Warn("failed to record search term", "err", err)
		}
	}
	return results, nil
}

// Searcher exposes the underlying pipeline, e.g. for monitored searches.
func (d *Directory) Searcher() *search.Searcher {
	return d.searcher
}

// ToggleFavorite flips the favorite state of a provider ID and persists
// the result. Returns whether the ID is a favorite after the call.
func (d *Directory) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	return d.stores.Favorites().Toggle(ctx, id)
}

// Favorites returns the persisted favorites set.
func (d *Directory) Favorites(ctx context.Context) (map[string]bool, error) {
	return d.stores.Favorites().Favorites(ctx)
}

// RecentSearches returns the recent-search history, most recent first.
func (d *Directory) RecentSearches(ctx context.Context) ([]string, error) {
	return d.stores.History().Recent(ctx)
}

// Profile returns the persisted user profile.
func (d *Directory) Profile(ctx context.Context) (core.Profile, error) {
	return d.stores.Profile().Profile(ctx)
}

// SaveProfile persists the user profile.
func (d *Directory) SaveProfile(ctx context.Context, p core.Profile) error {
	return d.stores.Profile().Save(ctx, p)
}

// Detail returns the effective record for a single provider. Unlike the
// listing, full detail requires a signed-in, non-guest role; the check
// happens here, at the data-access boundary.
func (d *Directory) Detail(ctx context.Context, source core.Source, id string) (core.Resolved, error) {
	profile, err := d.stores.Profile().Profile(ctx)
	if err != nil {
		return core.Resolved{}, err
	}
	if profile.Role == "" || strings.EqualFold(profile.Role, "guest") {
		return core.Resolved{}, ErrRoleRequired
	}

	catalogRecords, err := d.loader.Load(ctx)
	if err != nil {
		return core.Resolved{}, err
	}
	vendors, err := d.stores.Vendors().Vendors(ctx)
	if err != nil {
		return core.Resolved{}, err
	}
	overrides, err := d.stores.Overrides().Overrides(ctx)
	if err != nil {
		return core.Resolved{}, err
	}

	for _, r := range overlay.ResolveAll(catalogRecords, vendors, overrides) {
		if r.Source == source && r.Provider.ID == id && !r.Removed {
			return r, nil
		}
	}
	return core.Resolved{}, ErrProviderNotFound
}

// Watch invokes fn with the changed key whenever another surface writes
// one of the shared overlay keys (vendors, overrides, profile). The
// subscription is torn down when ctx is cancelled.
func (d *Directory) Watch(ctx context.Context, fn func(key string)) {
	d.stores.KV().Subscribe(ctx, fn,
		storage.KeyVendors,
		storage.KeyOverrides,
		storage.KeyProfile,
	)
}

// Close closes the underlying stores.
func (d *Directory) Close() error {
	return d.stores.Close()
}
