package storage

import (
	"context"

	"github.com/trovia/trovia/core"
)

// KV is the low-level persisted key-value store the directory runs on.
// Implementations must be safe for concurrent use.
type KV interface {
	// Get reads the raw value stored at key. Returns ErrNotFound when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the raw value at key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Subscribe invokes fn with the changed key whenever a key matching
	// one of the prefixes is written. Delivery stops when ctx is
	// cancelled; the subscription holds no resources past that point.
	Subscribe(ctx context.Context, fn func(key string), prefixes ...string)

	// Close closes the store and releases resources.
	Close() error
}

// FavoritesRepository manages the persisted set of favorited provider IDs.
type FavoritesRepository interface {
	// Favorites returns the current favorites as a set.
	Favorites(ctx context.Context) (map[string]bool, error)

	// Toggle adds id when absent and removes it when present, persisting
	// the result. Returns whether id is a favorite after the call.
	Toggle(ctx context.Context, id string) (bool, error)

	// IsFavorite reports whether id is currently favorited.
	IsFavorite(ctx context.Context, id string) (bool, error)
}

// HistoryRepository manages the persisted recent-search list.
type HistoryRepository interface {
	// Record inserts a search term at the front of the history, trimming
	// whitespace, de-duplicating case-insensitively, and capping the list
	// at RecentSearchLimit. Blank terms are ignored.
	Record(ctx context.Context, term string) error

	// Recent returns the history, most recent first.
	Recent(ctx context.Context) ([]string, error)
}

// VendorRepository reads and writes the vendor-submitted provider list.
// The read side backs the overlay resolver; the write side is used by the
// vendor-submission surface (see the ingest package).
type VendorRepository interface {
	// Vendors returns all vendor-submitted records. Malformed persisted
	// data yields an empty list, never an error.
	Vendors(ctx context.Context) ([]core.Provider, error)

	// Add appends records, replacing any existing record with the same ID.
	Add(ctx context.Context, records ...core.Provider) error

	// Replace overwrites the whole list.
	Replace(ctx context.Context, records []core.Provider) error
}

// OverrideRepository reads and writes moderation overrides. The read side
// backs the overlay resolver; the write side is used by the moderation
// surface.
type OverrideRepository interface {
	// Overrides returns the full override map keyed "source:id".
	// Malformed persisted data yields an empty map, never an error.
	Overrides(ctx context.Context) (map[string]core.Override, error)

	// Set stores the override for key ("source:id").
	Set(ctx context.Context, key string, ov core.Override) error

	// Clear removes the override for key.
	Clear(ctx context.Context, key string) error
}

// ProfileRepository reads and writes the persisted user profile.
type ProfileRepository interface {
	// Profile returns the persisted profile. Malformed or missing data
	// yields the zero Profile, never an error.
	Profile(ctx context.Context) (core.Profile, error)

	// Save persists the profile.
	Save(ctx context.Context, p core.Profile) error
}

// Stores bundles the key-value store with the typed repositories built on
// top of it. Backend constructors return this interface.
type Stores interface {
	KV() KV
	Favorites() FavoritesRepository
	History() HistoryRepository
	Vendors() VendorRepository
	Overrides() OverrideRepository
	Profile() ProfileRepository
	Close() error
}
