package badger

import (
	"github.com/trovia/trovia/storage"
)

// Stores bundles the backend with its typed repositories.
type Stores struct {
	backend   *Backend
	favorites *FavoritesRepository
	history   *HistoryRepository
	vendors   *VendorRepository
	overrides *OverrideRepository
	profile   *ProfileRepository
}

var _ storage.Stores = (*Stores)(nil)

// Open opens (or creates) a BadgerDB-backed store at path.
func Open(path string) (storage.Stores, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newStores(backend), nil
}

// OpenInMemory opens an in-memory store. Used by tests and by sessions
// that do not want persistence.
func OpenInMemory() (storage.Stores, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return newStores(backend), nil
}

func newStores(backend *Backend) *Stores {
	return &Stores{
		backend:   backend,
		favorites: NewFavoritesRepository(backend),
		history:   NewHistoryRepository(backend),
		vendors:   NewVendorRepository(backend),
		overrides: NewOverrideRepository(backend),
		profile:   NewProfileRepository(backend),
	}
}

// KV returns the low-level key-value store.
func (s *Stores) KV() storage.KV { return s.backend }

// Favorites returns the favorites repository.
func (s *Stores) Favorites() storage.FavoritesRepository { return s.favorites }

// History returns the recent-search repository.
func (s *Stores) History() storage.HistoryRepository { return s.history }

// Vendors returns the vendor-submission repository.
func (s *Stores) Vendors() storage.VendorRepository { return s.vendors }

// Overrides returns the moderation-override repository.
func (s *Stores) Overrides() storage.OverrideRepository { return s.overrides }

// Profile returns the profile repository.
func (s *Stores) Profile() storage.ProfileRepository { return s.profile }

// Close closes the underlying backend.
func (s *Stores) Close() error { return s.backend.Close() }
