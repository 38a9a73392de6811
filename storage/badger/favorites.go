package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/trovia/trovia/storage"
)

// FavoritesRepository implements storage.FavoritesRepository for BadgerDB.
type FavoritesRepository struct {
	backend *Backend
}

var _ storage.FavoritesRepository = (*FavoritesRepository)(nil)

// NewFavoritesRepository creates a new FavoritesRepository.
func NewFavoritesRepository(backend *Backend) *FavoritesRepository {
	return &FavoritesRepository{backend: backend}
}

// Favorites returns the current favorites as a set.
func (r *FavoritesRepository) Favorites(ctx context.Context) (map[string]bool, error) {
	var ids []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids = storage.DecodeStrings(readRaw(tx, storage.KeyFavorites))
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Toggle adds id when absent and removes it when present. The whole
// read-modify-write runs in one transaction so concurrent toggles from
// other surfaces cannot drop entries.
func (r *FavoritesRepository) Toggle(ctx context.Context, id string) (bool, error) {
	var nowFavorite bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids := storage.DecodeStrings(readRaw(tx, storage.KeyFavorites))

		if idx := slices.Index(ids, id); idx >= 0 {
			ids = slices.Delete(ids, idx, idx+1)
			nowFavorite = false
		} else {
			ids = append(ids, id)
			nowFavorite = true
		}

		data, err := storage.Encode(ids)
		if err != nil {
			return err
		}
		if err := tx.Set([]byte(storage.KeyFavorites), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	return nowFavorite, err
}

// IsFavorite reports whether id is currently favorited.
func (r *FavoritesRepository) IsFavorite(ctx context.Context, id string) (bool, error) {
	set, err := r.Favorites(ctx)
	if err != nil {
		return false, err
	}
	return set[id], nil
}
