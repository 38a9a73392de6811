package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/trovia/trovia/core"
	"github.com/trovia/trovia/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) *ProfileRepository {
	return &ProfileRepository{backend: backend}
}

// Profile returns the persisted profile, degrading to the zero value.
func (r *ProfileRepository) Profile(ctx context.Context) (core.Profile, error) {
	var profile core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		profile = storage.DecodeProfile(readRaw(tx, storage.KeyProfile))
		return nil
	}, false)
	if err != nil {
		return core.Profile{}, err
	}
	return profile, nil
}

// Save persists the profile.
func (r *ProfileRepository) Save(ctx context.Context, p core.Profile) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		data, err := storage.Encode(p)
		if err != nil {
			return err
		}
		if err := tx.Set([]byte(storage.KeyProfile), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
