package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/trovia/trovia/core"
	"github.com/trovia/trovia/storage"
)

// OverrideRepository implements storage.OverrideRepository for BadgerDB.
type OverrideRepository struct {
	backend *Backend
}

var _ storage.OverrideRepository = (*OverrideRepository)(nil)

// NewOverrideRepository creates a new OverrideRepository.
func NewOverrideRepository(backend *Backend) *OverrideRepository {
	return &OverrideRepository{backend: backend}
}

// Overrides returns the full override map keyed "source:id".
func (r *OverrideRepository) Overrides(ctx context.Context) (map[string]core.Override, error) {
	var overrides map[string]core.Override
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		overrides = storage.DecodeOverrides(readRaw(tx, storage.KeyOverrides))
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

// Set stores the override for key ("source:id").
func (r *OverrideRepository) Set(ctx context.Context, key string, ov core.Override) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		overrides := storage.DecodeOverrides(readRaw(tx, storage.KeyOverrides))
		overrides[key] = ov
		return writeOverrides(tx, overrides)
	}, true)
}

// Clear removes the override for key.
func (r *OverrideRepository) Clear(ctx context.Context, key string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		overrides := storage.DecodeOverrides(readRaw(tx, storage.KeyOverrides))
		delete(overrides, key)
		return writeOverrides(tx, overrides)
	}, true)
}

func writeOverrides(tx *badger.Txn, overrides map[string]core.Override) error {
	data, err := storage.Encode(overrides)
	if err != nil {
		return err
	}
	if err := tx.Set([]byte(storage.KeyOverrides), data); err != nil {
		return err
	}
	return tx.Commit()
}
