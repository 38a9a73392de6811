package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/trovia/trovia/core"
	"github.com/trovia/trovia/storage"
)

// VendorRepository implements storage.VendorRepository for BadgerDB.
type VendorRepository struct {
	backend *Backend
}

var _ storage.VendorRepository = (*VendorRepository)(nil)

// NewVendorRepository creates a new VendorRepository.
func NewVendorRepository(backend *Backend) *VendorRepository {
	return &VendorRepository{backend: backend}
}

// Vendors returns all vendor-submitted records.
func (r *VendorRepository) Vendors(ctx context.Context) ([]core.Provider, error) {
	var records []core.Provider
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		records = storage.DecodeProviders(readRaw(tx, storage.KeyVendors))
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Add appends records, replacing any existing record with the same ID.
func (r *VendorRepository) Add(ctx context.Context, records ...core.Provider) error {
	if len(records) == 0 {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		current := storage.DecodeProviders(readRaw(tx, storage.KeyVendors))

		for _, record := range records {
			replaced := false
			for i := range current {
				if current[i].ID != "" && current[i].ID == record.ID {
					current[i] = record
					replaced = true
					break
				}
			}
			if !replaced {
				current = append(current, record)
			}
		}

		return writeVendors(tx, current)
	}, true)
}

// Replace overwrites the whole list.
func (r *VendorRepository) Replace(ctx context.Context, records []core.Provider) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		return writeVendors(tx, records)
	}, true)
}

func writeVendors(tx *badger.Txn, records []core.Provider) error {
	if records == nil {
		records = []core.Provider{}
	}
	data, err := storage.Encode(records)
	if err != nil {
		return err
	}
	if err := tx.Set([]byte(storage.KeyVendors), data); err != nil {
		return err
	}
	return tx.Commit()
}
