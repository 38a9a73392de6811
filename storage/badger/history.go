package badger

import (
	"context"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/trovia/trovia/storage"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
type HistoryRepository struct {
	backend *Backend
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend *Backend) *HistoryRepository {
	return &HistoryRepository{backend: backend}
}

// Record inserts a search term at the front of the history. The stored
// term keeps its original casing; de-duplication is case-insensitive.
func (r *HistoryRepository) Record(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		current := storage.DecodeStrings(readRaw(tx, storage.KeyRecentSearches))

		next := make([]string, 0, storage.RecentSearchLimit)
		next = append(next, term)
		for _, t := range current {
			if strings.EqualFold(t, term) {
				continue
			}
			next = append(next, t)
			if len(next) == storage.RecentSearchLimit {
				break
			}
		}

		data, err := storage.Encode(next)
		if err != nil {
			return err
		}
		if err := tx.Set([]byte(storage.KeyRecentSearches), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Recent returns the history, most recent first.
func (r *HistoryRepository) Recent(ctx context.Context) ([]string, error) {
	var terms []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		terms = storage.DecodeStrings(readRaw(tx, storage.KeyRecentSearches))
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return terms, nil
}
