package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/dgraph-io/badger/v4/pb"

	"github.com/trovia/trovia/storage"
)

// Backend wraps a BadgerDB instance and provides low-level operations.
// It implements storage.KV directly; the typed repositories build on it.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.KV = (*Backend)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error;
// write transactions commit inside fn.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// Get reads the raw value stored at key.
func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Set writes the raw value at key.
func (b *Backend) Set(_ context.Context, key string, value []byte) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(key), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes the key. Absent keys are not an error.
func (b *Backend) Delete(_ context.Context, key string) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete([]byte(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Subscribe invokes fn with the changed key whenever a key matching one
// of the prefixes is written. Delivery runs on a dedicated goroutine and
// stops when ctx is cancelled.
func (b *Backend) Subscribe(ctx context.Context, fn func(key string), prefixes ...string) {
	matches := make([]pb.Match, 0, len(prefixes))
	for _, prefix := range prefixes {
		matches = append(matches, pb.Match{Prefix: []byte(prefix)})
	}

	go func() {
		err := b.db.Subscribe(ctx, func(kvs *badger.KVList) error {
			for _, kv := range kvs.Kv {
				fn(string(kv.Key))
			}
			return nil
		}, matches)
		if err != nil && !errors.Is(err, context.Canceled) {
			b.logger.Warn("storage subscription ended", "err", err)
		}
	}()
}

// readRaw reads a raw value inside an open transaction, returning nil for
// absent keys. Decode helpers treat nil as the empty default.
func readRaw(tx *badger.Txn, key string) []byte {
	item, err := tx.Get([]byte(key))
	if err != nil {
		return nil
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil
	}
	return val
}
