package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	return &RunRepository{backend: backend}, nil
}

// Close releases repository resources. The backend is closed separately.
func (r *RunRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RunRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutRun stores a run record, overwriting any existing record with the
// same ID and keeping the date index consistent.
func (r *RunRepository) PutRun(ctx context.Context, run *core.AnalysisRun) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(run.Id)

		// Drop the old date index entry when overwriting
		old, err := readRun(tx, key)
		if err != nil {
			return err
		}
		if old != nil && !old.CreatedAt.Equal(run.CreatedAt) {
			if err := tx.Delete(makeRunDateKey(old.CreatedAt, old.Id)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalAnalysisRun(run)); err != nil {
			return err
		}
		dateKey := makeRunDateKey(run.CreatedAt, run.Id)
		if err := tx.Set(dateKey, []byte(run.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRun retrieves a run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id string) (*core.AnalysisRun, error) {
	var result *core.AnalysisRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRun(tx, makeRunKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListRuns retrieves all stored runs, most recent first.
func (r *RunRepository) ListRuns(ctx context.Context) ([]*core.AnalysisRun, error) {
	var results []*core.AnalysisRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(runDatePrefix + ":")

		// Seek just past the last possible date key, then walk backwards.
		startKey := append(slices.Clone(prefix), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var runID string
			if err := iter.Item().Value(func(val []byte) error {
				runID = string(val)
				return nil
			}); err != nil {
				return err
			}

			run, err := readRun(tx, makeRunKey(runID))
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteRun removes a run record and its date index entry.
func (r *RunRepository) DeleteRun(ctx context.Context, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(id)
		run, err := readRun(tx, key)
		if err != nil {
			return err
		}
		if run == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeRunDateKey(run.CreatedAt, run.Id)); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readRun reads a run record from the transaction. Returns nil without
// error when the key is absent.
func readRun(tx *badger.Txn, key []byte) (*core.AnalysisRun, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var run *core.AnalysisRun
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		run, unmarshalErr = storage.UnmarshalAnalysisRun(val)
		return unmarshalErr
	})
	return run, err
}
