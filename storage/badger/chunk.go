package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	return &ChunkRepository{backend: backend}, nil
}

// Close releases repository resources. The backend is closed separately.
func (r *ChunkRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutChunks stores all chunks for a run, replacing any previous set.
func (r *ChunkRepository) PutChunks(ctx context.Context, runID string, chunks []core.Chunk) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteRunChunks(tx, runID); err != nil {
			return err
		}
		for i := range chunks {
			key := makeChunkKey(runID, i)
			value := storage.MarshalChunk(&chunks[i])
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetChunks retrieves all chunks for a run in insertion order.
func (r *ChunkRepository) GetChunks(ctx context.Context, runID string) ([]core.Chunk, error) {
	var results []core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkRunPrefix(runID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, *chunk)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, storage.ErrNotFound
	}
	return results, nil
}

// DeleteChunks removes all chunks for a run.
func (r *ChunkRepository) DeleteChunks(ctx context.Context, runID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteRunChunks(tx, runID); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// FindSimilar finds chunks in a run similar to the given vector.
func (r *ChunkRepository) FindSimilar(ctx context.Context, runID string, vector []float32, minSimilarity float32, limit int) ([]storage.ScoredChunk, error) {
	var results []storage.ScoredChunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkRunPrefix(runID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}

			// Skip chunks without embeddings
			if len(chunk.Embedding) == 0 {
				continue
			}

			// Cosine similarity, dot product for normalized vectors
			similarity := dotProduct(vector, chunk.Embedding)
			if similarity >= minSimilarity {
				results = append(results, storage.ScoredChunk{
					Chunk:      chunk,
					Similarity: similarity,
				})
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b storage.ScoredChunk) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// deleteRunChunks removes every chunk key under the run prefix. Must run in
// a write transaction.
func deleteRunChunks(tx *badger.Txn, runID string) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeChunkRunPrefix(runID)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
