package storage

import (
	"context"

	"github.com/poiesic/insight/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ScoredChunk pairs a chunk with its similarity to a query vector.
type ScoredChunk struct {
	Chunk      *core.Chunk
	Similarity float32
}

// ChunkRepository persists the chunks of a run, embeddings and relevance
// scores included, keyed by run ID.
type ChunkRepository interface {
	Repository

	// PutChunks stores all chunks for a run, replacing any previous set.
	// Chunks within a run are keyed by their content IDs.
	PutChunks(ctx context.Context, runID string, chunks []core.Chunk) error

	// GetChunks retrieves all chunks for a run in insertion order.
	// Returns ErrNotFound if the run has no stored chunks.
	GetChunks(ctx context.Context, runID string) ([]core.Chunk, error)

	// DeleteChunks removes all chunks for a run.
	DeleteChunks(ctx context.Context, runID string) error

	// FindSimilar finds chunks in a run similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, runID string, vector []float32, minSimilarity float32, limit int) ([]ScoredChunk, error)
}

// RunRepository persists completed analysis runs: themes, coverage and
// diagnostics, under the run's ID.
type RunRepository interface {
	Repository

	// PutRun stores a run record. An existing record with the same ID
	// is overwritten.
	PutRun(ctx context.Context, run *core.AnalysisRun) error

	// GetRun retrieves a run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id string) (*core.AnalysisRun, error)

	// ListRuns retrieves all stored runs ordered by creation time,
	// most recent first.
	ListRuns(ctx context.Context) ([]*core.AnalysisRun, error)

	// DeleteRun removes a run record by ID.
	// Returns ErrNotFound if the run doesn't exist.
	DeleteRun(ctx context.Context, id string) error
}
