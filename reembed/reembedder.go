// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/pipeline"
	"github.com/poiesic/insight/storage"
)

var (
	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of chunks to embed in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of chunks)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder replaces the cached embeddings of a stored run's chunks,
// typically after switching embedding models. Relevance scores and chunk
// order are preserved; only the vectors change. The stored set is rewritten
// in one pass at the end, so a failed run leaves the old vectors intact.
type Reembedder struct {
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	config   *Config
	progress io.Writer
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(chunks storage.ChunkRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: BatchSize must be positive", core.ErrInvalidConfig)
	}
	if config.MaxRetries <= 0 {
		return nil, fmt.Errorf("%w: MaxRetries must be positive", core.ErrInvalidConfig)
	}

	return &Reembedder{
		chunks:   chunks,
		embedder: embedder,
		config:   config,
		progress: progress,
	}, nil
}

// Run reembeds every chunk stored under runID.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context, runID string) error {
	chunks, err := r.chunks.GetChunks(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load chunks for run %s: %w", runID, err)
	}

	total := len(chunks)
	fmt.Fprintf(r.progress, "Starting reembedding of %d chunks (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := pipeline.NewProgressTracker(r.progress, "reembedding", total, r.config.ReportInterval)
	tracker.Start()

	for start := 0; start < total; start += r.config.BatchSize {
		end := min(start+r.config.BatchSize, total)
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		var embeddings [][]float32
		err := pipeline.RetryWithBackoff(ctx, func() error {
			var err error
			embeddings, err = r.embedder.EmbedTexts(ctx, texts)
			return err
		}, r.config.MaxRetries, r.config.RetryDelay)
		if err != nil {
			return fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.config.MaxRetries, err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("%w: expected %d embeddings, got %d", core.ErrEmbeddingFailure, len(batch), len(embeddings))
		}

		for i := range batch {
			batch[i].Embedding = core.NormalizeVector(embeddings[i])
		}
		tracker.Increment(len(batch))
	}

	if err := r.chunks.PutChunks(ctx, runID, chunks); err != nil {
		return fmt.Errorf("failed to store reembedded chunks: %w", err)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d chunks in %v (%.1f chunks/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
