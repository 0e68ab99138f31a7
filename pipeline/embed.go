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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/core"
)

// batchEmbedder generates embeddings for chunks in concurrent batches.
// A batch that fails after all retries marks its chunks as skipped rather
// than aborting the run; only a fully failed run is an error.
type batchEmbedder struct {
	embedder       ai.Embedder
	pool           *ants.Pool
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

func newBatchEmbedder(embedder ai.Embedder, pool *ants.Pool, batchSize, maxRetries int, retryBaseDelay time.Duration, logger *slog.Logger) *batchEmbedder {
	return &batchEmbedder{
		embedder:       embedder,
		pool:           pool,
		batchSize:      batchSize,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         logger,
	}
}

// embedChunks fills Embedding in place for every chunk that does not already
// carry one. Vectors are normalized after embedding so downstream cosine
// math can assume unit length. Returns the IDs of chunks whose batch failed;
// if every batch fails the run cannot proceed and ErrEmbeddingFailure is
// returned.
func (b *batchEmbedder) embedChunks(ctx context.Context, chunks []core.Chunk, progress *ProgressTracker) ([]core.ID, error) {
	pending := make([]int, 0, len(chunks))
	for i := range chunks {
		if len(chunks[i].Embedding) == 0 {
			pending = append(pending, i)
		} else if progress != nil {
			progress.Increment(1)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		skipped []core.ID
		failed  int
	)

	var submitErr error
	batches := 0
	for start := 0; start < len(pending); start += b.batchSize {
		end := start + b.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		indices := pending[start:end]
		batches++

		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := b.processBatch(ctx, chunks, indices); err != nil {
				b.logger.Warn("embedding batch failed, skipping chunks", "size", len(indices), "error", err)
				mu.Lock()
				failed++
				for _, idx := range indices {
					skipped = append(skipped, chunks[idx].Id)
				}
				mu.Unlock()
			}
			if progress != nil {
				progress.Increment(len(indices))
			}
		}
		if err := b.pool.Submit(task); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submitting embedding batch: %w", err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}

	if failed == batches {
		return skipped, fmt.Errorf("%w: all %d embedding batches failed", core.ErrEmbeddingFailure, batches)
	}
	return skipped, nil
}

// processBatch embeds the chunks at the given indices, retrying transient
// provider failures with exponential backoff.
func (b *batchEmbedder) processBatch(ctx context.Context, chunks []core.Chunk, indices []int) error {
	texts := make([]string, len(indices))
	for i, idx := range indices {
		texts[i] = chunks[idx].Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = b.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		if len(embeddings) != len(texts) {
			return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(embeddings))
		}
		return nil
	}, b.maxRetries, b.retryBaseDelay)
	if err != nil {
		return err
	}

	for i, idx := range indices {
		chunks[idx].Embedding = core.NormalizeVector(embeddings[i])
	}
	return nil
}

// embedQuestions fills Embedding and Id in place for every question missing
// them. Unlike chunks, questions have no skip path: relevance scoring and
// coverage both need the full set, so a failure here aborts the run.
func (b *batchEmbedder) embedQuestions(ctx context.Context, questions []core.ResearchQuestion) error {
	pending := make([]int, 0, len(questions))
	texts := make([]string, 0, len(questions))
	for i := range questions {
		if questions[i].Id == 0 {
			questions[i].Id = core.IDFromContent(questions[i].Text)
		}
		if len(questions[i].Embedding) == 0 {
			pending = append(pending, i)
			texts = append(texts, questions[i].Text)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = b.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		if len(embeddings) != len(texts) {
			return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(embeddings))
		}
		return nil
	}, b.maxRetries, b.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("%w: embedding research questions: %v", core.ErrEmbeddingFailure, err)
	}

	for i, idx := range pending {
		questions[idx].Embedding = core.NormalizeVector(embeddings[i])
	}
	return nil
}
