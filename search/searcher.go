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


package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/storage"
)

// minSimilarity is the cosine similarity floor for a vector hit.
const minSimilarity = 0.60

// verbatimBoost is added when every query word appears in the chunk text.
const verbatimBoost = 0.3

// Result is a single search hit.
type Result struct {
	Chunk *core.Chunk
	Score float32
}

// Searcher finds chunks from a stored analysis run that are similar to a
// free-text query. Vector similarity does the ranking; a verbatim keyword
// match on the chunk text boosts the score.
type Searcher struct {
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(chunks storage.ChunkRepository, provider ai.Provider, opts ...Option) (*Searcher, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		chunks:   chunks,
		embedder: provider.Embedder(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches the chunks of runID for text similar to the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, runID, query string, maxHits int) ([]*Result, error) {
	return s.FindSimilarWithMonitor(ctx, runID, query, maxHits, nil)
}

// FindSimilarWithMonitor searches with monitoring. The monitor receives
// callbacks at each stage of the search process.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, runID, query string, maxHits int, monitor Monitor) ([]*Result, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	embedding = core.NormalizeVector(embedding)

	matches, err := s.chunks.FindSimilar(ctx, runID, embedding, minSimilarity, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "runID", runID, "err", err)
		return nil, err
	}

	ids := make([]core.ID, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, match.Chunk.Id)
	}
	monitor.AfterVectorSearch(ids)

	results := make([]*Result, 0, len(matches))
	for _, match := range matches {
		score := match.Similarity
		if containsAllQueryWords(match.Chunk.Text, query) {
			score += verbatimBoost
			monitor.VerbatimHit(match.Chunk)
		}
		results = append(results, &Result{Chunk: match.Chunk, Score: score})
	}

	// Sort by score descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}
