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


package research

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/poiesic/insight/core"
)

// ReduceMode selects how per-question similarities collapse into a single
// relevance score.
type ReduceMode int

const (
	// ReduceMax keeps the best per-question similarity. A chunk highly
	// relevant to one question scores high even if irrelevant to the rest.
	ReduceMax ReduceMode = iota

	// ReduceBlend mixes the best similarity with the mean across all
	// questions, rewarding chunks that touch several questions at once.
	ReduceBlend
)

const (
	blendMaxWeight  = 0.7
	blendMeanWeight = 0.3

	// maxCacheEntries bounds the score cache. When exceeded, the cache is
	// pruned back to half capacity, dropping arbitrary entries.
	maxCacheEntries = 1000
)

// Scorer computes research relevance scores for chunks by comparing chunk
// embeddings against a fixed set of question embeddings. Scores are cosine
// similarities clamped to [0, 1] and reduced per the configured mode.
//
// A Scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	questions   []core.ResearchQuestion
	mode        ReduceMode
	fingerprint core.ID

	mu    sync.Mutex
	cache map[core.ID]float64

	logger *slog.Logger
}

// ScorerOption is a functional option for configuring a Scorer.
type ScorerOption func(*Scorer)

// WithReduceMode sets the score reduction mode. Default is ReduceMax.
func WithReduceMode(mode ReduceMode) ScorerOption {
	return func(s *Scorer) {
		s.mode = mode
	}
}

// NewScorer creates a scorer over the given questions. Every question must
// carry an embedding; supplying none returns an error because callers should
// skip relevance scoring entirely when no questions exist.
func NewScorer(questions []core.ResearchQuestion, opts ...ScorerOption) (*Scorer, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i := range questions {
		if len(questions[i].Embedding) == 0 {
			return nil, fmt.Errorf("%w: question %d (%q)", ErrQuestionNotEmbedded, i, questions[i].Text)
		}
	}

	s := &Scorer{
		questions:   questions,
		mode:        ReduceMax,
		fingerprint: fingerprintQuestions(questions),
		cache:       make(map[core.ID]float64),
		logger:      slog.Default().With("component", "research-scorer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// fingerprintQuestions derives a stable identity for a question set,
// independent of question order.
func fingerprintQuestions(questions []core.ResearchQuestion) core.ID {
	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Text
	}
	sort.Strings(texts)
	return core.IDFromContent(strings.Join(texts, "\x00"))
}

// Fingerprint identifies the question set this scorer was built from.
// Cached scores are only valid for a matching fingerprint.
func (s *Scorer) Fingerprint() core.ID {
	return s.fingerprint
}

// Questions returns the scored question set.
func (s *Scorer) Questions() []core.ResearchQuestion {
	return s.questions
}

// Score computes the relevance of an embedding to the question set.
// The result is in [0, 1].
func (s *Scorer) Score(embedding []float32) float64 {
	if len(embedding) == 0 {
		return 0
	}

	best := 0.0
	sum := 0.0
	for i := range s.questions {
		sim := clamp01(core.Cosine(embedding, s.questions[i].Embedding))
		sum += sim
		if sim > best {
			best = sim
		}
	}

	switch s.mode {
	case ReduceBlend:
		mean := sum / float64(len(s.questions))
		return blendMaxWeight*best + blendMeanWeight*mean
	default:
		return best
	}
}

// ScoreChunk computes and caches the relevance for a chunk, keyed by the
// chunk's content ID. The cached value is returned on repeat calls.
func (s *Scorer) ScoreChunk(chunk *core.Chunk) float64 {
	s.mu.Lock()
	if score, ok := s.cache[chunk.Id]; ok {
		s.mu.Unlock()
		return score
	}
	s.mu.Unlock()

	score := s.Score(chunk.Embedding)

	s.mu.Lock()
	if len(s.cache) >= maxCacheEntries {
		s.prune()
	}
	s.cache[chunk.Id] = score
	s.mu.Unlock()

	return score
}

// ScoreAll scores every chunk in place, populating ResearchRelevance.
func (s *Scorer) ScoreAll(chunks []core.Chunk) {
	for i := range chunks {
		chunks[i].ResearchRelevance = s.ScoreChunk(&chunks[i])
	}
	s.logger.Debug("scored chunks", "count", len(chunks), "questions", len(s.questions))
}

// RelevantQuestions returns the IDs of questions whose similarity to the
// embedding meets the threshold, ordered most similar first.
func (s *Scorer) RelevantQuestions(embedding []float32, threshold float64) []core.ID {
	type scored struct {
		id  core.ID
		sim float64
	}

	hits := make([]scored, 0, len(s.questions))
	for i := range s.questions {
		sim := clamp01(core.Cosine(embedding, s.questions[i].Embedding))
		if sim >= threshold {
			hits = append(hits, scored{id: s.questions[i].Id, sim: sim})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].sim > hits[j].sim
	})

	ids := make([]core.ID, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

// prune drops entries until the cache is at half capacity.
// Caller must hold s.mu.
func (s *Scorer) prune() {
	target := maxCacheEntries / 2
	for id := range s.cache {
		if len(s.cache) <= target {
			break
		}
		delete(s.cache, id)
	}
	s.logger.Debug("pruned score cache", "remaining", len(s.cache))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
