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
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/cluster"
	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/coverage"
	"github.com/poiesic/insight/research"
	"github.com/poiesic/insight/storage"
	"github.com/poiesic/insight/synthesis"
	"github.com/poiesic/insight/verify"
)

const (
	defaultBatchSize         = 32
	defaultMaxRetries        = 3
	defaultRetryBaseDelay    = time.Second
	defaultQuestionThreshold = 0.3
	progressInterval         = 10
)

// Pipeline orchestrates a full analysis run: embedding, relevance scoring,
// clustering, per-cluster synthesis and verification, and coverage
// validation. Synthesis runs one worker-pool task per cluster; a cluster
// that fails terminally is recorded on the result and never aborts the run.
type Pipeline struct {
	provider       ai.Provider
	runs           storage.RunRepository
	chunks         storage.ChunkRepository
	pool           *ants.Pool
	clusterConfig  cluster.Config
	coverageConfig coverage.Config
	synthesisOpts  []synthesis.Option
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration

	// questionThreshold gates which research questions are offered to a
	// cluster's synthesis prompt, by centroid similarity.
	questionThreshold float64

	progressWriter io.Writer
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithClusterConfig overrides the clustering configuration.
func WithClusterConfig(config cluster.Config) Option {
	return func(p *Pipeline) error {
		if err := config.Validate(); err != nil {
			return err
		}
		p.clusterConfig = config
		return nil
	}
}

// WithCoverageConfig overrides the coverage validation configuration.
func WithCoverageConfig(config coverage.Config) Option {
	return func(p *Pipeline) error {
		if err := config.Validate(); err != nil {
			return err
		}
		p.coverageConfig = config
		return nil
	}
}

// WithSynthesisOptions passes options through to the per-run synthesizer.
func WithSynthesisOptions(opts ...synthesis.Option) Option {
	return func(p *Pipeline) error {
		p.synthesisOpts = append(p.synthesisOpts, opts...)
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per provider call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.batchSize = size
		}
		return nil
	}
}

// WithRetryPolicy sets the retry budget for embedding calls.
func WithRetryPolicy(maxRetries int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxRetries <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxRetries = maxRetries
		if baseDelay > 0 {
			p.retryBaseDelay = baseDelay
		}
		return nil
	}
}

// WithQuestionThreshold sets the centroid similarity a research question
// must reach to be offered to a cluster's synthesis prompt. Default is 0.3.
func WithQuestionThreshold(threshold float64) Option {
	return func(p *Pipeline) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("%w: question threshold %.2f outside [0,1]", core.ErrInvalidConfig, threshold)
		}
		p.questionThreshold = threshold
		return nil
	}
}

// WithRunRepository enables persistence of completed runs.
func WithRunRepository(repo storage.RunRepository) Option {
	return func(p *Pipeline) error {
		p.runs = repo
		return nil
	}
}

// WithChunkRepository enables persistence of embedded chunks per run.
func WithChunkRepository(repo storage.ChunkRepository) Option {
	return func(p *Pipeline) error {
		p.chunks = repo
		return nil
	}
}

// WithProgressWriter enables stage progress reporting to the writer,
// typically os.Stderr. Default is no progress output.
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progressWriter = w
		return nil
	}
}

// NewPipeline creates a new analysis pipeline.
func NewPipeline(provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		provider:          provider,
		pool:              pool,
		clusterConfig:     cluster.DefaultConfig(),
		coverageConfig:    coverage.DefaultConfig(),
		batchSize:         defaultBatchSize,
		maxRetries:        defaultMaxRetries,
		retryBaseDelay:    defaultRetryBaseDelay,
		questionThreshold: defaultQuestionThreshold,
		logger:            slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Result is the outcome of one pipeline run. Partial completion is a valid
// outcome: failed clusters are listed in Run.Unsynthesized and chunks whose
// embedding batch failed in SkippedChunkIds.
type Result struct {
	Run *core.AnalysisRun

	// SkippedChunkIds lists chunks excluded because their embedding batch
	// failed after all retries.
	SkippedChunkIds []core.ID

	// Relaxed and Exhausted carry the clustering diagnostics through to
	// callers; see cluster.Result.
	Relaxed   bool
	Exhausted bool

	// RescuedCount is the number of noise chunks reassigned to clusters.
	RescuedCount int
}

// Run executes the full pipeline over the given chunks. The input slices
// are not mutated; embeddings and relevance scores are cached on the run's
// own copies. Questions may be empty, in which case relevance scoring and
// coverage validation are skipped and clustering is purely semantic.
//
// Cancelling the context stops the run at the next stage boundary; clusters
// already synthesized when cancellation lands are kept.
func (p *Pipeline) Run(ctx context.Context, chunks []core.Chunk, questions []core.ResearchQuestion, lensName string) (*Result, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks supplied", core.ErrDataInsufficiency)
	}

	if lensName == "" {
		lensName = synthesis.DefaultLensName
	}
	lens, err := synthesis.LensByName(lensName)
	if err != nil {
		return nil, err
	}

	working := make([]core.Chunk, len(chunks))
	copy(working, chunks)
	qs := make([]core.ResearchQuestion, len(questions))
	copy(qs, questions)

	embed := newBatchEmbedder(p.provider.Embedder(), p.pool, p.batchSize, p.maxRetries, p.retryBaseDelay, p.logger)

	progress := p.newProgress("embedding", len(working))
	skipped, err := embed.embedChunks(ctx, working, progress)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		working = dropSkipped(working, skipped)
		p.logger.Warn("chunks skipped after embedding failures", "skipped", len(skipped), "remaining", len(working))
	}
	if len(working) == 0 {
		return nil, fmt.Errorf("%w: no chunks survived embedding", core.ErrDataInsufficiency)
	}

	var scorer *research.Scorer
	if len(qs) > 0 {
		if err := embed.embedQuestions(ctx, qs); err != nil {
			return nil, err
		}
		scorer, err = research.NewScorer(qs)
		if err != nil {
			return nil, err
		}
		scorer.ScoreAll(working)
	}

	clusterer, err := cluster.NewClusterer(p.clusterConfig)
	if err != nil {
		return nil, err
	}
	cres, err := clusterer.Cluster(working)
	if err != nil {
		return nil, err
	}
	p.logger.Info("clustering complete",
		"clusters", len(cres.Clusters), "noise", len(cres.NoiseIds),
		"rescued", cres.RescuedCount, "relaxed", cres.Relaxed, "exhausted", cres.Exhausted)

	themes, unsynthesized := p.synthesizeClusters(ctx, cres.Clusters, working, qs, scorer, lens)

	var report *core.CoverageReport
	if len(qs) > 0 {
		report = p.validateCoverage(ctx, embed, qs, themes)
	}

	run := &core.AnalysisRun{
		Id:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Lens:          lens.Name,
		ChunkCount:    len(working),
		Questions:     qs,
		Themes:        themes,
		Unsynthesized: unsynthesized,
		NoiseIds:      cres.NoiseIds,
	}
	if report != nil {
		run.Coverage = *report
	}

	result := &Result{
		Run:             run,
		SkippedChunkIds: skipped,
		Relaxed:         cres.Relaxed,
		Exhausted:       cres.Exhausted,
		RescuedCount:    cres.RescuedCount,
	}

	if err := p.persist(ctx, run, working); err != nil {
		// The computed result is still returned; callers decide whether
		// a persistence failure is fatal.
		return result, fmt.Errorf("persisting run %s: %w", run.Id, err)
	}
	return result, nil
}

// synthesizeClusters runs synthesis and verification for every cluster on
// the worker pool, one task per cluster. Each task writes only its own slot;
// results are joined before coverage validation. Failed clusters are
// recorded, not fatal.
func (p *Pipeline) synthesizeClusters(
	ctx context.Context,
	clusters []core.Cluster,
	chunks []core.Chunk,
	questions []core.ResearchQuestion,
	scorer *research.Scorer,
	lens synthesis.Lens,
) ([]core.Theme, []core.UnsynthesizedCluster) {
	if len(clusters) == 0 {
		return nil, nil
	}

	synth := synthesis.New(p.provider.Generator(), p.provider.FallbackGenerator(), p.synthesisOpts...)
	verifier := verify.NewVerifier()

	byId := make(map[core.ID]*core.Chunk, len(chunks))
	for i := range chunks {
		byId[chunks[i].Id] = &chunks[i]
	}

	type outcome struct {
		theme   *core.Theme
		failure *core.UnsynthesizedCluster
	}
	outcomes := make([]outcome, len(clusters))

	progress := p.newProgress("synthesis", len(clusters))
	var wg sync.WaitGroup
	for i := range clusters {
		i := i
		cl := clusters[i]

		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if progress != nil {
					progress.Increment(1)
				}
			}()

			if ctx.Err() != nil {
				outcomes[i].failure = &core.UnsynthesizedCluster{ClusterId: cl.Id, Reason: ctx.Err().Error()}
				return
			}

			members := make([]core.Chunk, 0, len(cl.MemberIds))
			for _, id := range cl.MemberIds {
				if c, ok := byId[id]; ok {
					members = append(members, *c)
				}
			}

			req := synthesis.Request{
				Cluster:   cl,
				Chunks:    members,
				Lens:      lens,
				Questions: p.relevantQuestions(scorer, questions, cl.Centroid),
			}
			candidate, trace, err := synth.Synthesize(ctx, req)
			if err != nil {
				reason := trace.FailureReason
				if reason == "" {
					reason = err.Error()
				}
				p.logger.Warn("cluster synthesis failed", "cluster", cl.Id, "reason", reason)
				outcomes[i].failure = &core.UnsynthesizedCluster{ClusterId: cl.Id, Reason: reason}
				return
			}

			theme, misses := verifier.Verify(candidate, members, chunks)
			for _, miss := range misses {
				p.logger.Debug("quote fragment discarded",
					"cluster", cl.Id, "fragment", miss.Fragment, "bestOverlap", miss.BestOverlap)
			}
			outcomes[i].theme = theme
		}
		if err := p.pool.Submit(task); err != nil {
			wg.Done()
			outcomes[i].failure = &core.UnsynthesizedCluster{ClusterId: cl.Id, Reason: err.Error()}
		}
	}
	wg.Wait()
	if progress != nil {
		progress.Finish()
	}

	var themes []core.Theme
	var unsynthesized []core.UnsynthesizedCluster
	for _, o := range outcomes {
		switch {
		case o.theme != nil:
			themes = append(themes, *o.theme)
		case o.failure != nil:
			unsynthesized = append(unsynthesized, *o.failure)
		}
	}
	return themes, unsynthesized
}

// relevantQuestions selects the research questions a cluster may address,
// by centroid similarity, most relevant first.
func (p *Pipeline) relevantQuestions(scorer *research.Scorer, questions []core.ResearchQuestion, centroid []float32) []core.ResearchQuestion {
	if scorer == nil || len(questions) == 0 {
		return nil
	}

	byId := make(map[core.ID]core.ResearchQuestion, len(questions))
	for _, q := range questions {
		byId[q.Id] = q
	}

	ids := scorer.RelevantQuestions(centroid, p.questionThreshold)
	selected := make([]core.ResearchQuestion, 0, len(ids))
	for _, id := range ids {
		if q, ok := byId[id]; ok {
			selected = append(selected, q)
		}
	}
	return selected
}

// validateCoverage builds the coverage report, with theme embeddings for
// the semantic fallback when they can be computed. Embedding failure here
// degrades the report rather than failing the run.
func (p *Pipeline) validateCoverage(ctx context.Context, embed *batchEmbedder, questions []core.ResearchQuestion, themes []core.Theme) *core.CoverageReport {
	validator, err := coverage.NewValidator(p.coverageConfig)
	if err != nil {
		p.logger.Error("coverage validator misconfigured", "error", err)
		return nil
	}

	var themeEmbeddings [][]float32
	if len(themes) > 0 {
		texts := make([]string, len(themes))
		for i, t := range themes {
			texts[i] = t.Label + ": " + t.Summary
		}
		var embedded [][]float32
		embedErr := RetryWithBackoff(ctx, func() error {
			var err error
			embedded, err = p.provider.Embedder().EmbedTexts(ctx, texts)
			return err
		}, embed.maxRetries, embed.retryBaseDelay)
		if embedErr != nil {
			p.logger.Warn("theme embedding failed, semantic fallback disabled", "error", embedErr)
		} else if len(embedded) == len(themes) {
			themeEmbeddings = embedded
		}
	}

	return validator.Report(questions, themes, themeEmbeddings)
}

// persist writes the run and its chunks through the configured
// repositories. Repositories are optional; with none configured this is a
// no-op.
func (p *Pipeline) persist(ctx context.Context, run *core.AnalysisRun, chunks []core.Chunk) error {
	if p.chunks != nil {
		if err := p.chunks.PutChunks(ctx, run.Id, chunks); err != nil {
			return fmt.Errorf("storing chunks: %w", err)
		}
	}
	if p.runs != nil {
		if err := p.runs.PutRun(ctx, run); err != nil {
			return fmt.Errorf("storing run: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) newProgress(stage string, total int) *ProgressTracker {
	if p.progressWriter == nil {
		return nil
	}
	t := NewProgressTracker(p.progressWriter, stage, total, progressInterval)
	t.Start()
	return t
}

// dropSkipped removes chunks whose IDs appear in skipped, preserving order.
func dropSkipped(chunks []core.Chunk, skipped []core.ID) []core.Chunk {
	drop := make(map[core.ID]struct{}, len(skipped))
	for _, id := range skipped {
		drop[id] = struct{}{}
	}
	kept := chunks[:0]
	for _, c := range chunks {
		if _, ok := drop[c.Id]; !ok {
			kept = append(kept, c)
		}
	}
	return kept
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
