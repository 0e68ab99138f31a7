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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/insight"
	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/ai/openai"
	"github.com/poiesic/insight/cluster"
	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/coverage"
	"github.com/poiesic/insight/pipeline"
	"github.com/poiesic/insight/reembed"
	"github.com/poiesic/insight/search"
	"github.com/poiesic/insight/storage/badger"
	"github.com/poiesic/insight/synthesis"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "insight",
		Usage: "Research-aware thematic analysis for interview transcripts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Cluster chunks into verified themes and report question coverage",
				Action: analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "chunks",
						Aliases:  []string{"c"},
						Usage:    "Path to JSON file of pre-segmented chunks",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "questions",
						Aliases: []string{"q"},
						Usage:   "Path to research questions file, one per line",
					},
					&cli.StringFlag{
						Name:  "lens",
						Usage: "Analytical lens to synthesize themes through",
						Value: synthesis.DefaultLensName,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (empty runs in memory)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "generation-host",
						Usage: "Generation service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "generation-model",
						Usage: "Generation model name for theme synthesis",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "fallback-host",
						Usage: "Fallback generation host URL (empty disables the fallback)",
					},
					&cli.StringFlag{
						Name:  "fallback-model",
						Usage: "Fallback generation model name",
						Value: "mistral",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Timeout for a single generation call",
						Value: 120 * time.Second,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to embed in each batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size (0 uses half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "min-cluster-size",
						Usage: "Smallest chunk group that survives as a cluster",
						Value: 3,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for reproducible clustering",
						Value: 42,
					},
					&cli.Float64Flag{
						Name:  "question-threshold",
						Usage: "Minimum centroid similarity for a question to reach a cluster",
						Value: 0.3,
					},
					&cli.Float64Flag{
						Name:  "gap-threshold",
						Usage: "Coverage percentage below which a question is flagged",
						Value: 50,
					},
				},
			},
			{
				Name:   "lenses",
				Usage:  "List available analytical lenses",
				Action: lensesCommand,
			},
			{
				Name:  "runs",
				Usage: "Inspect stored analysis runs",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List stored runs, most recent first",
						Action: runsListCommand,
						Flags:  []cli.Flag{dbFlag()},
					},
					{
						Name:      "show",
						Usage:     "Print a stored run as JSON",
						ArgsUsage: "<run-id>",
						Action:    runsShowCommand,
						Flags:     []cli.Flag{dbFlag()},
					},
					{
						Name:      "delete",
						Usage:     "Delete a stored run and its chunks",
						ArgsUsage: "<run-id>",
						Action:    runsDeleteCommand,
						Flags:     []cli.Flag{dbFlag()},
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Find chunks from a stored run similar to a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "run",
						Aliases:  []string{"r"},
						Usage:    "Run ID whose chunks to search",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of hits",
						Value: 5,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed a stored run's chunks with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "run",
						Aliases:  []string{"r"},
						Usage:    "Run ID whose chunks to reembed",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func analyzeCommand(c *cli.Context) error {
	ctx := context.Background()

	chunks, err := loadChunks(c.String("chunks"))
	if err != nil {
		return err
	}

	var questions []core.ResearchQuestion
	if path := c.String("questions"); path != "" {
		questions, err = loadQuestions(path)
		if err != nil {
			return err
		}
	}

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGenerationHost(c.String("generation-host")),
		ai.WithGenerationModel(c.String("generation-model")),
		ai.WithFallbackHost(c.String("fallback-host")),
		ai.WithFallbackModel(c.String("fallback-model")),
		ai.WithGenerationTimeout(c.Duration("timeout")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	// Open the engine; an empty db path keeps everything in memory
	dbPath := c.String("db")
	engineOpts := []insight.EngineOption{insight.WithAIConfig(aiConfig)}
	if dbPath == "" {
		engineOpts = append(engineOpts, insight.WithInMemoryStorage())
	}
	engine, err := insight.NewEngine(dbPath, engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	clusterConfig := cluster.DefaultConfig()
	clusterConfig.MinClusterSize = c.Int("min-cluster-size")
	clusterConfig.Seed = c.Int64("seed")

	coverageConfig := coverage.DefaultConfig()
	coverageConfig.GapThreshold = c.Float64("gap-threshold")

	pipelineOpts := []pipeline.Option{
		pipeline.WithBatchSize(c.Int("batch-size")),
		pipeline.WithRetryPolicy(c.Int("max-retries"), c.Duration("retry-delay")),
		pipeline.WithQuestionThreshold(c.Float64("question-threshold")),
		pipeline.WithClusterConfig(clusterConfig),
		pipeline.WithCoverageConfig(coverageConfig),
		pipeline.WithSynthesisOptions(synthesis.WithCallTimeout(c.Duration("timeout"))),
		pipeline.WithProgressWriter(os.Stderr),
	}
	if size := c.Int("pool-size"); size > 0 {
		pipelineOpts = append(pipelineOpts, pipeline.WithPoolSize(size))
	}

	p, err := engine.NewAnalysisPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Release()

	fmt.Fprintf(os.Stderr, "Chunks: %d\n", len(chunks))
	fmt.Fprintf(os.Stderr, "Questions: %d\n", len(questions))
	fmt.Fprintf(os.Stderr, "Lens: %s\n", c.String("lens"))
	if dbPath != "" {
		fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	}
	fmt.Fprintln(os.Stderr)

	result, runErr := p.Run(ctx, chunks, questions, c.String("lens"))
	if result == nil {
		return fmt.Errorf("analysis failed: %w", runErr)
	}

	if err := emitJSON(result); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nThemes: %d\n", len(result.Run.Themes))
	if len(result.Run.Unsynthesized) > 0 {
		fmt.Fprintf(os.Stderr, "Unsynthesized clusters: %d\n", len(result.Run.Unsynthesized))
	}
	if len(result.SkippedChunkIds) > 0 {
		fmt.Fprintf(os.Stderr, "Skipped chunks: %d\n", len(result.SkippedChunkIds))
	}
	fmt.Fprintf(os.Stderr, "Overall coverage: %.1f%%\n", result.Run.Coverage.OverallPct)

	// The run itself succeeded; a persistence failure still exits nonzero.
	if runErr != nil {
		return runErr
	}
	return nil
}

func lensesCommand(c *cli.Context) error {
	for _, lens := range synthesis.Lenses() {
		fmt.Printf("%-20s %s\n", lens.Name, lens.Description)
	}
	return nil
}

func runsListCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, repo, err := openRunRepository(c.String("db"))
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	runs, err := repo.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "No stored runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  %-16s  %4d chunks  %3d themes  %5.1f%%\n",
			run.Id,
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Lens,
			run.ChunkCount,
			len(run.Themes),
			run.Coverage.OverallPct,
		)
	}
	return nil
}

func runsShowCommand(c *cli.Context) error {
	ctx := context.Background()

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("run ID is required")
	}

	backend, repo, err := openRunRepository(c.String("db"))
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	run, err := repo.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return emitJSON(run)
}

func runsDeleteCommand(c *cli.Context) error {
	ctx := context.Background()

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("run ID is required")
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	runRepo, err := badger.NewRunRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create run repository: %w", err)
	}
	defer runRepo.Close()

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create chunk repository: %w", err)
	}
	defer chunkRepo.Close()

	if err := runRepo.DeleteRun(ctx, id); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	if err := chunkRepo.DeleteChunks(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chunks for run %s: %w", id, err)
	}

	fmt.Fprintf(os.Stderr, "Deleted run %s\n", id)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create chunk repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	searcher, err := search.NewSearcher(repo, provider)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	hits, err := searcher.FindSimilar(ctx, c.String("run"), query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Found %d hits\n", len(hits))
	for i, hit := range hits {
		fmt.Printf("%d: %q %s (%s) [%.3f]\n",
			i, hit.Chunk.Text, hit.Chunk.Speaker, hit.Chunk.SourceFile, hit.Score)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create chunk repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	reembedder, err := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reembedder: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Run: %s\n", c.String("run"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx, c.String("run")); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func openRunRepository(dbPath string) (*badger.Backend, *badger.RunRepository, error) {
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	repo, err := badger.NewRunRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create run repository: %w", err)
	}
	return backend, repo, nil
}

func emitJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
