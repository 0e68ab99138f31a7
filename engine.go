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


package insight

import (
	"io"
	"log/slog"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/ai/openai"
	"github.com/poiesic/insight/pipeline"
	"github.com/poiesic/insight/reembed"
	"github.com/poiesic/insight/search"
	"github.com/poiesic/insight/storage"
	"github.com/poiesic/insight/storage/badger"
)

// Engine bundles the storage backend, repositories and AI provider behind
// one handle. It is the entry point for embedding applications; the CLI is
// a thin wrapper around it.
type Engine struct {
	backend   *badger.Backend
	chunkRepo storage.ChunkRepository
	runRepo   storage.RunRepository
	provider  ai.Provider
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the default
// OpenAI-compatible construction. Used by tests and embedders with their
// own provider wiring.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory, discarding it on Close.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the storage backend at filePath and wires the
// repositories and AI provider.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	runRepo, err := badger.NewRunRepository(backend)
	if err != nil {
		chunkRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			runRepo.Close()
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:   backend,
		chunkRepo: chunkRepo,
		runRepo:   runRepo,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

func (e *Engine) Close() error {
	// Close AI provider first
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := e.runRepo.Close(); err != nil {
		e.logger.Error("error closing run repository", "err", err)
		return err
	}
	if err := e.chunkRepo.Close(); err != nil {
		e.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	// Close backend
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Engine) ChunkRepository() storage.ChunkRepository {
	return e.chunkRepo
}

func (e *Engine) RunRepository() storage.RunRepository {
	return e.runRepo
}

func (e *Engine) Provider() ai.Provider {
	return e.provider
}

// NewAnalysisPipeline creates a pipeline wired to the engine's provider and
// repositories. Additional options are applied after the engine's own.
func (e *Engine) NewAnalysisPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	wired := []pipeline.Option{
		pipeline.WithChunkRepository(e.chunkRepo),
		pipeline.WithRunRepository(e.runRepo),
	}
	wired = append(wired, opts...)
	return pipeline.NewPipeline(e.provider, wired...)
}

// NewSearcher creates a searcher over the engine's stored chunks.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(e.chunkRepo, e.provider, opts...)
}

// NewReembedder creates a reembedder over the engine's stored chunks.
// progress: where to write progress output (typically os.Stderr)
func (e *Engine) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(e.chunkRepo, e.provider.Embedder(), config, progress)
}
