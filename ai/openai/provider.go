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


package openai

import (
	"log/slog"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/ai/ollama"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages the embedder, the primary generator and, when configured,
// an Ollama fallback generator.
type Provider struct {
	config    *ai.Config
	embedder  *Embedder
	generator *Generator
	fallback  ai.Generator
	logger    *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use. When the config names
// a fallback host, a native Ollama generator is created for it.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create embedder (using internal constructor for concrete type)
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	// Create primary generator (using internal constructor for concrete type)
	generator, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	var fallback ai.Generator
	if config.FallbackHost != "" {
		fallback, err = ollama.NewGenerator(config.FallbackHost, config.FallbackModel, config.Temperature)
		if err != nil {
			return nil, err
		}
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		generator: generator,
		fallback:  fallback,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the primary generation backend.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// FallbackGenerator returns the Ollama fallback backend, or nil when no
// fallback host is configured.
func (p *Provider) FallbackGenerator() ai.Generator {
	return p.fallback
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
