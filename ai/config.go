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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// GenerationHost is the base URL for the primary generation service API.
	GenerationHost string

	// FallbackHost is the base URL for the secondary (local) generation
	// backend used when the primary is unreachable or times out.
	// Empty disables the fallback.
	FallbackHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// GenerationModel is the model identifier for theme synthesis.
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	GenerationModel string

	// FallbackModel is the model identifier for the fallback backend.
	// Example: "mistral"
	FallbackModel string

	// GenerationTimeout bounds a single generation call.
	// Default: 120s
	GenerationTimeout time.Duration

	// Temperature for generation calls. Synthesis wants near-deterministic
	// output, so the default is low.
	// Default: 0.1
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithGenerationHost sets the primary generation service host URL.
func WithGenerationHost(host string) ConfigOption {
	return func(c *Config) {
		c.GenerationHost = host
	}
}

// WithHost sets both embedding and generation hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.GenerationHost = host
	}
}

// WithFallbackHost sets the secondary generation backend host URL.
func WithFallbackHost(host string) ConfigOption {
	return func(c *Config) {
		c.FallbackHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithFallbackModel sets the fallback generation model identifier.
func WithFallbackModel(model string) ConfigOption {
	return func(c *Config) {
		c.FallbackModel = model
	}
}

// WithGenerationTimeout sets the per-call generation timeout.
func WithGenerationTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.GenerationTimeout = d
	}
}

// WithTemperature sets the generation temperature.
func WithTemperature(temp float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temp
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. By default, embedding and generation use the
// same host and no fallback is configured.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:     defaultHost,
		GenerationHost:    defaultHost,
		EmbeddingModel:    "embeddinggemma",
		GenerationModel:   "qwen2.5:3b",
		FallbackModel:     "mistral",
		GenerationTimeout: 120 * time.Second,
		Temperature:       0.1,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("text-embedding-3-small"),
//       WithFallbackHost("http://localhost:11434"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to OpenAI-compatible hosts if
// missing, which is required by most OpenAI-compatible APIs (Ollama,
// LocalAI, vLLM, etc). The fallback host is left untouched because the
// Ollama native API does not use the /v1 prefix.
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.GenerationHost != "" && !strings.HasSuffix(c.GenerationHost, "/v1") {
		c.GenerationHost = strings.TrimSuffix(c.GenerationHost, "/")
		c.GenerationHost = c.GenerationHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.GenerationHost == "" {
		return errors.New("ai config: GenerationHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GenerationModel == "" {
		return errors.New("ai config: GenerationModel is required")
	}
	if c.FallbackHost != "" && c.FallbackModel == "" {
		return errors.New("ai config: FallbackModel is required when FallbackHost is set")
	}
	if c.GenerationTimeout <= 0 {
		return errors.New("ai config: GenerationTimeout must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
