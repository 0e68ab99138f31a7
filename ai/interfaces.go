package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use and deterministic
// for identical input.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces structured text from a generation backend.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateJSON sends the system and user prompts to the backend in JSON
	// mode and returns the raw response text. Callers own parsing and any
	// retry policy; the generator itself performs a single call.
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)

	// Name identifies the backend for logging and failure reasons.
	Name() string
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the Embedder and the
// generation backends, ensuring they share configuration appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the primary generation backend.
	Generator() Generator

	// FallbackGenerator returns the secondary (local) generation backend,
	// or nil when no fallback is configured.
	FallbackGenerator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
