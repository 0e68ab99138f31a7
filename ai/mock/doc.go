// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Generator,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embedding, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockGen := mock.NewMockGenerator()
//	mockGen.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
//	    return `{"theme_name": "Pricing"}`, nil
//	}
//
//	// Check call counts
//	count := mockGen.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockGenerator: Returns a minimal valid theme JSON response
//   - MockProvider: Aggregates mock embedder and generator
package mock
