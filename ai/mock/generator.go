package mock

import (
	"context"
	"sync"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields and is safe for
// concurrent use, since the pipeline calls generators from worker pools.
type MockGenerator struct {
	// GenerateJSONFunc is called by GenerateJSON if set.
	// If nil, a minimal valid theme response is returned.
	GenerateJSONFunc func(ctx context.Context, system, prompt string) (string, error)

	// NameValue overrides the backend name reported by Name.
	NameValue string

	mu        sync.Mutex
	callCount int
}

// NewMockGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow call count assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateJSON returns a canned theme response or delegates to GenerateJSONFunc.
func (m *MockGenerator) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, system, prompt)
	}

	return `{
  "theme_name": "Mock Theme",
  "summary": "A deterministic response for testing.",
  "confidence": "medium",
  "supporting_quotes": []
}`, nil
}

// Name identifies the mock backend.
func (m *MockGenerator) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// CallCount returns the number of times GenerateJSON was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.GenerateJSONFunc = nil
}
