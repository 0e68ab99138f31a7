package pipeline

import "errors"

var (
	// ErrProviderRequired is returned when no AI provider is supplied.
	ErrProviderRequired = errors.New("ai provider is required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
