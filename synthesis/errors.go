package synthesis

import "errors"

var (
	// ErrUnknownLens indicates a lens name with no table entry.
	ErrUnknownLens = errors.New("synthesis: unknown lens")

	// ErrMalformedResponse indicates the backend returned text that could
	// not be parsed as a theme, even after repair.
	ErrMalformedResponse = errors.New("synthesis: malformed response")

	// ErrNoChunks indicates a synthesis request without source text.
	ErrNoChunks = errors.New("synthesis: no chunks in request")
)
