// Package synthesis produces theme candidates from clusters via a
// generation backend.
//
// Each cluster's member texts, a lens, and the relevant research questions
// become one JSON-mode prompt. The backend's answer is parsed defensively
// (fence stripping, JSON repair, bounded regeneration on malformed output)
// and converted into a core.ThemeCandidate. Quote fragments in the answer
// are never trusted; the verify package decides whether they become real
// quotes.
//
// Backend failure follows a fixed two-stage ladder: the primary generator,
// then an optional local fallback, then terminal failure that marks only
// the cluster, never the run.
package synthesis
