// Package pipeline orchestrates full analysis runs over interview chunks.
//
// A run proceeds in fixed stages: chunk embedding (batched, concurrent,
// with per-batch retry), research relevance scoring, clustering, parallel
// per-cluster synthesis and quote verification, and coverage validation.
// Stage concurrency is bounded by a shared worker pool.
//
// Partial completion is a first-class outcome. Chunks whose embedding batch
// fails are skipped, clusters whose synthesis fails terminally are recorded
// with their reason, and the run succeeds with whatever evidence survived.
// Only run-level failures (no usable chunks, a fully unreachable embedding
// provider, invalid configuration) abort a run.
//
// Completed runs are persisted through the storage repositories when they
// are configured; without them a run is purely in-memory.
package pipeline
