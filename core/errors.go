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


package core

import "errors"

// Run-level and cluster-level error taxonomy.
//
// Run-level errors (ErrDataInsufficiency at input, ErrEmbeddingFailure when
// the provider is entirely unreachable, ErrInvalidConfig) abort a run.
// Cluster-level errors (ErrSynthesisFailure, ErrVerificationMiss) are
// recorded on the cluster's result and never abort the run.
var (
	// ErrDataInsufficiency indicates too few chunks or clusters to proceed.
	ErrDataInsufficiency = errors.New("insufficient data")

	// ErrEmbeddingFailure indicates the embedding provider is unreachable
	// or returned malformed vectors.
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrSynthesisFailure indicates a generation backend exhausted retries
	// and fallback for a cluster. Recorded per cluster, non-fatal.
	ErrSynthesisFailure = errors.New("synthesis failure")

	// ErrVerificationMiss indicates a candidate fragment was not found in
	// source text. Recorded per theme, non-fatal; the quote is dropped.
	ErrVerificationMiss = errors.New("verification miss")

	// ErrInvalidConfig indicates a configuration value is out of range or
	// inconsistent, such as a weight split that does not sum to 1.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidQuestion indicates a ResearchQuestion failed validation.
	ErrInvalidQuestion = errors.New("invalid research question")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptySourceFile indicates the SourceFile field is empty.
	ErrEmptySourceFile = errors.New("source file cannot be empty")
)
