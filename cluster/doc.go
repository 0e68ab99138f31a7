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


// Package cluster groups chunks into thematic clusters.
//
// Each chunk is represented by a hybrid vector: its normalized embedding
// weighted by SemanticWeight, concatenated with a fixed-width block whose
// magnitude encodes the research relevance weighted by RelevanceWeight.
// Hybrid vectors pass through a seeded neighborhood-preserving reduction,
// then density-based clustering labels each chunk with a cluster or noise.
//
// A rescue pass reclaims noise chunks with high research relevance by
// assigning them to the nearest cluster centroid when close enough, so
// on-topic content is not silently dropped by the unsupervised grouping.
//
// All randomness is seeded; identical input and configuration reproduce
// identical assignments.
package cluster
