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


// Package research scores chunks against research questions.
//
// The scorer compares chunk embeddings with question embeddings using
// cosine similarity clamped to [0, 1], so antipodal vectors count as
// irrelevant rather than negatively relevant. Scores feed the hybrid
// clusterer (as an extra vector block) and the coverage validator (as a
// semantic fallback when no theme addresses a question directly).
//
// Scoring happens once per chunk per run; results are cached by chunk
// content ID and the cache is bounded.
package research
