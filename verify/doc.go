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


// Package verify grounds synthesized quote fragments in source text.
//
// A fragment becomes a Quote only if it appears as a substring of some
// chunk: exact case-sensitive hits score full confidence, hits found only
// after lowercasing and whitespace collapsing score reduced confidence,
// and everything else is discarded. Absence from source text is absence;
// there is no paraphrase or similarity acceptance of any kind.
//
// Matches are widened to sentence boundaries in the original text, and
// speaker plus source file always come from the chunk that contains the
// match, never from the synthesis backend.
package verify
