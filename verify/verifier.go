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


package verify

import (
	"log/slog"
	"strings"

	"github.com/poiesic/insight/core"
)

// Confidence scores by match quality. Exact means a case-sensitive
// substring hit; normalized means the fragment was only found after
// lowercasing and whitespace collapsing.
const (
	ConfidenceExact      = 1.0
	ConfidenceNormalized = 0.6
)

// Miss records a fragment the verifier could not locate anywhere, with a
// lexical-overlap hint against the closest chunk. Overlap is diagnostic
// only; no fragment is ever accepted by similarity.
type Miss struct {
	Fragment    core.CandidateFragment
	BestOverlap float64
}

// Verifier grounds candidate quote fragments in source text. Fragments
// that cannot be found verbatim (allowing case and whitespace differences
// at reduced confidence) are discarded, never paraphrased into place.
type Verifier struct {
	logger *slog.Logger
}

// NewVerifier creates a verifier.
func NewVerifier() *Verifier {
	return &Verifier{
		logger: slog.Default().With("component", "verifier"),
	}
}

// Verify converts a ThemeCandidate into a Theme. Each fragment is searched
// in the cluster's own chunks first, then across all chunks of the run as
// a fallback. Matches are widened to sentence boundaries in the original
// text; speaker and source file always come from the owning chunk,
// overriding whatever the synthesizer claimed. Unlocatable fragments are
// dropped and counted, and returned as misses for diagnostics.
func (v *Verifier) Verify(candidate *core.ThemeCandidate, clusterChunks, allChunks []core.Chunk) (*core.Theme, []Miss) {
	theme := &core.Theme{
		ClusterId:            candidate.ClusterId,
		Label:                candidate.Label,
		Summary:              candidate.Summary,
		Confidence:           candidate.Confidence,
		AddressedQuestionIds: candidate.AddressedQuestionIds,
	}

	var misses []Miss
	for _, fragment := range candidate.CandidateFragments {
		quote, ok := v.locate(fragment, clusterChunks)
		if !ok {
			quote, ok = v.locate(fragment, allChunks)
		}
		if ok {
			theme.Quotes = append(theme.Quotes, quote)
			continue
		}

		theme.DiscardedFragments++
		misses = append(misses, Miss{
			Fragment:    fragment,
			BestOverlap: bestOverlap(fragment.Text, allChunks),
		})
		v.logger.Debug("discarded unverifiable fragment",
			"cluster", candidate.ClusterId,
			"fragment", fragment.Text)
	}

	return theme, misses
}

// locate searches chunks for the fragment, exact match first across every
// chunk, then normalized. Exact anywhere beats normalized anywhere.
func (v *Verifier) locate(fragment core.CandidateFragment, chunks []core.Chunk) (core.Quote, bool) {
	text := strings.TrimSpace(fragment.Text)
	if text == "" {
		return core.Quote{}, false
	}

	for i := range chunks {
		if idx := strings.Index(chunks[i].Text, text); idx >= 0 {
			return makeQuote(&chunks[i], idx, idx+len(text), ConfidenceExact), true
		}
	}

	normFrag := normalizeText(text)
	if normFrag == "" {
		return core.Quote{}, false
	}
	for i := range chunks {
		normDoc, starts, ends := normalizeWithOffsets(chunks[i].Text)
		if idx := strings.Index(normDoc, normFrag); idx >= 0 {
			origStart := starts[idx]
			origEnd := ends[idx+len(normFrag)-1]
			return makeQuote(&chunks[i], origStart, origEnd, ConfidenceNormalized), true
		}
	}

	return core.Quote{}, false
}

func makeQuote(chunk *core.Chunk, start, end int, confidence float64) core.Quote {
	return core.Quote{
		Text:       expandSentence(chunk.Text, start, end),
		Speaker:    chunk.Speaker,
		SourceFile: chunk.SourceFile,
		Confidence: confidence,
	}
}

func bestOverlap(fragment string, chunks []core.Chunk) float64 {
	best := 0.0
	for i := range chunks {
		if o := lexicalOverlap(chunks[i].Text, fragment); o > best {
			best = o
		}
	}
	return best
}
