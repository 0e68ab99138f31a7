package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insight/core"
)

func chunk(text, speaker, source string) core.Chunk {
	return core.Chunk{
		Id:         core.IDFromContent(text),
		Text:       text,
		Speaker:    speaker,
		SourceFile: source,
	}
}

func candidateWith(fragments ...core.CandidateFragment) *core.ThemeCandidate {
	return &core.ThemeCandidate{
		ClusterId:          3,
		Label:              "Export friction",
		Summary:            "Exports fail often.",
		Confidence:         core.ConfidenceHigh,
		CandidateFragments: fragments,
	}
}

func TestVerify_ExactMatch(t *testing.T) {
	v := NewVerifier()
	chunks := []core.Chunk{
		chunk("I hate exporting. It always fails at the last step.", "dana", "a.txt"),
	}

	theme, misses := v.Verify(candidateWith(core.CandidateFragment{
		Text:           "always fails",
		ClaimedSpeaker: "someone else",
	}), chunks, chunks)

	require.Empty(t, misses)
	require.Len(t, theme.Quotes, 1)
	q := theme.Quotes[0]

	// Expanded to the containing sentence, attribution from the chunk.
	assert.Equal(t, "It always fails at the last step.", q.Text)
	assert.Equal(t, "dana", q.Speaker)
	assert.Equal(t, "a.txt", q.SourceFile)
	assert.Equal(t, ConfidenceExact, q.Confidence)
	assert.Equal(t, 0, theme.DiscardedFragments)
}

func TestVerify_NormalizedMatch(t *testing.T) {
	v := NewVerifier()
	chunks := []core.Chunk{
		chunk("Foo   Bar baz.", "eli", "b.txt"),
	}

	theme, misses := v.Verify(candidateWith(core.CandidateFragment{
		Text: "foo bar",
	}), chunks, chunks)

	require.Empty(t, misses)
	require.Len(t, theme.Quotes, 1)
	q := theme.Quotes[0]

	// Found only after case/whitespace normalization: the quote is the
	// full original sentence at reduced confidence.
	assert.Equal(t, "Foo   Bar baz.", q.Text)
	assert.Equal(t, ConfidenceNormalized, q.Confidence)
	assert.Equal(t, "eli", q.Speaker)
}

func TestVerify_FallbackToAllChunks(t *testing.T) {
	v := NewVerifier()
	clusterChunks := []core.Chunk{
		chunk("Totally unrelated chatter.", "dana", "a.txt"),
	}
	allChunks := append(clusterChunks,
		chunk("The onboarding flow confused me completely.", "eli", "b.txt"))

	theme, misses := v.Verify(candidateWith(core.CandidateFragment{
		Text: "onboarding flow confused me",
	}), clusterChunks, allChunks)

	require.Empty(t, misses)
	require.Len(t, theme.Quotes, 1)
	assert.Equal(t, "The onboarding flow confused me completely.", theme.Quotes[0].Text)
	assert.Equal(t, "b.txt", theme.Quotes[0].SourceFile)
}

func TestVerify_DiscardsUnlocatable(t *testing.T) {
	v := NewVerifier()
	chunks := []core.Chunk{
		chunk("Users mentioned pricing and support quality.", "dana", "a.txt"),
	}

	theme, misses := v.Verify(candidateWith(
		core.CandidateFragment{Text: "pricing was their biggest complaint"},
		core.CandidateFragment{Text: "support quality"},
	), chunks, chunks)

	// Paraphrase is absence: one fragment survives, one is dropped.
	require.Len(t, theme.Quotes, 1)
	assert.Equal(t, 1, theme.DiscardedFragments)
	require.Len(t, misses, 1)
	assert.Equal(t, "pricing was their biggest complaint", misses[0].Fragment.Text)
	assert.Greater(t, misses[0].BestOverlap, 0.0)
	assert.Less(t, misses[0].BestOverlap, 1.0)
}

func TestVerify_CarriesCandidateFields(t *testing.T) {
	v := NewVerifier()
	candidate := candidateWith()
	candidate.AddressedQuestionIds = []core.ID{9}

	theme, _ := v.Verify(candidate, nil, nil)

	assert.Equal(t, 3, theme.ClusterId)
	assert.Equal(t, "Export friction", theme.Label)
	assert.Equal(t, core.ConfidenceHigh, theme.Confidence)
	assert.Equal(t, []core.ID{9}, theme.AddressedQuestionIds)
	assert.Empty(t, theme.Quotes)
}

func TestExpandSentence(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		want       string
	}{
		{
			name: "middle sentence",
			text: "First one. Second here. Third one.",
			// "Second"
			start: 11, end: 17,
			want: "Second here.",
		},
		{
			name:  "no terminators",
			text:  "just a fragment of speech",
			start: 7, end: 15,
			want: "just a fragment of speech",
		},
		{
			name:  "terminator run",
			text:  "Wait. Really?! Yes.",
			start: 6, end: 12,
			want: "Really?!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandSentence(tt.text, tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeWithOffsets(t *testing.T) {
	norm, starts, ends := normalizeWithOffsets("  Foo\t\tBAR  ")

	assert.Equal(t, "foo bar", norm)
	require.Len(t, starts, len(norm))
	require.Len(t, ends, len(norm))

	// 'f' maps to the original 'F' at byte 2.
	assert.Equal(t, 2, starts[0])
	// Final 'r' maps past the original 'R' at byte 10.
	assert.Equal(t, 10, ends[len(ends)-1])
}

func TestLexicalOverlap(t *testing.T) {
	doc := "The export button is hidden in settings."

	assert.Equal(t, 1.0, lexicalOverlap(doc, "export button hidden"))
	assert.Equal(t, 0.0, lexicalOverlap(doc, "pricing complaints"))
	assert.InDelta(t, 0.5, lexicalOverlap(doc, "export pricing"), 1e-9)
	assert.Equal(t, 0.0, lexicalOverlap(doc, "the and of"))
}
