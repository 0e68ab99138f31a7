package storage

import (
	"testing"
	"time"

	"github.com/poiesic/insight/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalChunk(t *testing.T) {
	tests := []struct {
		name  string
		chunk *core.Chunk
	}{
		{
			name: "full chunk",
			chunk: &core.Chunk{
				Id:         core.IDFromContent("the checkout flow confuses me"),
				Text:       "the checkout flow confuses me",
				Speaker:    "alice",
				SourceFile: "interview_01.txt",
				Embedding:  []float32{0.1, 0.2, 0.3},
				Metadata: core.ChunkMetadata{
					IsInterviewer: false,
					ContentType:   "response",
				},
				ResearchRelevance: 0.82,
			},
		},
		{
			name: "chunk without embedding",
			chunk: &core.Chunk{
				Id:         core.ID(7),
				Text:       "short",
				Speaker:    "bob",
				SourceFile: "interview_02.txt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChunk(tt.chunk)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalChunk(data)
			require.NoError(t, err)
			assert.Equal(t, tt.chunk.Id, decoded.Id)
			assert.Equal(t, tt.chunk.Text, decoded.Text)
			assert.Equal(t, tt.chunk.Speaker, decoded.Speaker)
			assert.Equal(t, tt.chunk.SourceFile, decoded.SourceFile)
			if len(tt.chunk.Embedding) == 0 {
				// The generated decoder hands back an empty
				// rather than a nil slice.
				assert.Empty(t, decoded.Embedding)
			} else {
				assert.Equal(t, tt.chunk.Embedding, decoded.Embedding)
			}
			assert.Equal(t, tt.chunk.Metadata, decoded.Metadata)
			assert.Equal(t, tt.chunk.ResearchRelevance, decoded.ResearchRelevance)
		})
	}
}

func TestMarshalUnmarshalAnalysisRun(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	run := &core.AnalysisRun{
		Id:         "3b9f2d64-8a1c-47e2-b2f0-5a4f1f0d9c11",
		CreatedAt:  now,
		Lens:       "pain_points",
		ChunkCount: 42,
		Questions: []core.ResearchQuestion{
			{
				Id:        core.IDFromContent("why do users churn"),
				Text:      "why do users churn",
				Embedding: []float32{0.5, 0.5},
			},
		},
		Themes: []core.Theme{
			{
				ClusterId:  0,
				Label:      "Checkout friction",
				Summary:    "Participants struggle at checkout.",
				Confidence: core.ConfidenceHigh,
				Quotes: []core.Quote{
					{
						Text:       "I always give up at the payment step.",
						Speaker:    "alice",
						SourceFile: "interview_01.txt",
						Confidence: 1.0,
					},
				},
				AddressedQuestionIds: []core.ID{core.IDFromContent("why do users churn")},
				DiscardedFragments:   1,
			},
		},
		Unsynthesized: []core.UnsynthesizedCluster{
			{ClusterId: 1, Reason: "primary (openai:qwen2.5:3b): backend unreachable; no fallback configured"},
		},
		NoiseIds: []core.ID{core.ID(99)},
		Coverage: core.CoverageReport{
			PerQuestion: []core.QuestionCoverage{
				{
					QuestionId:          core.IDFromContent("why do users churn"),
					CoveragePct:         61.5,
					SupportingThemes:    []int{0},
					ConfidenceHistogram: map[core.ConfidenceTag]int{core.ConfidenceHigh: 1},
					GapSeverity:         core.GapNone,
					Recommendation:      "",
				},
			},
			OverallPct: 61.5,
		},
	}

	data := MarshalAnalysisRun(run)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalAnalysisRun(data)
	require.NoError(t, err)
	assert.Equal(t, run.Id, decoded.Id)
	assert.True(t, run.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, run.Lens, decoded.Lens)
	assert.Equal(t, run.ChunkCount, decoded.ChunkCount)
	assert.Equal(t, run.Questions, decoded.Questions)
	assert.Equal(t, run.Themes, decoded.Themes)
	assert.Equal(t, run.Unsynthesized, decoded.Unsynthesized)
	assert.Equal(t, run.NoiseIds, decoded.NoiseIds)
	assert.Equal(t, run.Coverage, decoded.Coverage)
}

func TestUnmarshalAnalysisRun_Corrupt(t *testing.T) {
	_, err := UnmarshalAnalysisRun([]byte{0xff, 0x01})
	assert.Error(t, err)
}
