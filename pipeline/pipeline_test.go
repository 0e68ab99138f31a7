package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insight/ai/mock"
	"github.com/poiesic/insight/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// embeddedChunk builds a pre-embedded chunk so runs skip the embedding
// stage and exercise the later stages deterministically.
func embeddedChunk(text, speaker string, embedding []float32) core.Chunk {
	return core.Chunk{
		Id:         core.IDFromContent(text),
		Text:       text,
		Speaker:    speaker,
		SourceFile: "interview.txt",
		Embedding:  embedding,
	}
}

// twoTopicChunks returns 2*size pre-embedded chunks forming two
// well-separated semantic groups.
func twoTopicChunks(size int) []core.Chunk {
	chunks := make([]core.Chunk, 0, 2*size)
	for i := 0; i < size; i++ {
		p := float32(i) * 0.01
		chunks = append(chunks, embeddedChunk(
			fmt.Sprintf("checkout frustration %d", i), "alice",
			[]float32{1, p, 0, p, 0, 0}))
	}
	for i := 0; i < size; i++ {
		p := float32(i) * 0.01
		chunks = append(chunks, embeddedChunk(
			fmt.Sprintf("search praise %d", i), "bob",
			[]float32{0, p, 1, 0, p, 0}))
	}
	return chunks
}

// topicGenerator answers synthesis prompts with a valid payload quoting one
// member chunk verbatim, keyed on which topic's excerpts appear in the
// prompt.
func topicGenerator() *mock.MockGenerator {
	gen := mock.NewMockGenerator()
	gen.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		if strings.Contains(prompt, "checkout frustration") {
			return `{
				"theme_name": "Checkout friction",
				"summary": "Participants struggle at checkout.",
				"confidence": "high",
				"addressed_questions": [1],
				"supporting_quotes": [{"text": "checkout frustration 0", "speaker": "alice"}]
			}`, nil
		}
		return `{
			"theme_name": "Search satisfaction",
			"summary": "Search works well for participants.",
			"confidence": "medium",
			"supporting_quotes": [{"text": "search praise 0", "speaker": "bob"}]
		}`, nil
	}
	return gen
}

func newTestPipeline(t *testing.T, gen *mock.MockGenerator) *Pipeline {
	t.Helper()
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), gen, nil)
	p, err := NewPipeline(provider,
		WithPoolSize(2),
		WithRetryPolicy(1, time.Millisecond),
	)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func TestNewPipeline_RequiresProvider(t *testing.T) {
	_, err := NewPipeline(nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestNewPipeline_RejectsBadOptions(t *testing.T) {
	provider := mock.NewMockProvider()

	_, err := NewPipeline(provider, WithRetryPolicy(0, time.Second))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)

	_, err = NewPipeline(provider, WithQuestionThreshold(1.5))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestPipeline_Run_NoChunks(t *testing.T) {
	p := newTestPipeline(t, topicGenerator())

	_, err := p.Run(context.Background(), nil, nil, "")
	assert.ErrorIs(t, err, core.ErrDataInsufficiency)
}

func TestPipeline_Run_UnknownLens(t *testing.T) {
	p := newTestPipeline(t, topicGenerator())

	_, err := p.Run(context.Background(), twoTopicChunks(5), nil, "nonsense")
	assert.Error(t, err)
}

func TestPipeline_Run_EndToEnd(t *testing.T) {
	p := newTestPipeline(t, topicGenerator())

	questions := []core.ResearchQuestion{{
		Text:      "Why do users abandon checkout?",
		Embedding: []float32{1, 0, 0, 0, 0, 0},
	}}

	result, err := p.Run(context.Background(), twoTopicChunks(5), questions, "pain_points")
	require.NoError(t, err)
	require.NotNil(t, result.Run)

	run := result.Run
	assert.NotEmpty(t, run.Id)
	assert.Equal(t, "pain_points", run.Lens)
	assert.Equal(t, 10, run.ChunkCount)
	require.Len(t, run.Questions, 1)
	assert.Empty(t, result.SkippedChunkIds)
	assert.Empty(t, run.NoiseIds)
	assert.Empty(t, run.Unsynthesized)
	require.Len(t, run.Themes, 2)

	// The checkout cluster carries all the relevance, so it ranks first.
	first := run.Themes[0]
	assert.Equal(t, "Checkout friction", first.Label)
	assert.Equal(t, core.ConfidenceHigh, first.Confidence)
	require.Len(t, first.Quotes, 1)

	// The quote was found verbatim and attributed from the owning chunk.
	assert.Equal(t, "checkout frustration 0", first.Quotes[0].Text)
	assert.Equal(t, "alice", first.Quotes[0].Speaker)
	assert.Equal(t, "interview.txt", first.Quotes[0].SourceFile)
	assert.Equal(t, 1.0, first.Quotes[0].Confidence)

	// The question was offered to the checkout cluster and answered.
	questionId := core.IDFromContent(questions[0].Text)
	assert.Equal(t, []core.ID{questionId}, first.AddressedQuestionIds)
	assert.Empty(t, run.Themes[1].AddressedQuestionIds)

	require.Len(t, run.Coverage.PerQuestion, 1)
	qc := run.Coverage.PerQuestion[0]
	assert.Equal(t, questionId, qc.QuestionId)
	assert.Greater(t, qc.CoveragePct, 0.0)
	assert.Contains(t, qc.SupportingThemes, first.ClusterId)
}

func TestPipeline_Run_NoQuestions(t *testing.T) {
	p := newTestPipeline(t, topicGenerator())

	result, err := p.Run(context.Background(), twoTopicChunks(5), nil, "")
	require.NoError(t, err)

	assert.Len(t, result.Run.Themes, 2)
	assert.Empty(t, result.Run.Coverage.PerQuestion)
	assert.Zero(t, result.Run.Coverage.OverallPct)
}

func TestPipeline_Run_FailedClusterRecorded(t *testing.T) {
	gen := mock.NewMockGenerator()
	gen.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		if strings.Contains(prompt, "search praise") {
			return "", errors.New("backend unreachable")
		}
		return `{
			"theme_name": "Checkout friction",
			"summary": "Participants struggle at checkout.",
			"confidence": "high",
			"supporting_quotes": []
		}`, nil
	}
	p := newTestPipeline(t, gen)

	result, err := p.Run(context.Background(), twoTopicChunks(5), nil, "")
	require.NoError(t, err)

	// One cluster synthesized, the other recorded with its reason; the
	// failure never aborts the run.
	require.Len(t, result.Run.Themes, 1)
	assert.Equal(t, "Checkout friction", result.Run.Themes[0].Label)
	require.Len(t, result.Run.Unsynthesized, 1)
	assert.Contains(t, result.Run.Unsynthesized[0].Reason, "backend unreachable")
}

func TestPipeline_Run_CancelledContext(t *testing.T) {
	p := newTestPipeline(t, topicGenerator())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := p.Run(ctx, twoTopicChunks(5), nil, "")
	require.NoError(t, err)

	// Clustering is pure computation; synthesis observes the cancellation
	// and records every cluster as unsynthesized.
	assert.Empty(t, result.Run.Themes)
	require.Len(t, result.Run.Unsynthesized, 2)
	for _, u := range result.Run.Unsynthesized {
		assert.Contains(t, u.Reason, "context canceled")
	}
}

func TestBatchEmbedder_SkipsFailedBatches(t *testing.T) {
	pool, err := ants.NewPool(1)
	require.NoError(t, err)
	defer pool.Release()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if strings.Contains(texts[0], "bad") {
			return nil, errors.New("provider error")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{3, 4}
		}
		return out, nil
	}

	chunks := []core.Chunk{
		{Id: 1, Text: "good one"},
		{Id: 2, Text: "bad one"},
		{Id: 3, Text: "good two"},
	}

	be := newBatchEmbedder(embedder, pool, 1, 1, time.Millisecond, testLogger())
	skipped, err := be.embedChunks(context.Background(), chunks, nil)
	require.NoError(t, err)

	assert.Equal(t, []core.ID{2}, skipped)
	assert.Empty(t, chunks[1].Embedding)

	// Surviving embeddings are normalized to unit length.
	require.Len(t, chunks[0].Embedding, 2)
	assert.InDelta(t, 0.6, float64(chunks[0].Embedding[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(chunks[0].Embedding[1]), 1e-6)
}

func TestBatchEmbedder_AllBatchesFail(t *testing.T) {
	pool, err := ants.NewPool(1)
	require.NoError(t, err)
	defer pool.Release()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("provider down")
	}

	chunks := []core.Chunk{{Id: 1, Text: "a"}, {Id: 2, Text: "b"}}

	be := newBatchEmbedder(embedder, pool, 1, 1, time.Millisecond, testLogger())
	skipped, err := be.embedChunks(context.Background(), chunks, nil)

	assert.ErrorIs(t, err, core.ErrEmbeddingFailure)
	assert.Len(t, skipped, 2)
}

func TestBatchEmbedder_EmbedsQuestions(t *testing.T) {
	pool, err := ants.NewPool(1)
	require.NoError(t, err)
	defer pool.Release()

	be := newBatchEmbedder(mock.NewMockEmbedder(), pool, 4, 1, time.Millisecond, testLogger())

	questions := []core.ResearchQuestion{
		{Text: "why do users churn"},
		{Text: "already embedded", Id: 7, Embedding: []float32{1, 0}},
	}
	require.NoError(t, be.embedQuestions(context.Background(), questions))

	assert.Equal(t, core.IDFromContent("why do users churn"), questions[0].Id)
	assert.NotEmpty(t, questions[0].Embedding)

	// Pre-embedded questions are left untouched.
	assert.Equal(t, core.ID(7), questions[1].Id)
	assert.Equal(t, []float32{1, 0}, questions[1].Embedding)
}

func TestDropSkipped(t *testing.T) {
	chunks := []core.Chunk{{Id: 1}, {Id: 2}, {Id: 3}}
	kept := dropSkipped(chunks, []core.ID{2})

	require.Len(t, kept, 2)
	assert.Equal(t, core.ID(1), kept[0].Id)
	assert.Equal(t, core.ID(3), kept[1].Id)
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, 3, time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		err := RetryWithBackoff(context.Background(), func() error {
			return errors.New("permanent")
		}, 2, time.Millisecond)

		assert.EqualError(t, err, "permanent")
	})

	t.Run("rejects non-positive attempts", func(t *testing.T) {
		err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := RetryWithBackoff(ctx, func() error { return errors.New("never") }, 3, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
