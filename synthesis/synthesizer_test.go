package synthesis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insight/ai/mock"
	"github.com/poiesic/insight/core"
)

const validResponse = `{
	"theme_name": "Export friction",
	"summary": "Users struggle to get data out.",
	"confidence": "high",
	"addressed_questions": [1],
	"supporting_quotes": [
		{"text": "I gave up on the export", "speaker": "dana"}
	]
}`

func testRequest() Request {
	lens, _ := LensByName("pain_points")
	return Request{
		Cluster: core.Cluster{Id: 7},
		Chunks: []core.Chunk{
			{Id: 1, Text: "I gave up on the export.", Speaker: "dana"},
			{Id: 2, Text: "The export button hides in settings.", Speaker: "eli"},
		},
		Lens: lens,
		Questions: []core.ResearchQuestion{
			{Id: 101, Text: "Why do users abandon exports?"},
		},
	}
}

func TestLensByName(t *testing.T) {
	t.Run("known lens", func(t *testing.T) {
		lens, err := LensByName("jobs_to_be_done")
		require.NoError(t, err)
		assert.Equal(t, "user_context", lens.ExtraField)
	})

	t.Run("unknown lens", func(t *testing.T) {
		_, err := LensByName("vibes")
		assert.ErrorIs(t, err, ErrUnknownLens)
	})

	t.Run("default lens exists", func(t *testing.T) {
		_, err := LensByName(DefaultLensName)
		assert.NoError(t, err)
	})

	t.Run("table is complete", func(t *testing.T) {
		assert.Len(t, Lenses(), 6)
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		payload, err := parseResponse(validResponse)
		require.NoError(t, err)
		assert.Equal(t, "Export friction", payload.ThemeName)
		require.Len(t, payload.SupportingQuotes, 1)
		assert.Equal(t, "dana", payload.SupportingQuotes[0].Speaker)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		payload, err := parseResponse("```json\n" + validResponse + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Export friction", payload.ThemeName)
	})

	t.Run("repairable key quoting", func(t *testing.T) {
		payload, err := parseResponse(`{theme_name": "T", "summary": "S"}`)
		require.NoError(t, err)
		assert.Equal(t, "T", payload.ThemeName)
	})

	t.Run("missing theme name", func(t *testing.T) {
		_, err := parseResponse(`{"summary": "S"}`)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("not JSON at all", func(t *testing.T) {
		_, err := parseResponse("here are your themes!")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestSynthesize_PrimarySuccess(t *testing.T) {
	primary := mock.NewMockGenerator()
	primary.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		return validResponse, nil
	}

	s := New(primary, nil)
	candidate, trace, err := s.Synthesize(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 7, candidate.ClusterId)
	assert.Equal(t, "Export friction", candidate.Label)
	assert.Equal(t, core.ConfidenceHigh, candidate.Confidence)
	assert.Equal(t, []core.ID{101}, candidate.AddressedQuestionIds)
	require.Len(t, candidate.CandidateFragments, 1)
	assert.Equal(t, "I gave up on the export", candidate.CandidateFragments[0].Text)

	assert.Equal(t, StateSucceeded, trace.Final())
	assert.Equal(t, []CallState{StatePending, StateCallingPrimary, StateSucceeded}, trace.States)
}

func TestSynthesize_FallbackOnPrimaryError(t *testing.T) {
	primary := mock.NewMockGenerator()
	primary.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.New("connection refused")
	}
	fallback := mock.NewMockGenerator()
	fallback.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		return validResponse, nil
	}

	s := New(primary, fallback)
	candidate, trace, err := s.Synthesize(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "Export friction", candidate.Label)
	assert.Equal(t, 1, primary.CallCount())
	assert.Equal(t, 1, fallback.CallCount())
	assert.Equal(t, []CallState{
		StatePending, StateCallingPrimary, StateCallingFallback, StateSucceeded,
	}, trace.States)
}

func TestSynthesize_MalformedOutputRetries(t *testing.T) {
	primary := mock.NewMockGenerator()
	primary.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		return "not json", nil
	}
	fallback := mock.NewMockGenerator()
	fallback.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		return validResponse, nil
	}

	s := New(primary, fallback, WithMaxAttempts(3))
	candidate, _, err := s.Synthesize(context.Background(), testRequest())
	require.NoError(t, err)

	// Malformed output burns the whole per-backend budget before fallback.
	assert.Equal(t, 3, primary.CallCount())
	assert.Equal(t, 1, fallback.CallCount())
	assert.Equal(t, "Export friction", candidate.Label)
}

func TestSynthesize_TerminalFailure(t *testing.T) {
	failing := func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.New("unreachable")
	}
	primary := mock.NewMockGenerator()
	primary.GenerateJSONFunc = failing
	primary.NameValue = "primary"
	fallback := mock.NewMockGenerator()
	fallback.GenerateJSONFunc = failing
	fallback.NameValue = "fallback"

	s := New(primary, fallback)
	candidate, trace, err := s.Synthesize(context.Background(), testRequest())

	assert.Nil(t, candidate)
	assert.ErrorIs(t, err, core.ErrSynthesisFailure)
	assert.Equal(t, StateFailed, trace.Final())
	assert.Contains(t, trace.FailureReason, "primary")
	assert.Contains(t, trace.FailureReason, "fallback")
}

func TestSynthesize_NoFallbackConfigured(t *testing.T) {
	primary := mock.NewMockGenerator()
	primary.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.New("unreachable")
	}

	s := New(primary, nil)
	_, trace, err := s.Synthesize(context.Background(), testRequest())

	assert.ErrorIs(t, err, core.ErrSynthesisFailure)
	assert.Contains(t, trace.FailureReason, "no fallback configured")
}

func TestSynthesize_EmptyCluster(t *testing.T) {
	s := New(mock.NewMockGenerator(), nil)
	req := testRequest()
	req.Chunks = nil

	_, trace, err := s.Synthesize(context.Background(), req)
	assert.ErrorIs(t, err, core.ErrSynthesisFailure)
	assert.Equal(t, StateFailed, trace.Final())
}

func TestSynthesize_OutOfRangeQuestionNumbers(t *testing.T) {
	primary := mock.NewMockGenerator()
	primary.GenerateJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		return `{"theme_name": "T", "summary": "S", "addressed_questions": [0, 1, 9]}`, nil
	}

	s := New(primary, nil)
	candidate, _, err := s.Synthesize(context.Background(), testRequest())
	require.NoError(t, err)

	// Only the valid 1-based reference survives.
	assert.Equal(t, []core.ID{101}, candidate.AddressedQuestionIds)
}

func TestBuildPrompt(t *testing.T) {
	req := testRequest()
	prompt := buildPrompt(req.Chunks, req.Lens, req.Questions)

	assert.Contains(t, prompt, "frustrations")
	assert.Contains(t, prompt, "[dana]: I gave up on the export.")
	assert.Contains(t, prompt, "SPEAKER DISTRIBUTION")
	assert.Contains(t, prompt, "1. Why do users abandon exports?")
	assert.Contains(t, prompt, `"severity"`)
	assert.Contains(t, prompt, "verbatim")
}
