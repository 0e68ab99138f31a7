package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/storage"
)

func testRun(id string, createdAt time.Time) *core.AnalysisRun {
	return &core.AnalysisRun{
		Id:         id,
		CreatedAt:  createdAt,
		Lens:       "pain_points",
		ChunkCount: 12,
		Themes: []core.Theme{
			{
				ClusterId:  0,
				Label:      "Checkout friction",
				Summary:    "Participants struggle at checkout.",
				Confidence: core.ConfidenceHigh,
			},
		},
		NoiseIds: []core.ID{core.ID(3)},
	}
}

func TestRunRepository_PutGetRoundtrip(t *testing.T) {
	_, runRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		runRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	run := testRun("run-1", now)

	require.NoError(t, runRepo.PutRun(ctx, run))

	got, err := runRepo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Id, got.Id)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, run.Lens, got.Lens)
	// The decoder hands back empty rather than nil slices for theme
	// fields the fixture left unset.
	require.Len(t, got.Themes, 1)
	assert.Empty(t, got.Themes[0].Quotes)
	assert.Empty(t, got.Themes[0].AddressedQuestionIds)
	got.Themes[0].Quotes = nil
	got.Themes[0].AddressedQuestionIds = nil
	assert.Equal(t, run.Themes, got.Themes)
	assert.Equal(t, run.NoiseIds, got.NoiseIds)
}

func TestRunRepository_GetRun_NotFound(t *testing.T) {
	_, runRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		runRepo.Close()
		backend.Close()
	}()

	_, err = runRepo.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunRepository_PutRun_Overwrites(t *testing.T) {
	_, runRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		runRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	run := testRun("run-1", now)
	require.NoError(t, runRepo.PutRun(ctx, run))

	updated := testRun("run-1", now.Add(time.Minute))
	updated.Lens = "opportunities"
	require.NoError(t, runRepo.PutRun(ctx, updated))

	got, err := runRepo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "opportunities", got.Lens)

	// The stale date index entry is gone: the run appears exactly once.
	runs, err := runRepo.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunRepository_ListRuns_MostRecentFirst(t *testing.T) {
	_, runRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		runRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, runRepo.PutRun(ctx, testRun("run-old", base.Add(-2*time.Hour))))
	require.NoError(t, runRepo.PutRun(ctx, testRun("run-new", base)))
	require.NoError(t, runRepo.PutRun(ctx, testRun("run-mid", base.Add(-time.Hour))))

	runs, err := runRepo.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, "run-new", runs[0].Id)
	assert.Equal(t, "run-mid", runs[1].Id)
	assert.Equal(t, "run-old", runs[2].Id)
}

func TestRunRepository_DeleteRun(t *testing.T) {
	_, runRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		runRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, runRepo.PutRun(ctx, testRun("run-1", now)))

	require.NoError(t, runRepo.DeleteRun(ctx, "run-1"))

	_, err = runRepo.GetRun(ctx, "run-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	runs, err := runRepo.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	assert.ErrorIs(t, runRepo.DeleteRun(ctx, "run-1"), storage.ErrNotFound)
}
