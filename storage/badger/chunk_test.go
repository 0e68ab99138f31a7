package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/storage"
)

func testChunks() []core.Chunk {
	return []core.Chunk{
		{
			Id:         core.IDFromContent("the checkout flow confuses me"),
			Text:       "the checkout flow confuses me",
			Speaker:    "alice",
			SourceFile: "interview_01.txt",
			Embedding:  []float32{1.0, 0.0, 0.0},
			Metadata:   core.ChunkMetadata{ContentType: "response"},

			ResearchRelevance: 0.8,
		},
		{
			Id:         core.IDFromContent("search works great for me"),
			Text:       "search works great for me",
			Speaker:    "bob",
			SourceFile: "interview_02.txt",
			Embedding:  []float32{0.0, 1.0, 0.0},
		},
		{
			Id:         core.IDFromContent("no embedding yet"),
			Text:       "no embedding yet",
			Speaker:    "carol",
			SourceFile: "interview_03.txt",
		},
	}
}

func TestChunkRepository_PutGetRoundtrip(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	chunks := testChunks()

	require.NoError(t, chunkRepo.PutChunks(ctx, "run-1", chunks))

	got, err := chunkRepo.GetChunks(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Insertion order and full field fidelity survive the roundtrip. The
	// decoder hands back an empty rather than a nil slice for the chunk
	// stored without an embedding.
	for i := range chunks {
		if len(chunks[i].Embedding) == 0 {
			assert.Empty(t, got[i].Embedding)
			got[i].Embedding = nil
		}
	}
	assert.Equal(t, chunks, got)
}

func TestChunkRepository_PutReplacesPreviousSet(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	chunks := testChunks()

	require.NoError(t, chunkRepo.PutChunks(ctx, "run-1", chunks))
	require.NoError(t, chunkRepo.PutChunks(ctx, "run-1", chunks[:1]))

	got, err := chunkRepo.GetChunks(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestChunkRepository_GetChunks_NotFound(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	_, err = chunkRepo.GetChunks(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestChunkRepository_DeleteChunks(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	require.NoError(t, chunkRepo.PutChunks(ctx, "run-1", testChunks()))
	require.NoError(t, chunkRepo.DeleteChunks(ctx, "run-1"))

	_, err = chunkRepo.GetChunks(ctx, "run-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestChunkRepository_RunsAreIsolated(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	chunks := testChunks()
	require.NoError(t, chunkRepo.PutChunks(ctx, "run-1", chunks))
	require.NoError(t, chunkRepo.PutChunks(ctx, "run-2", chunks[:2]))

	first, err := chunkRepo.GetChunks(ctx, "run-1")
	require.NoError(t, err)
	second, err := chunkRepo.GetChunks(ctx, "run-2")
	require.NoError(t, err)

	assert.Len(t, first, 3)
	assert.Len(t, second, 2)
}

func TestChunkRepository_FindSimilar(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	require.NoError(t, chunkRepo.PutChunks(ctx, "run-1", testChunks()))

	query := []float32{1.0, 0.0, 0.0}

	t.Run("filters and sorts by similarity", func(t *testing.T) {
		results, err := chunkRepo.FindSimilar(ctx, "run-1", query, 0.5, 10)
		require.NoError(t, err)

		// Only the aligned chunk passes; the chunk without an embedding
		// is skipped entirely.
		require.Len(t, results, 1)
		assert.Equal(t, "the checkout flow confuses me", results[0].Chunk.Text)
		assert.InDelta(t, 1.0, float64(results[0].Similarity), 1e-6)
	})

	t.Run("respects limit", func(t *testing.T) {
		results, err := chunkRepo.FindSimilar(ctx, "run-1", query, -1.0, 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("other runs are invisible", func(t *testing.T) {
		results, err := chunkRepo.FindSimilar(ctx, "run-2", query, 0.0, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
