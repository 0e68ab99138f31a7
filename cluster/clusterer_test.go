package cluster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insight/core"
)

// makeChunk builds a chunk with a deterministic content ID.
func makeChunk(text, speaker string, embedding []float32, relevance float64) core.Chunk {
	return core.Chunk{
		Id:                core.IDFromContent(text),
		Text:              text,
		Speaker:           speaker,
		SourceFile:        "interview.txt",
		Embedding:         embedding,
		ResearchRelevance: relevance,
	}
}

// twoGroups returns 2*size chunks forming two well-separated semantic
// groups with tiny deterministic perturbations.
func twoGroups(size int) []core.Chunk {
	chunks := make([]core.Chunk, 0, 2*size)
	for i := 0; i < size; i++ {
		p := float32(i) * 0.01
		chunks = append(chunks, makeChunk(
			fmt.Sprintf("group a %d", i), "alice",
			[]float32{1, p, 0, p, 0, 0}, 0))
	}
	for i := 0; i < size; i++ {
		p := float32(i) * 0.01
		chunks = append(chunks, makeChunk(
			fmt.Sprintf("group b %d", i), "bob",
			[]float32{0, p, 1, 0, p, 0}, 0))
	}
	return chunks
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("weights must sum to one", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SemanticWeight = 0.7
		cfg.RelevanceWeight = 0.5
		assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidConfig)
	})

	t.Run("negative weight", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SemanticWeight = 1.2
		cfg.RelevanceWeight = -0.2
		assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidConfig)
	})

	t.Run("min cluster size too small", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinClusterSize = 1
		assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidConfig)
	})
}

func TestClusterer_InsufficientData(t *testing.T) {
	c, err := NewClusterer(DefaultConfig())
	require.NoError(t, err)

	t.Run("zero chunks", func(t *testing.T) {
		_, err := c.Cluster(nil)
		assert.ErrorIs(t, err, core.ErrDataInsufficiency)
	})

	t.Run("below minimum cluster size", func(t *testing.T) {
		chunks := twoGroups(1) // 2 chunks, default minimum is 3
		_, err := c.Cluster(chunks)
		assert.ErrorIs(t, err, core.ErrDataInsufficiency)
	})
}

func TestClusterer_TwoSeparatedGroups(t *testing.T) {
	c, err := NewClusterer(DefaultConfig())
	require.NoError(t, err)

	chunks := twoGroups(5)
	result, err := c.Cluster(chunks)
	require.NoError(t, err)

	assert.Len(t, result.Clusters, 2)
	assert.Empty(t, result.NoiseIds)
	assert.False(t, result.Relaxed)
	assert.False(t, result.Exhausted)

	// Each cluster holds one full group, never a mix.
	for _, cl := range result.Clusters {
		assert.Equal(t, 5, cl.Size)
		assert.Len(t, cl.MemberIds, 5)
		assert.Len(t, cl.SpeakerDistribution, 1)
	}
}

func TestClusterer_Deterministic(t *testing.T) {
	c, err := NewClusterer(DefaultConfig())
	require.NoError(t, err)

	chunks := twoGroups(5)

	first, err := c.Cluster(chunks)
	require.NoError(t, err)
	second, err := c.Cluster(chunks)
	require.NoError(t, err)

	require.Equal(t, len(first.Clusters), len(second.Clusters))
	for i := range first.Clusters {
		assert.Equal(t, first.Clusters[i].MemberIds, second.Clusters[i].MemberIds)
		assert.Equal(t, first.Clusters[i].Centroid, second.Clusters[i].Centroid)
	}
	assert.Equal(t, first.NoiseIds, second.NoiseIds)
}

func TestClusterer_ClusterMetadata(t *testing.T) {
	c, err := NewClusterer(DefaultConfig())
	require.NoError(t, err)

	chunks := twoGroups(5)
	// Give group b higher relevance so it sorts first.
	for i := 5; i < 10; i++ {
		chunks[i].ResearchRelevance = 0.9
	}

	result, err := c.Cluster(chunks)
	require.NoError(t, err)
	require.Len(t, result.Clusters, 2)

	// Ordered by aggregate relevance descending.
	assert.Greater(t, result.Clusters[0].AggregateRelevance, result.Clusters[1].AggregateRelevance)
	assert.InDelta(t, 0.9, result.Clusters[0].AggregateRelevance, 1e-6)
	assert.Equal(t, 0, result.Clusters[0].Id)
	assert.Equal(t, 1, result.Clusters[1].Id)
	assert.Equal(t, map[string]int{"bob": 5}, result.Clusters[0].SpeakerDistribution)

	// Centroid is the mean of member embeddings: group b embeddings have
	// 1.0 in the third dimension.
	assert.InDelta(t, 1.0, float64(result.Clusters[0].Centroid[2]), 1e-6)
	assert.InDelta(t, 0.0, float64(result.Clusters[0].Centroid[0]), 1e-6)
}

func TestDensityCluster_AbsorbsStragglerWithinPackingScale(t *testing.T) {
	cfg := DefaultConfig()

	// Neighbor attraction leaves tight groups near-coincident with the
	// last member parked just inside MinDist. The straggler must land in
	// its group's cluster rather than noise.
	points := [][]float32{
		{0, 0}, {0.001, 0}, {0, 0.001}, {0.001, 0.001}, {0.095, 0},
		{5, 5}, {5.001, 5}, {5, 5.001}, {5.001, 5.001}, {5.095, 5},
	}
	labels := densityCluster(points, cfg, cfg.MinClusterSize)

	assert.NotContains(t, labels, noiseLabel)
	assert.Equal(t, labels[0], labels[4])
	assert.Equal(t, labels[5], labels[9])
	assert.NotEqual(t, labels[0], labels[5])
}

func TestEstimateEps_FloorsAtMinDist(t *testing.T) {
	// A collapsed majority must not drag the radius below the packing
	// scale of the reduced embedding.
	dist := [][]float64{
		{0, 0.001, 0.001},
		{0.001, 0, 0.001},
		{0.001, 0.001, 0},
	}
	assert.Equal(t, 0.1, estimateEps(dist, 2, 0.1))
}

func TestDensityCluster_DissolvesSmallClusters(t *testing.T) {
	labels := []int{0, 0, 0, 1, 1, noiseLabel}
	dissolveSmallClusters(labels, 3)

	assert.Equal(t, []int{0, 0, 0, noiseLabel, noiseLabel, noiseLabel}, labels)
}

func TestRescueNoise(t *testing.T) {
	// Cluster 0 around (0,0), one far point at (10,10), two noise points
	// near the cluster.
	reduced := [][]float32{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{0.2, 0.2}, // noise, high relevance: rescued
		{0.2, 0.1}, // noise, low relevance: stays noise
		{10, 10},   // noise, high relevance but too far
	}
	chunks := []core.Chunk{
		{ResearchRelevance: 0.5}, {ResearchRelevance: 0.5}, {ResearchRelevance: 0.5},
		{ResearchRelevance: 0.9},
		{ResearchRelevance: 0.1},
		{ResearchRelevance: 0.9},
	}
	labels := []int{0, 0, 0, noiseLabel, noiseLabel, noiseLabel}

	cfg := DefaultConfig()
	cfg.RescueDistanceThreshold = 0.5

	rescued := rescueNoise(labels, reduced, chunks, cfg)

	assert.Equal(t, 1, rescued)
	assert.Equal(t, []int{0, 0, 0, 0, noiseLabel, noiseLabel}, labels)
}

func TestRescueNoise_AdaptiveThreshold(t *testing.T) {
	reduced := [][]float32{
		{0, 0}, {0.2, 0}, {0, 0.2},
		{0.1, 0.1}, // close to centroid, within mean+stddev
		{5, 5},     // far outside
	}
	chunks := []core.Chunk{
		{ResearchRelevance: 0}, {ResearchRelevance: 0}, {ResearchRelevance: 0},
		{ResearchRelevance: 0.9},
		{ResearchRelevance: 0.9},
	}
	labels := []int{0, 0, 0, noiseLabel, noiseLabel}

	cfg := DefaultConfig()
	cfg.RescueDistanceThreshold = 0 // adaptive

	rescued := rescueNoise(labels, reduced, chunks, cfg)

	assert.Equal(t, 1, rescued)
	assert.Equal(t, 0, labels[3])
	assert.Equal(t, noiseLabel, labels[4])
}

func TestBuildHybridVectors(t *testing.T) {
	cfg := DefaultConfig()
	chunks := []core.Chunk{
		makeChunk("a", "s", []float32{3, 4}, 0.5),
	}

	vectors := buildHybridVectors(chunks, cfg)
	require.Len(t, vectors, 1)
	require.Len(t, vectors[0], 2+cfg.RelevanceDims)

	// Semantic block: 0.7 * normalized(3,4) = 0.7 * (0.6, 0.8).
	assert.InDelta(t, 0.42, float64(vectors[0][0]), 1e-6)
	assert.InDelta(t, 0.56, float64(vectors[0][1]), 1e-6)

	// Relevance block magnitude: 0.3 * 0.5.
	var mag float64
	for _, x := range vectors[0][2:] {
		mag += float64(x) * float64(x)
	}
	assert.InDelta(t, 0.15*0.15, mag, 1e-9)
}

func TestReduceDimensions_SkipsTinyInputs(t *testing.T) {
	cfg := DefaultConfig()
	vectors := [][]float32{{1, 0}, {0, 1}}

	// n-2 = 0, reduction must pass vectors through untouched.
	reduced := reduceDimensions(vectors, cfg)
	assert.Equal(t, vectors, reduced)
}
