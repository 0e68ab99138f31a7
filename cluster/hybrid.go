package cluster

import (
	"math"

	"github.com/poiesic/insight/core"
)

// buildHybridVectors combines each chunk's normalized embedding with its
// relevance score into one vector for clustering. The embedding block is
// scaled by SemanticWeight; the relevance block has RelevanceDims identical
// components chosen so its magnitude equals RelevanceWeight * relevance.
// With no research questions every relevance is zero and the block is inert.
func buildHybridVectors(chunks []core.Chunk, cfg Config) [][]float32 {
	vectors := make([][]float32, len(chunks))

	// Each relevance component carries magnitude / sqrt(dims) so the block's
	// L2 norm is the intended magnitude.
	perDim := 1.0 / math.Sqrt(float64(cfg.RelevanceDims))

	for i := range chunks {
		semantic := core.NormalizeVector(chunks[i].Embedding)
		v := make([]float32, len(semantic)+cfg.RelevanceDims)
		for j, x := range semantic {
			v[j] = float32(cfg.SemanticWeight) * x
		}
		component := float32(cfg.RelevanceWeight * chunks[i].ResearchRelevance * perDim)
		for j := 0; j < cfg.RelevanceDims; j++ {
			v[len(semantic)+j] = component
		}
		vectors[i] = v
	}
	return vectors
}
