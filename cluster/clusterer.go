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


package cluster

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/insight/core"
)

// Clusterer groups chunks by combined semantic and relevance similarity.
// It is stateless between calls and safe for reuse.
type Clusterer struct {
	config Config
	logger *slog.Logger
}

// Result is the outcome of one clustering pass.
type Result struct {
	// Clusters ordered by aggregate relevance, highest first.
	Clusters []core.Cluster

	// NoiseIds holds chunks assigned to no cluster, in input order.
	NoiseIds []core.ID

	// Relaxed reports that the first pass produced only noise and the
	// minimum cluster size was halved for a second attempt.
	Relaxed bool

	// Exhausted reports that even the relaxed pass produced only noise.
	// The result is empty but valid; this is a diagnostic, not an error.
	Exhausted bool

	// RescuedCount is the number of noise chunks reassigned by the rescue
	// pass across all attempts.
	RescuedCount int
}

// NewClusterer validates the configuration and returns a clusterer.
func NewClusterer(config Config) (*Clusterer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Clusterer{
		config: config,
		logger: slog.Default().With("component", "clusterer"),
	}, nil
}

// Cluster runs the full pass: hybrid vectors, reduction, density
// clustering, rescue. Inputs smaller than MinClusterSize are rejected with
// ErrDataInsufficiency. An all-noise outcome triggers one retry with a
// halved minimum cluster size (floor 2); if that also yields nothing the
// result is empty with Exhausted set, never an error.
func (c *Clusterer) Cluster(chunks []core.Chunk) (*Result, error) {
	if len(chunks) < c.config.MinClusterSize {
		return nil, fmt.Errorf("%w: %d chunks, need at least %d",
			core.ErrDataInsufficiency, len(chunks), c.config.MinClusterSize)
	}

	hybrid := buildHybridVectors(chunks, c.config)
	reduced := reduceDimensions(hybrid, c.config)

	result := &Result{}

	labels, rescued := c.attempt(reduced, chunks, c.config.MinClusterSize)
	result.RescuedCount += rescued

	if allNoise(labels) {
		relaxed := c.config.MinClusterSize / 2
		if relaxed < 2 {
			relaxed = 2
		}
		c.logger.Info("all chunks classified noise, relaxing minimum cluster size",
			"from", c.config.MinClusterSize, "to", relaxed)
		result.Relaxed = true

		labels, rescued = c.attempt(reduced, chunks, relaxed)
		result.RescuedCount += rescued

		if allNoise(labels) {
			c.logger.Warn("clustering exhausted, reporting empty result",
				"chunks", len(chunks))
			result.Exhausted = true
			result.NoiseIds = chunkIDs(chunks)
			return result, nil
		}
	}

	result.Clusters, result.NoiseIds = assemble(labels, chunks)
	c.logger.Debug("clustering complete",
		"clusters", len(result.Clusters),
		"noise", len(result.NoiseIds),
		"rescued", result.RescuedCount)
	return result, nil
}

func (c *Clusterer) attempt(reduced [][]float32, chunks []core.Chunk, minClusterSize int) ([]int, int) {
	labels := densityCluster(reduced, c.config, minClusterSize)
	rescued := 0
	if !allNoise(labels) {
		rescued = rescueNoise(labels, reduced, chunks, c.config)
	}
	return labels, rescued
}

func allNoise(labels []int) bool {
	for _, l := range labels {
		if l != noiseLabel {
			return false
		}
	}
	return true
}

func chunkIDs(chunks []core.Chunk) []core.ID {
	ids := make([]core.ID, len(chunks))
	for i := range chunks {
		ids[i] = chunks[i].Id
	}
	return ids
}

// assemble turns labels into Cluster records. Member lists follow input
// order; the centroid is the mean of member semantic embeddings; aggregate
// relevance is the member mean. Clusters are ordered by aggregate relevance
// descending, ties broken by original label for stability.
func assemble(labels []int, chunks []core.Chunk) ([]core.Cluster, []core.ID) {
	clusterCount := 0
	for _, l := range labels {
		if l >= clusterCount {
			clusterCount = l + 1
		}
	}

	clusters := make([]core.Cluster, clusterCount)
	var noise []core.ID

	for i, l := range labels {
		if l == noiseLabel {
			noise = append(noise, chunks[i].Id)
			continue
		}

		cl := &clusters[l]
		cl.MemberIds = append(cl.MemberIds, chunks[i].Id)
		cl.Size++
		cl.AggregateRelevance += chunks[i].ResearchRelevance

		if cl.SpeakerDistribution == nil {
			cl.SpeakerDistribution = make(map[string]int)
		}
		if chunks[i].Speaker != "" {
			cl.SpeakerDistribution[chunks[i].Speaker]++
		}

		if cl.Centroid == nil {
			cl.Centroid = make([]float32, len(chunks[i].Embedding))
		}
		for d := range chunks[i].Embedding {
			cl.Centroid[d] += chunks[i].Embedding[d]
		}
	}

	for l := range clusters {
		cl := &clusters[l]
		cl.AggregateRelevance /= float64(cl.Size)
		for d := range cl.Centroid {
			cl.Centroid[d] /= float32(cl.Size)
		}
	}

	order := make([]int, clusterCount)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if clusters[order[a]].AggregateRelevance == clusters[order[b]].AggregateRelevance {
			return order[a] < order[b]
		}
		return clusters[order[a]].AggregateRelevance > clusters[order[b]].AggregateRelevance
	})

	ordered := make([]core.Cluster, clusterCount)
	for rank, l := range order {
		ordered[rank] = clusters[l]
		ordered[rank].Id = rank
	}
	return ordered, noise
}
