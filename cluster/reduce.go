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
	"math"
	"math/rand"
	"sort"

	"github.com/poiesic/insight/core"
)

const (
	smoothingIterations = 10
	smoothingAlpha      = 0.5
	smoothingDecay      = 0.8
)

// reduceDimensions maps hybrid vectors into a low-dimensional space while
// preserving local neighborhoods. It applies a seeded Gaussian random
// projection to min(TargetDims, n-2) dimensions, then pulls each point
// toward its nearest neighbors in the original space over a fixed number of
// decaying iterations. Neighbor attraction is weighted by cubed cosine
// similarity, so points from unrelated regions barely move toward each
// other even when the neighborhood size exceeds the true group size.
//
// The whole procedure is deterministic for a fixed seed.
func reduceDimensions(vectors [][]float32, cfg Config) [][]float32 {
	n := len(vectors)
	if n == 0 {
		return nil
	}

	target := cfg.TargetDims
	if limit := n - 2; limit < target {
		target = limit
	}
	if target < 1 {
		// Too few points to reduce meaningfully.
		return vectors
	}

	dim := len(vectors[0])
	rng := rand.New(rand.NewSource(cfg.Seed))

	// Gaussian projection matrix, scaled to roughly preserve distances.
	scale := 1.0 / math.Sqrt(float64(target))
	projection := make([][]float64, dim)
	for i := range projection {
		row := make([]float64, target)
		for j := range row {
			row[j] = rng.NormFloat64() * scale
		}
		projection[i] = row
	}

	positions := make([][]float64, n)
	for i, v := range vectors {
		p := make([]float64, target)
		for d, x := range v {
			for j := 0; j < target; j++ {
				p[j] += float64(x) * projection[d][j]
			}
		}
		positions[i] = p
	}

	neighbors, weights := nearestNeighbors(vectors, cfg)

	// Iterative neighbor attraction with decaying step size. Attraction
	// stops once a pair is packed tighter than half MinDist, so the
	// embedding does not collapse to a point while every attracted member
	// still ends up well inside the MinDist radius of its neighborhood.
	alpha := smoothingAlpha
	packed := cfg.MinDist / 2
	for iter := 0; iter < smoothingIterations; iter++ {
		next := make([][]float64, n)
		for i := range positions {
			pull := make([]float64, target)
			var totalWeight float64
			for k, j := range neighbors[i] {
				w := weights[i][k]
				if w <= 0 {
					continue
				}
				if euclidean64(positions[i], positions[j]) < packed {
					continue
				}
				for d := 0; d < target; d++ {
					pull[d] += w * positions[j][d]
				}
				totalWeight += w
			}

			p := make([]float64, target)
			if totalWeight > 0 {
				for d := 0; d < target; d++ {
					p[d] = (1-alpha)*positions[i][d] + alpha*pull[d]/totalWeight
				}
			} else {
				copy(p, positions[i])
			}
			next[i] = p
		}
		positions = next
		alpha *= smoothingDecay
	}

	reduced := make([][]float32, n)
	for i, p := range positions {
		v := make([]float32, target)
		for d, x := range p {
			v[d] = float32(x)
		}
		reduced[i] = v
	}
	return reduced
}

// nearestNeighbors finds the min(NeighborCount, n-1) nearest neighbors of
// each vector by cosine similarity and returns their indices together with
// cubed-similarity attraction weights.
func nearestNeighbors(vectors [][]float32, cfg Config) ([][]int, [][]float64) {
	n := len(vectors)
	k := cfg.NeighborCount
	if k > n-1 {
		k = n - 1
	}

	type scored struct {
		index int
		sim   float64
	}

	neighbors := make([][]int, n)
	weights := make([][]float64, n)
	for i := range vectors {
		candidates := make([]scored, 0, n-1)
		for j := range vectors {
			if j == i {
				continue
			}
			candidates = append(candidates, scored{index: j, sim: core.Cosine(vectors[i], vectors[j])})
		}
		sort.Slice(candidates, func(a, b int) bool {
			if candidates[a].sim == candidates[b].sim {
				return candidates[a].index < candidates[b].index
			}
			return candidates[a].sim > candidates[b].sim
		})

		neighbors[i] = make([]int, 0, k)
		weights[i] = make([]float64, 0, k)
		for _, c := range candidates[:k] {
			w := c.sim
			if w < 0 {
				w = 0
			}
			neighbors[i] = append(neighbors[i], c.index)
			weights[i] = append(weights[i], w*w*w)
		}
	}
	return neighbors, weights
}

func euclidean64(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
