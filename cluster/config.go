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
	"math"

	"github.com/poiesic/insight/core"
)

// Config holds the clustering parameters. Weights must sum to 1.
type Config struct {
	// NeighborCount is the neighborhood size used during dimensionality
	// reduction. Capped at n-1 for small inputs.
	NeighborCount int

	// MinDist is the packing scale of the reduced embedding. Neighbor
	// pairs packed tighter than half this distance stop attracting each
	// other, and the density clustering radius never drops below it.
	MinDist float64

	// TargetDims is the reduced dimensionality. Capped at n-2 for small
	// inputs; when the cap drops below 1, reduction is skipped entirely.
	TargetDims int

	// MinClusterSize is the smallest group that survives as a cluster.
	// Inputs with fewer chunks than this are rejected outright.
	MinClusterSize int

	// MinSamples is the density threshold: a point is a core point when at
	// least MinSamples points (itself included) fall within eps.
	MinSamples int

	// SemanticWeight scales the normalized embedding block of the hybrid
	// vector. SemanticWeight + RelevanceWeight must equal 1.
	SemanticWeight float64

	// RelevanceWeight scales the relevance block of the hybrid vector.
	RelevanceWeight float64

	// RelevanceDims is the width of the relevance block. The block's
	// magnitude is RelevanceWeight * relevance regardless of width.
	RelevanceDims int

	// RescueRelevanceThreshold gates the rescue pass: only noise chunks
	// whose relevance exceeds it are candidates for reassignment.
	RescueRelevanceThreshold float64

	// RescueDistanceThreshold bounds how far a rescued chunk may sit from
	// its adoptive centroid. Zero or negative selects an adaptive
	// per-cluster threshold (mean + stddev of member distances).
	RescueDistanceThreshold float64

	// Seed drives every random choice in the reduction, making cluster
	// assignment reproducible for identical input.
	Seed int64
}

// DefaultConfig returns the standard clustering parameters.
func DefaultConfig() Config {
	return Config{
		NeighborCount:            15,
		MinDist:                  0.1,
		TargetDims:               5,
		MinClusterSize:           3,
		MinSamples:               2,
		SemanticWeight:           0.7,
		RelevanceWeight:          0.3,
		RelevanceDims:            8,
		RescueRelevanceThreshold: 0.6,
		RescueDistanceThreshold:  0,
		Seed:                     42,
	}
}

const weightTolerance = 1e-6

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.NeighborCount < 1 {
		return fmt.Errorf("%w: NeighborCount must be at least 1", core.ErrInvalidConfig)
	}
	if c.MinDist < 0 {
		return fmt.Errorf("%w: MinDist must be non-negative", core.ErrInvalidConfig)
	}
	if c.TargetDims < 1 {
		return fmt.Errorf("%w: TargetDims must be at least 1", core.ErrInvalidConfig)
	}
	if c.MinClusterSize < 2 {
		return fmt.Errorf("%w: MinClusterSize must be at least 2", core.ErrInvalidConfig)
	}
	if c.MinSamples < 1 {
		return fmt.Errorf("%w: MinSamples must be at least 1", core.ErrInvalidConfig)
	}
	if c.SemanticWeight < 0 || c.RelevanceWeight < 0 {
		return fmt.Errorf("%w: weights must be non-negative", core.ErrInvalidConfig)
	}
	if math.Abs(c.SemanticWeight+c.RelevanceWeight-1.0) > weightTolerance {
		return fmt.Errorf("%w: SemanticWeight + RelevanceWeight must sum to 1, got %v",
			core.ErrInvalidConfig, c.SemanticWeight+c.RelevanceWeight)
	}
	if c.RelevanceDims < 1 {
		return fmt.Errorf("%w: RelevanceDims must be at least 1", core.ErrInvalidConfig)
	}
	return nil
}
