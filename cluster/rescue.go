package cluster

import (
	"math"

	"github.com/poiesic/insight/core"
)

// rescueNoise reassigns high-relevance noise points to the nearest cluster
// centroid in reduced space. A noise point qualifies when its relevance
// exceeds the configured threshold; it is adopted only if it sits within
// the target cluster's distance threshold. With a non-positive configured
// threshold, each cluster uses an adaptive bound: the mean plus one
// standard deviation of its members' distances to the centroid.
//
// Returns the number of rescued points. Labels are updated in place.
func rescueNoise(labels []int, reduced [][]float32, chunks []core.Chunk, cfg Config) int {
	clusterCount := 0
	for _, l := range labels {
		if l >= clusterCount {
			clusterCount = l + 1
		}
	}
	if clusterCount == 0 {
		return 0
	}

	dims := len(reduced[0])
	centroids := make([][]float64, clusterCount)
	sizes := make([]int, clusterCount)
	for i := range centroids {
		centroids[i] = make([]float64, dims)
	}
	for i, l := range labels {
		if l == noiseLabel {
			continue
		}
		for d := 0; d < dims; d++ {
			centroids[l][d] += float64(reduced[i][d])
		}
		sizes[l]++
	}
	for l := range centroids {
		for d := 0; d < dims; d++ {
			centroids[l][d] /= float64(sizes[l])
		}
	}

	thresholds := make([]float64, clusterCount)
	if cfg.RescueDistanceThreshold > 0 {
		for l := range thresholds {
			thresholds[l] = cfg.RescueDistanceThreshold
		}
	} else {
		// Adaptive: mean + stddev of member distances per cluster.
		sums := make([]float64, clusterCount)
		sqSums := make([]float64, clusterCount)
		for i, l := range labels {
			if l == noiseLabel {
				continue
			}
			d := distanceToCentroid(reduced[i], centroids[l])
			sums[l] += d
			sqSums[l] += d * d
		}
		for l := range thresholds {
			mean := sums[l] / float64(sizes[l])
			variance := sqSums[l]/float64(sizes[l]) - mean*mean
			if variance < 0 {
				variance = 0
			}
			thresholds[l] = mean + math.Sqrt(variance)
			if thresholds[l] < epsFloor {
				thresholds[l] = epsFloor
			}
		}
	}

	rescued := 0
	for i, l := range labels {
		if l != noiseLabel {
			continue
		}
		if chunks[i].ResearchRelevance <= cfg.RescueRelevanceThreshold {
			continue
		}

		best := -1
		bestDist := math.Inf(1)
		for c := range centroids {
			d := distanceToCentroid(reduced[i], centroids[c])
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		if best >= 0 && bestDist <= thresholds[best] {
			labels[i] = best
			rescued++
		}
	}
	return rescued
}

func distanceToCentroid(point []float32, centroid []float64) float64 {
	var sum float64
	for d := range centroid {
		diff := float64(point[d]) - centroid[d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
