package cluster

import (
	"math"
	"sort"

	"github.com/poiesic/insight/core"
)

// noiseLabel marks points not assigned to any cluster.
const noiseLabel = -1

// epsFloor keeps eps positive when reduced points nearly coincide.
const epsFloor = 1e-6

// densityCluster assigns a cluster label to each reduced point, or
// noiseLabel for points in no dense region. The eps radius is derived from
// the data: the 75th percentile of each point's distance to its
// MinSamples-th nearest neighbor. Clusters smaller than minClusterSize are
// dissolved back to noise. Labels are renumbered 0..k-1 in order of first
// appearance, which is deterministic because expansion scans points in
// input order.
func densityCluster(reduced [][]float32, cfg Config, minClusterSize int) []int {
	n := len(reduced)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = noiseLabel
	}
	if n == 0 {
		return labels
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = core.EuclideanDistance(reduced[i], reduced[j])
		}
	}

	eps := estimateEps(dist, cfg.MinSamples, cfg.MinDist)

	// Neighborhoods include the point itself.
	neighborhoods := make([][]int, n)
	for i := range dist {
		for j := range dist[i] {
			if dist[i][j] <= eps {
				neighborhoods[i] = append(neighborhoods[i], j)
			}
		}
	}

	visited := make([]bool, n)
	nextLabel := 0
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		if len(neighborhoods[i]) < cfg.MinSamples {
			continue
		}

		// Expand a new cluster from this core point.
		labels[i] = nextLabel
		queue := append([]int(nil), neighborhoods[i]...)
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]

			if labels[p] == noiseLabel {
				labels[p] = nextLabel
			}
			if visited[p] {
				continue
			}
			visited[p] = true
			labels[p] = nextLabel

			if len(neighborhoods[p]) >= cfg.MinSamples {
				queue = append(queue, neighborhoods[p]...)
			}
		}
		nextLabel++
	}

	dissolveSmallClusters(labels, minClusterSize)
	return labels
}

// estimateEps picks the clustering radius from the distribution of
// MinSamples-th nearest neighbor distances. The radius never drops below
// minDist: dimensionality reduction stops attracting points once they are
// packed at that scale, so a cluster member can legitimately sit up to
// minDist from its mates even when the rest of the cluster has collapsed
// to near-coincident positions.
func estimateEps(dist [][]float64, minSamples int, minDist float64) float64 {
	n := len(dist)
	kth := make([]float64, 0, n)
	for i := range dist {
		others := make([]float64, 0, n-1)
		for j := range dist[i] {
			if j != i {
				others = append(others, dist[i][j])
			}
		}
		sort.Float64s(others)
		idx := minSamples - 1
		if idx >= len(others) {
			idx = len(others) - 1
		}
		if idx >= 0 {
			kth = append(kth, others[idx])
		}
	}
	floor := minDist
	if floor < epsFloor {
		floor = epsFloor
	}
	if len(kth) == 0 {
		return floor
	}

	sort.Float64s(kth)
	eps := percentile(kth, 0.75)
	if eps < floor {
		eps = floor
	}
	return eps
}

// percentile returns the p-quantile of sorted values by linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// dissolveSmallClusters reverts members of undersized clusters to noise and
// renumbers the survivors densely in order of first appearance.
func dissolveSmallClusters(labels []int, minClusterSize int) {
	sizes := make(map[int]int)
	for _, l := range labels {
		if l != noiseLabel {
			sizes[l]++
		}
	}

	remap := make(map[int]int)
	next := 0
	for i, l := range labels {
		if l == noiseLabel {
			continue
		}
		if sizes[l] < minClusterSize {
			labels[i] = noiseLabel
			continue
		}
		if _, ok := remap[l]; !ok {
			remap[l] = next
			next++
		}
		labels[i] = remap[l]
	}
}
