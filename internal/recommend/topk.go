// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"slices"

	"github.com/tomtom215/reelmatch/internal/cache"
)

// candidate is a scored catalog index.
type candidate struct {
	index int
	score float32
}

// compareCandidates orders by score descending with NaN last, then by index
// ascending. It is a total order, so sorting with it is deterministic.
func compareCandidates(a, b candidate) int {
	aNaN := math.IsNaN(float64(a.score))
	bNaN := math.IsNaN(float64(b.score))
	switch {
	case aNaN && !bNaN:
		return 1
	case !aNaN && bNaN:
		return -1
	case !aNaN && a.score != b.score:
		if a.score > b.score {
			return -1
		}
		return 1
	}
	return a.index - b.index
}

func betterCandidate(a, b candidate) bool {
	return compareCandidates(a, b) < 0
}

// selectTop returns the best n entries of row in rank order, skipping any
// index for which skip returns true.
func selectTop(row []float32, n int, useHeap bool, skip func(int) bool) []candidate {
	if n <= 0 {
		return nil
	}

	if useHeap {
		h := cache.NewBoundedHeap(n, betterCandidate)
		for j, s := range row {
			if skip != nil && skip(j) {
				continue
			}
			h.Push(candidate{index: j, score: s})
		}
		return h.Sorted()
	}

	all := make([]candidate, 0, len(row))
	for j, s := range row {
		if skip != nil && skip(j) {
			continue
		}
		all = append(all, candidate{index: j, score: s})
	}
	slices.SortFunc(all, compareCandidates)
	if len(all) > n {
		all = all[:n]
	}
	return all
}
