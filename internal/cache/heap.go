// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

// BoundedHeap keeps the best k values offered to it under a caller-supplied
// ordering. The root is the worst kept value, so a candidate only has to beat
// the root to get in. Push is O(log k).
//
// BoundedHeap is not safe for concurrent use.
type BoundedHeap[T any] struct {
	heap []T
	k    int
	// better reports whether a ranks ahead of b.
	better func(a, b T) bool
}

// NewBoundedHeap creates a heap that retains at most k values.
func NewBoundedHeap[T any](k int, better func(a, b T) bool) *BoundedHeap[T] {
	if k < 0 {
		k = 0
	}
	return &BoundedHeap[T]{
		heap:   make([]T, 0, k),
		k:      k,
		better: better,
	}
}

// Push offers v. It reports whether v was kept.
func (h *BoundedHeap[T]) Push(v T) bool {
	if h.k == 0 {
		return false
	}
	if len(h.heap) < h.k {
		h.heap = append(h.heap, v)
		h.bubbleUp(len(h.heap) - 1)
		return true
	}
	if !h.better(v, h.heap[0]) {
		return false
	}
	h.heap[0] = v
	h.bubbleDown(0)
	return true
}

// Len returns the number of kept values.
func (h *BoundedHeap[T]) Len() int {
	return len(h.heap)
}

// Peek returns the worst kept value.
func (h *BoundedHeap[T]) Peek() (T, bool) {
	if len(h.heap) == 0 {
		var zero T
		return zero, false
	}
	return h.heap[0], true
}

// Sorted drains the heap and returns the kept values best first.
func (h *BoundedHeap[T]) Sorted() []T {
	out := make([]T, len(h.heap))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = h.heap[0]
		last := len(h.heap) - 1
		h.heap[0] = h.heap[last]
		h.heap = h.heap[:last]
		if last > 0 {
			h.bubbleDown(0)
		}
	}
	return out
}

// worse orders the heap so the root is the worst value.
func (h *BoundedHeap[T]) worse(i, j int) bool {
	return h.better(h.heap[j], h.heap[i])
}

// bubbleUp moves element at index i up to its correct position.
func (h *BoundedHeap[T]) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.worse(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

// bubbleDown moves element at index i down to its correct position.
func (h *BoundedHeap[T]) bubbleDown(i int) {
	n := len(h.heap)
	for {
		worst := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && h.worse(left, worst) {
			worst = left
		}
		if right < n && h.worse(right, worst) {
			worst = right
		}

		if worst == i {
			break
		}

		h.swap(i, worst)
		i = worst
	}
}

func (h *BoundedHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
}
