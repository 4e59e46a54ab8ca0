// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog holds the immutable movie catalog and its precomputed
// similarity matrix.
//
// A Store is built once from externally produced artifacts and then shared
// by any number of concurrent readers. Nothing in this package mutates a
// Store after New returns, so reads need no locking.
//
//	store, err := catalog.New(items, matrix)
//	if err != nil {
//	    // errors.Is(err, catalog.ErrLoad) is always true here
//	}
//	idx, err := store.ResolveIndex("Avatar")
package catalog

import (
	"errors"
	"fmt"
)

// Item is one catalog entry.
type Item struct {
	// ID is the TMDB movie identifier used for poster lookup.
	ID int64 `json:"movie_id" msgpack:"movie_id" validate:"gte=0"`

	// Title is the display title and the lookup key.
	Title string `json:"title" msgpack:"title" validate:"required"`
}

// Store pairs the catalog with its similarity matrix. Row i of the matrix
// belongs to Items[i].
type Store struct {
	items  []Item
	matrix *Matrix

	// byTitle maps each title to its first index.
	byTitle map[string]int
}

// New validates and builds a Store. Every failure is a *LoadError.
func New(items []Item, matrix *Matrix) (*Store, error) {
	if len(items) == 0 {
		return nil, NewLoadError(StageValidate, "", errors.New("catalog is empty"))
	}
	if matrix == nil {
		return nil, NewLoadError(StageValidate, "", errors.New("similarity matrix is missing"))
	}
	if matrix.Dim() != len(items) {
		return nil, NewLoadError(StageValidate, "",
			fmt.Errorf("similarity matrix is %dx%d but catalog has %d items", matrix.Dim(), matrix.Dim(), len(items)))
	}
	if len(matrix.data) != matrix.dim*matrix.dim {
		return nil, NewLoadError(StageValidate, "",
			fmt.Errorf("similarity matrix holds %d scores, want %d", len(matrix.data), matrix.dim*matrix.dim))
	}

	byTitle := make(map[string]int, len(items))
	for i, it := range items {
		if _, seen := byTitle[it.Title]; !seen {
			byTitle[it.Title] = i
		}
	}

	owned := make([]Item, len(items))
	copy(owned, items)

	return &Store{items: owned, matrix: matrix, byTitle: byTitle}, nil
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Item returns the item at index i.
func (s *Store) Item(i int) Item {
	return s.items[i]
}

// ResolveIndex returns the lowest index whose title equals title.
func (s *Store) ResolveIndex(title string) (int, error) {
	if i, ok := s.byTitle[title]; ok {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrNotFound, title)
}

// Titles returns every title in catalog order.
func (s *Store) Titles() []string {
	titles := make([]string, len(s.items))
	for i, it := range s.items {
		titles[i] = it.Title
	}
	return titles
}

// Row returns the similarity row for index i. Callers must not modify it.
func (s *Store) Row(i int) []float32 {
	return s.matrix.Row(i)
}

// Score returns the similarity between items i and j.
func (s *Store) Score(i, j int) float32 {
	return s.matrix.At(i, j)
}
