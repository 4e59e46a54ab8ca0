// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import "fmt"

// Matrix is a dense, row-major N x N grid of similarity scores.
// Higher scores mean more similar. The matrix is never mutated after construction.
type Matrix struct {
	dim  int
	data []float32
}

// NewMatrix wraps data as a dim x dim matrix. The slice is owned by the matrix afterwards.
func NewMatrix(dim int, data []float32) (*Matrix, error) {
	if dim < 0 {
		return nil, fmt.Errorf("negative matrix dimension %d", dim)
	}
	if len(data) != dim*dim {
		return nil, fmt.Errorf("matrix data has %d scores, want %d for dimension %d", len(data), dim*dim, dim)
	}
	return &Matrix{dim: dim, data: data}, nil
}

// MatrixFromRows copies a square grid of rows into a Matrix.
func MatrixFromRows(rows [][]float32) (*Matrix, error) {
	dim := len(rows)
	data := make([]float32, 0, dim*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), dim)
		}
		data = append(data, row...)
	}
	return &Matrix{dim: dim, data: data}, nil
}

// Dim returns N.
func (m *Matrix) Dim() int {
	return m.dim
}

// Row returns row i. Callers must not modify the returned slice.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.dim : (i+1)*m.dim : (i+1)*m.dim]
}

// At returns the score between items i and j.
func (m *Matrix) At(i, j int) float32 {
	return m.data[i*m.dim+j]
}
