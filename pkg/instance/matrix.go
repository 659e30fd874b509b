package instance

import "fmt"

// Matrix is a square n×n matrix stored as a flat row-major buffer.
// Element (i, j) lives at offset i*n + j.
//
// Matrix is a small header around a shared slice: copies of a Matrix value
// alias the same storage. Use [Matrix.Clone] for an independent copy.
type Matrix[T any] struct {
	n    int
	data []T
}

// NewMatrix allocates a zero-filled n×n matrix. A negative n is treated as 0.
func NewMatrix[T any](n int) Matrix[T] {
	if n < 0 {
		n = 0
	}
	return Matrix[T]{n: n, data: make([]T, n*n)}
}

// MatrixFromRows builds a matrix from nested rows. Every row must have
// len(rows) entries.
func MatrixFromRows[T any](rows [][]T) (Matrix[T], error) {
	n := len(rows)
	m := NewMatrix[T](n)
	for i, row := range rows {
		if len(row) != n {
			return Matrix[T]{}, fmt.Errorf("row %d has %d entries, want %d", i, len(row), n)
		}
		copy(m.data[i*n:(i+1)*n], row)
	}
	return m, nil
}

// N returns the matrix order.
func (m Matrix[T]) N() int { return m.n }

// At returns element (i, j).
func (m Matrix[T]) At(i, j int) T { return m.data[i*m.n+j] }

// Set stores v at (i, j). The write is visible through every copy of m.
func (m Matrix[T]) Set(i, j int, v T) { m.data[i*m.n+j] = v }

// Row returns row i as a slice aliasing the matrix storage.
func (m Matrix[T]) Row(i int) []T { return m.data[i*m.n : (i+1)*m.n] }

// Rows returns the matrix as freshly allocated nested rows.
func (m Matrix[T]) Rows() [][]T {
	rows := make([][]T, m.n)
	for i := range rows {
		rows[i] = append([]T(nil), m.Row(i)...)
	}
	return rows
}

// Clone returns a deep copy of m.
func (m Matrix[T]) Clone() Matrix[T] {
	return Matrix[T]{n: m.n, data: append([]T(nil), m.data...)}
}
