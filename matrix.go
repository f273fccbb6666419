package quadmul

import (
	"fmt"

	"github.com/blockwise/quadmul/vec"
)

// Layout identifies the storage order of a Matrix.
type Layout uint8

const (
	// RowMajor stores element (r, c) at index r*n + c.
	RowMajor Layout = iota

	// BlockRecursive stores the four quadrants contiguously in TL, TR,
	// BL, BR order, each quadrant itself in BlockRecursive order, down to
	// a base block whose elements are row-contiguous. With base block 1
	// this is exactly the Z-order curve.
	BlockRecursive
)

// String returns a human-readable name for the layout.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case BlockRecursive:
		return "block-recursive"
	default:
		return "unknown"
	}
}

// Matrix is a square matrix of side n backed by one flat slice of n*n
// elements. The layout tag says how indices map onto that slice.
type Matrix[T vec.Floats] struct {
	n      int
	block  int // base block side for BlockRecursive; 0 for RowMajor
	layout Layout
	data   []T
}

// NewMatrix wraps data as a RowMajor matrix of side n. The matrix takes
// ownership of data; it is not copied. n must be a positive power of two
// and data must hold exactly n*n elements.
func NewMatrix[T vec.Floats](data []T, n int) (*Matrix[T], error) {
	if n < 1 || !isPow2(n) {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidSize, n)
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("%w: len(data)=%d, want %d", ErrInvalidDimension, len(data), n*n)
	}
	return &Matrix[T]{n: n, layout: RowMajor, data: data}, nil
}

// Dim returns the side length n.
func (m *Matrix[T]) Dim() int {
	return m.n
}

// Layout returns the storage order.
func (m *Matrix[T]) Layout() Layout {
	return m.layout
}

// BlockSize returns the base block side of a BlockRecursive matrix, and 0
// for a RowMajor one.
func (m *Matrix[T]) BlockSize() int {
	return m.block
}

// Data returns the backing slice. Mutating it mutates the matrix.
func (m *Matrix[T]) Data() []T {
	return m.data
}

// At returns element (r, c) regardless of layout.
func (m *Matrix[T]) At(r, c int) T {
	return m.data[m.index(r, c)]
}

// Set stores v at element (r, c) regardless of layout.
func (m *Matrix[T]) Set(r, c int, v T) {
	m.data[m.index(r, c)] = v
}

func (m *Matrix[T]) index(r, c int) int {
	if m.layout == RowMajor {
		return r*m.n + c
	}
	b := m.block
	blockIdx := mortonIndex(uint32(r/b), uint32(c/b))
	return blockIdx*b*b + (r%b)*b + c%b
}

// Clone returns a deep copy with the same layout.
func (m *Matrix[T]) Clone() *Matrix[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return &Matrix[T]{n: m.n, block: m.block, layout: m.layout, data: data}
}

// isPow2 reports whether n is a positive power of two.
func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
