// Package vec provides portable data-parallel vector operations with a
// runtime capability probe.
//
// Code written against Vec runs everywhere: the probe picks the widest
// vector register width the host supports (AVX-512, AVX2, SSE2, NEON) and
// the operations batch over that many lanes, falling back to 16-byte
// batches when no vector support is detected or when QUADMUL_NO_SIMD is
// set. Results are identical at every width; only the batching changes.
//
// Basic usage:
//
//	a := vec.Load(data1)
//	b := vec.Load(data2)
//	acc := vec.MulAdd(a, b, acc)
//	sum := vec.ReduceSum(acc)
package vec

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// Lanes is a constraint for types that can occupy vector lanes.
type Lanes interface {
	Floats | ~int32 | ~int64
}

// Vec is a portable vector handle holding up to MaxLanes[T]() elements.
//
// Vec instances should not be created directly; use Load, Set, or Zero.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in
// performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data
}

// Store writes the vector's data to a slice.
// This is the method form of the vec.Store function.
func (v Vec[T]) Store(dst []T) {
	n := len(v.data)
	if len(dst) < n {
		n = len(dst)
	}
	copy(dst[:n], v.data[:n])
}
