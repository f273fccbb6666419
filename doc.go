// Package quadmul multiplies dense square matrices whose side is a power
// of two.
//
// The engine composes four independent accelerations into one pipeline:
// a block-recursive (Z-order) storage layout that keeps every quadrant of
// every recursion level contiguous, a cache-oblivious quadrant recursion
// over that layout, a bounded fork-join worker pool fanning the
// independent quadrant tasks out across cores, and a vectorized base
// kernel that stages columns into contiguous buffers for data-parallel
// dot products. Strassen's recomposition can optionally replace the 8
// quadrant products of a level with 7, at the cost of quadrant-sized
// temporaries. Each axis is a Config knob; none of them changes the
// result beyond floating-point reassociation tolerance.
//
// Basic usage:
//
//	c, err := quadmul.Multiply(a, b, n, quadmul.Defaults())
//
// where a and b are flat row-major slices of n*n elements. Repeated
// multiplies should share a pool:
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	c, err := quadmul.MultiplyWithPool(pool, a, b, n, cfg)
package quadmul
