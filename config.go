package quadmul

import "math/bits"

// Tuned crossover points. Like all such constants they encode benchmark
// observations, not hard rules; Config overrides them per call.
const (
	// DefaultBaseThreshold is the recursion floor for the scalar kernel.
	// Below this size the triple loop beats the recursion machinery.
	DefaultBaseThreshold = 8

	// DefaultBaseThresholdSIMD is the recursion floor when the vectorized
	// kernel is in play. Entering the vector path has fixed overhead
	// (staging copies, lane setup), so the crossover sits much higher
	// than the scalar one.
	DefaultBaseThresholdSIMD = 256

	// DefaultParallelThreshold is the sub-problem side above which
	// quadrant tasks are offered to the worker pool. Task distribution
	// costs more than a recursion level, so it sits above the scalar
	// base case.
	DefaultParallelThreshold = 64

	// DefaultStrassenThreshold is the side above which Strassen's
	// recomposition pays for its extra additions and temporaries.
	DefaultStrassenThreshold = 256

	// maxDim caps the accepted matrix side. It keeps n*n and every
	// temporary-size computation comfortably inside the allocation
	// guard's ceiling on any platform.
	maxDim = 1 << 15
)

// Config selects the multiply strategy. The zero value means sequential
// execution with the scalar kernel, no Strassen, and default thresholds:
// the plain recursive engine.
type Config struct {
	// UseThreading dispatches independent quadrant tasks to a worker
	// pool instead of running them inline.
	UseThreading bool

	// UseSIMD selects the vectorized base kernel instead of the scalar
	// triple loop. Results agree within floating-point reassociation
	// tolerance.
	UseSIMD bool

	// UseStrassen rewrites large multiplies into 7 half-size ones plus
	// additions, trading temporary memory for fewer multiplications.
	UseStrassen bool

	// BaseThreshold is the side at or below which recursion hands over
	// to the base kernel. 0 means the default for the selected kernel;
	// the effective value is clamped to [1, n] and rounded down to a
	// power of two so base blocks tile the matrix.
	BaseThreshold int

	// ParallelThreshold is the side a sub-problem must exceed before its
	// quadrant tasks are offered to the pool. 0 means the default.
	ParallelThreshold int

	// StrassenThreshold is the side a sub-problem must exceed for the
	// Strassen recomposition to apply. 0 means the default.
	StrassenThreshold int

	// Workers sizes the pool Multiply creates when UseThreading is set.
	// 0 means GOMAXPROCS. Ignored by MultiplyWithPool.
	Workers int
}

// Defaults returns a tuned full-featured configuration: threading and the
// vectorized kernel enabled, Strassen off (its temporary-memory appetite
// stays opt-in).
func Defaults() Config {
	return Config{
		UseThreading:      true,
		UseSIMD:           true,
		BaseThreshold:     DefaultBaseThresholdSIMD,
		ParallelThreshold: DefaultParallelThreshold,
		StrassenThreshold: DefaultStrassenThreshold,
	}
}

// normalized resolves zero values to defaults and clamps the thresholds
// into their working ranges for a multiply of side n.
func (c Config) normalized(n int) Config {
	if c.BaseThreshold == 0 {
		if c.UseSIMD {
			c.BaseThreshold = DefaultBaseThresholdSIMD
		} else {
			c.BaseThreshold = DefaultBaseThreshold
		}
	}
	if c.BaseThreshold < 1 {
		c.BaseThreshold = 1
	}
	c.BaseThreshold = floorPow2(min(c.BaseThreshold, n))

	if c.ParallelThreshold == 0 {
		c.ParallelThreshold = DefaultParallelThreshold
	}
	if c.ParallelThreshold < 1 {
		c.ParallelThreshold = 1
	}

	if c.StrassenThreshold == 0 {
		c.StrassenThreshold = DefaultStrassenThreshold
	}
	if c.StrassenThreshold < 1 {
		c.StrassenThreshold = 1
	}

	return c
}

// floorPow2 returns the largest power of two not exceeding x. x must be
// positive.
func floorPow2(x int) int {
	return 1 << (bits.Len(uint(x)) - 1)
}
