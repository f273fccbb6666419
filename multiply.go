package quadmul

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/blockwise/quadmul/vec"
	"github.com/blockwise/quadmul/workerpool"
)

// Multiply computes the matrix product C = A·B for square matrices of
// side n, given and returned as flat row-major slices of n*n elements.
// n must be a positive power of two. cfg selects the strategy; the three
// boolean knobs are performance knobs only and never change the result
// beyond floating-point reassociation tolerance.
//
// When cfg.UseThreading is set, Multiply creates a pool of cfg.Workers
// workers for this one call. Callers multiplying repeatedly should hold a
// pool themselves and use MultiplyWithPool.
func Multiply[T vec.Floats](a, b []T, n int, cfg Config) ([]T, error) {
	if err := validate(a, b, n); err != nil {
		return nil, err
	}
	cfg = cfg.normalized(n)

	var pool *workerpool.Pool
	if cfg.UseThreading {
		pool = workerpool.New(cfg.Workers)
		defer pool.Close()
	}
	return run(pool, a, b, n, cfg)
}

// MultiplyWithPool is Multiply reusing a caller-owned pool across calls.
// A nil pool means sequential execution regardless of cfg.UseThreading;
// cfg.Workers is ignored. The pool may serve concurrent callers.
func MultiplyWithPool[T vec.Floats](pool *workerpool.Pool, a, b []T, n int, cfg Config) ([]T, error) {
	if err := validate(a, b, n); err != nil {
		return nil, err
	}
	cfg = cfg.normalized(n)

	if !cfg.UseThreading {
		pool = nil
	}
	return run(pool, a, b, n, cfg)
}

// validate applies the input contract before any work is dispatched:
// n ≥ 1 and a power of two, n under the engine ceiling, both operands
// exactly n*n elements.
func validate[T vec.Floats](a, b []T, n int) error {
	if n < 1 || !isPow2(n) {
		return fmt.Errorf("%w: n=%d", ErrInvalidSize, n)
	}
	if n > maxDim {
		return fmt.Errorf("%w: n=%d exceeds ceiling %d", ErrAllocation, n, maxDim)
	}
	if len(a) != n*n || len(b) != n*n {
		return fmt.Errorf("%w: len(a)=%d, len(b)=%d, want %d", ErrInvalidDimension, len(a), len(b), n*n)
	}
	return nil
}

// run executes one validated multiply: transcode both operands into
// block-recursive order with base blocks the kernel consumes whole, run
// the strategy gate, transcode the accumulated result back to row-major.
// The two operand transcodes are independent alloc+copy jobs and run
// concurrently when a pool is present.
func run[T vec.Floats](pool *workerpool.Pool, a, b []T, n int, cfg Config) ([]T, error) {
	block := cfg.BaseThreshold

	var pa, pb []T
	defer func() {
		putBuf(pa)
		putBuf(pb)
	}()

	var g errgroup.Group
	g.Go(func() error {
		var err error
		if pa, err = getBuf[T](n * n); err != nil {
			return err
		}
		packBlocks(pool, pa, a, n, block)
		return nil
	})
	g.Go(func() error {
		var err error
		if pb, err = getBuf[T](n * n); err != nil {
			return err
		}
		packBlocks(pool, pb, b, n, block)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pc, err := getBuf[T](n * n)
	if err != nil {
		return nil, err
	}
	defer putBuf(pc)
	clear(pc) // the core accumulates into pc

	p := &plan[T]{cfg: cfg, pool: pool, kernel: kernelFor[T](cfg.UseSIMD)}
	if err := p.mulAdd(pa, pb, pc, n); err != nil {
		return nil, err
	}

	// The result gets fresh storage: pooled buffers never escape.
	out := make([]T, n*n)
	unpackBlocks(pool, out, pc, n, block)
	return out, nil
}
