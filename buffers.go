package quadmul

import (
	"fmt"
	"sync"

	"github.com/blockwise/quadmul/vec"
)

// maxBufElems caps any single temporary buffer at 2^30 elements (8 GiB of
// float64). Requests beyond it fail with ErrAllocation instead of letting
// the runtime abort on an absurd make. The front-door dimension ceiling is
// chosen so every buffer the engine can request stays under this cap.
const maxBufElems = 1 << 30

// Pools for temporary slices, one per element type. Buffers come back
// dirty; callers that need zeroes clear them.
var bufPool32 = sync.Pool{
	New: func() any { return &[]float32{} },
}

var bufPool64 = sync.Pool{
	New: func() any { return &[]float64{} },
}

// grabBuf returns a temporary slice of exactly size elements from the
// pool, growing it if needed. The size must already be known to be sane;
// use getBuf where the request is derived from caller input.
func grabBuf[T vec.Floats](size int) []T {
	var zero T
	switch any(zero).(type) {
	case float32:
		p := bufPool32.Get().(*[]float32)
		if cap(*p) < size {
			*p = make([]float32, size)
		}
		*p = (*p)[:size]
		return any(*p).([]T)
	case float64:
		p := bufPool64.Get().(*[]float64)
		if cap(*p) < size {
			*p = make([]float64, size)
		}
		*p = (*p)[:size]
		return any(*p).([]T)
	default:
		return make([]T, size)
	}
}

// getBuf is grabBuf behind the allocation guard: a request that is not
// positive or exceeds maxBufElems fails with ErrAllocation before any
// storage is touched.
func getBuf[T vec.Floats](size int) ([]T, error) {
	if size < 1 || size > maxBufElems {
		return nil, fmt.Errorf("%w: %d elements", ErrAllocation, size)
	}
	return grabBuf[T](size), nil
}

// putBuf returns a temporary slice to its pool. nil is ignored, so
// deferred cleanup can run before every buffer is acquired.
func putBuf[T vec.Floats](s []T) {
	if s == nil {
		return
	}
	var zero T
	switch any(zero).(type) {
	case float32:
		f := any(s).([]float32)
		bufPool32.Put(&f)
	case float64:
		f := any(s).([]float64)
		bufPool64.Put(&f)
	}
}

// getBufs acquires count buffers of size elements each, all or nothing:
// on failure every buffer already acquired is returned to the pool.
func getBufs[T vec.Floats](count, size int) ([][]T, error) {
	bufs := make([][]T, count)
	for i := range bufs {
		b, err := getBuf[T](size)
		if err != nil {
			putBufs(bufs[:i])
			return nil, err
		}
		bufs[i] = b
	}
	return bufs, nil
}

// putBufs returns every buffer in the slice to the pool.
func putBufs[T vec.Floats](bufs [][]T) {
	for _, b := range bufs {
		putBuf(b)
	}
}
