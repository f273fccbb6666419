package quadmul

import (
	"errors"
	"testing"
)

func TestGetBufGuard(t *testing.T) {
	b, err := getBuf[float64](128)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 128 {
		t.Errorf("len = %d, want 128", len(b))
	}
	putBuf(b)

	for _, size := range []int{0, -1, maxBufElems + 1} {
		if _, err := getBuf[float64](size); !errors.Is(err, ErrAllocation) {
			t.Errorf("size %d: err = %v, want ErrAllocation", size, err)
		}
	}
}

func TestGetBufReuse(t *testing.T) {
	b, _ := getBuf[float32](64)
	putBuf(b)

	// A smaller request after a larger one reslices, never shrinks the
	// backing array below the request.
	c, _ := getBuf[float32](32)
	if len(c) != 32 {
		t.Errorf("len = %d, want 32", len(c))
	}
	putBuf(c)
}

func TestGetBufsAllOrNothing(t *testing.T) {
	bufs, err := getBufs[float64](17, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(bufs) != 17 {
		t.Fatalf("count = %d, want 17", len(bufs))
	}
	for i, b := range bufs {
		if len(b) != 16 {
			t.Errorf("bufs[%d]: len = %d, want 16", i, len(b))
		}
	}
	putBufs(bufs)

	if _, err := getBufs[float64](3, maxBufElems+1); !errors.Is(err, ErrAllocation) {
		t.Errorf("err = %v, want ErrAllocation", err)
	}
}

func TestPutBufNil(t *testing.T) {
	putBuf[float64](nil) // must not panic
}
