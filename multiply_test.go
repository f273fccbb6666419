package quadmul_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockwise/quadmul"
	"github.com/blockwise/quadmul/workerpool"
)

// naiveMul is the reference triple loop over row-major storage.
func naiveMul[T float32 | float64](a, b []T, n int) []T {
	c := make([]T, n*n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a[i*n+k]
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[k*n+j]
			}
		}
	}
	return c
}

func randMat[T float32 | float64](rng *rand.Rand, n int) []T {
	m := make([]T, n*n)
	for i := range m {
		m[i] = T(rng.Float64()*2 - 1)
	}
	return m
}

func identity[T float32 | float64](n int) []T {
	m := make([]T, n*n)
	for i := 0; i < n; i++ {
		m[i*n+i] = 1
	}
	return m
}

// maxAbsDiff returns the largest element-wise |got−want|.
func maxAbsDiff[T float32 | float64](got, want []T) float64 {
	var worst float64
	for i := range got {
		if d := math.Abs(float64(got[i] - want[i])); d > worst {
			worst = d
		}
	}
	return worst
}

// allConfigs enumerates the eight knob combinations over a base config.
func allConfigs(base quadmul.Config) []quadmul.Config {
	var cfgs []quadmul.Config
	for _, threading := range []bool{false, true} {
		for _, simd := range []bool{false, true} {
			for _, strassen := range []bool{false, true} {
				c := base
				c.UseThreading = threading
				c.UseSIMD = simd
				c.UseStrassen = strassen
				cfgs = append(cfgs, c)
			}
		}
	}
	return cfgs
}

func cfgName(c quadmul.Config) string {
	return fmt.Sprintf("threading=%v/simd=%v/strassen=%v", c.UseThreading, c.UseSIMD, c.UseStrassen)
}

func TestMultiplyMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, n := range []int{1, 2, 4, 8, 16, 64, 256} {
		a := randMat[float64](rng, n)
		b := randMat[float64](rng, n)
		want := naiveMul(a, b, n)

		// Low thresholds force every component into play even at
		// small n: recursion below 256, pool fan-out, Strassen
		// levels. Default thresholds would park all of these sizes
		// in the base kernel.
		base := quadmul.Config{BaseThreshold: 2, ParallelThreshold: 4, StrassenThreshold: 4}
		for _, cfg := range allConfigs(base) {
			t.Run(fmt.Sprintf("n=%d/%s", n, cfgName(cfg)), func(t *testing.T) {
				got, err := quadmul.Multiply(a, b, n, cfg)
				require.NoError(t, err)
				require.Len(t, got, n*n)
				// Deep Strassen nesting regroups many sums;
				// the tolerance scales with n to cover it.
				tol := 1e-9 * float64(n)
				if d := maxAbsDiff(got, want); d > tol {
					t.Errorf("max |got-want| = %g, tolerance %g", d, tol)
				}
			})
		}
	}
}

func TestMultiplyDefaults(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for _, n := range []int{1, 16, 256} {
		a := randMat[float64](rng, n)
		b := randMat[float64](rng, n)
		want := naiveMul(a, b, n)

		got, err := quadmul.Multiply(a, b, n, quadmul.Defaults())
		require.NoError(t, err)
		if d := maxAbsDiff(got, want); d > 1e-10*float64(n) {
			t.Errorf("n=%d: max |got-want| = %g", n, d)
		}
	}
}

func TestMultiplyFloat32(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const n = 64

	a := randMat[float32](rng, n)
	b := randMat[float32](rng, n)
	want := naiveMul(a, b, n)

	base := quadmul.Config{BaseThreshold: 4, ParallelThreshold: 8, StrassenThreshold: 8}
	for _, cfg := range allConfigs(base) {
		got, err := quadmul.Multiply(a, b, n, cfg)
		require.NoError(t, err, cfgName(cfg))
		if d := maxAbsDiff(got, want); d > 1e-3 {
			t.Errorf("%s: max |got-want| = %g", cfgName(cfg), d)
		}
	}
}

func TestWorkedExample(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6, 7, 8}
	want := []float64{19, 22, 43, 50}

	base := quadmul.Config{BaseThreshold: 1, ParallelThreshold: 1, StrassenThreshold: 1}
	for _, cfg := range allConfigs(base) {
		got, err := quadmul.Multiply(a, b, 2, cfg)
		require.NoError(t, err, cfgName(cfg))
		// Small integers: every grouping of these sums is exact.
		require.Equal(t, want, got, cfgName(cfg))
	}
}

func TestIdentityAndZero(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	const n = 32

	a := randMat[float64](rng, n)
	eye := identity[float64](n)
	zero := make([]float64, n*n)
	cfg := quadmul.Config{BaseThreshold: 4, ParallelThreshold: 8, StrassenThreshold: 8, UseSIMD: true, UseStrassen: true}

	got, err := quadmul.Multiply(a, eye, n, cfg)
	require.NoError(t, err)
	if d := maxAbsDiff(got, a); d > 1e-12 {
		t.Errorf("A·I: max diff %g", d)
	}

	got, err = quadmul.Multiply(eye, a, n, cfg)
	require.NoError(t, err)
	if d := maxAbsDiff(got, a); d > 1e-12 {
		t.Errorf("I·A: max diff %g", d)
	}

	got, err = quadmul.Multiply(a, zero, n, cfg)
	require.NoError(t, err)
	require.Equal(t, zero, got, "A·0 must be exactly zero")
}

// Each knob is a performance knob: toggling it must not move the result
// beyond reassociation tolerance, and threading must not move it at all.
func TestConfigInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const n = 64

	a := randMat[float64](rng, n)
	b := randMat[float64](rng, n)
	base := quadmul.Config{BaseThreshold: 4, ParallelThreshold: 8, StrassenThreshold: 16}

	ref, err := quadmul.Multiply(a, b, n, base)
	require.NoError(t, err)

	t.Run("threading", func(t *testing.T) {
		cfg := base
		cfg.UseThreading = true
		got, err := quadmul.Multiply(a, b, n, cfg)
		require.NoError(t, err)
		// Threading reorders nothing about per-element summation.
		require.Equal(t, ref, got)
	})
	t.Run("simd", func(t *testing.T) {
		cfg := base
		cfg.UseSIMD = true
		got, err := quadmul.Multiply(a, b, n, cfg)
		require.NoError(t, err)
		if d := maxAbsDiff(got, ref); d > 1e-11 {
			t.Errorf("max diff %g", d)
		}
	})
	t.Run("strassen", func(t *testing.T) {
		cfg := base
		cfg.UseStrassen = true
		got, err := quadmul.Multiply(a, b, n, cfg)
		require.NoError(t, err)
		if d := maxAbsDiff(got, ref); d > 1e-10 {
			t.Errorf("max diff %g", d)
		}
	})
}

// Threshold boundaries: n at, below, and above each threshold crosses
// every gate in both directions.
func TestThresholdBoundaries(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	for _, n := range []int{1, 2, 4, 8, 16} {
		a := randMat[float64](rng, n)
		b := randMat[float64](rng, n)
		want := naiveMul(a, b, n)

		for _, th := range []int{1, 2, 4, 8} {
			cfg := quadmul.Config{
				UseThreading:      true,
				UseSIMD:           true,
				UseStrassen:       true,
				BaseThreshold:     th,
				ParallelThreshold: th,
				StrassenThreshold: th,
			}
			got, err := quadmul.Multiply(a, b, n, cfg)
			require.NoError(t, err, "n=%d th=%d", n, th)
			if d := maxAbsDiff(got, want); d > 1e-11*float64(n) {
				t.Errorf("n=%d th=%d: max diff %g", n, th, d)
			}
		}
	}
}

func TestMultiplyRejectsBadInput(t *testing.T) {
	a := make([]float64, 9)
	b := make([]float64, 9)

	for _, n := range []int{0, 3, 6, -4} {
		_, err := quadmul.Multiply(a, b, n, quadmul.Config{})
		require.ErrorIs(t, err, quadmul.ErrInvalidSize, "n=%d", n)
	}

	_, err := quadmul.Multiply(make([]float64, 4), make([]float64, 16), 4, quadmul.Config{})
	require.ErrorIs(t, err, quadmul.ErrInvalidDimension)

	_, err = quadmul.Multiply(make([]float64, 16), make([]float64, 4), 4, quadmul.Config{})
	require.ErrorIs(t, err, quadmul.ErrInvalidDimension)

	// Oversized n trips the allocation guard before the length check
	// could demand an absurd slice.
	_, err = quadmul.Multiply[float64](nil, nil, 1<<20, quadmul.Config{})
	require.ErrorIs(t, err, quadmul.ErrAllocation)
}

func TestMultiplyWithPool(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 32

	pool := workerpool.New(4)
	defer pool.Close()

	cfg := quadmul.Config{UseThreading: true, BaseThreshold: 4, ParallelThreshold: 4}
	for range 3 {
		a := randMat[float64](rng, n)
		b := randMat[float64](rng, n)
		want := naiveMul(a, b, n)

		got, err := quadmul.MultiplyWithPool(pool, a, b, n, cfg)
		require.NoError(t, err)
		if d := maxAbsDiff(got, want); d > 1e-11 {
			t.Errorf("max diff %g", d)
		}
	}

	// nil pool means sequential, not an error.
	a := randMat[float64](rng, n)
	b := randMat[float64](rng, n)
	got, err := quadmul.MultiplyWithPool(nil, a, b, n, cfg)
	require.NoError(t, err)
	require.Equal(t, naiveMul(a, b, n), got)
}

// A starved pool must never deadlock: recursive fan-out with one worker
// degrades to inline execution at every level.
func TestMultiplySingleWorker(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	const n = 64

	pool := workerpool.New(1)
	defer pool.Close()

	a := randMat[float64](rng, n)
	b := randMat[float64](rng, n)
	want := naiveMul(a, b, n)

	cfg := quadmul.Config{UseThreading: true, UseStrassen: true, BaseThreshold: 2, ParallelThreshold: 2, StrassenThreshold: 4}
	got, err := quadmul.MultiplyWithPool(pool, a, b, n, cfg)
	require.NoError(t, err)
	if d := maxAbsDiff(got, want); d > 1e-11 {
		t.Errorf("max diff %g", d)
	}
}

func BenchmarkMultiply(b *testing.B) {
	rng := rand.New(rand.NewSource(9))
	pool := workerpool.New(0)
	defer pool.Close()

	for _, n := range []int{64, 256, 1024} {
		x := randMat[float64](rng, n)
		y := randMat[float64](rng, n)
		for _, cfg := range []struct {
			name string
			c    quadmul.Config
		}{
			{"sequential", quadmul.Config{}},
			{"simd", quadmul.Config{UseSIMD: true}},
			{"threaded+simd", quadmul.Config{UseThreading: true, UseSIMD: true}},
			{"full+strassen", quadmul.Config{UseThreading: true, UseSIMD: true, UseStrassen: true}},
		} {
			b.Run(fmt.Sprintf("n=%d/%s", n, cfg.name), func(b *testing.B) {
				for b.Loop() {
					if _, err := quadmul.MultiplyWithPool(pool, x, y, n, cfg.c); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
