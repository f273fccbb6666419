package vec

// Dot computes the dot product Σ a[i]*b[i] over min(len(a), len(b))
// elements.
//
// Four independent accumulators hide the latency of the multiply-accumulate
// chain; they are reduced pairwise at the end, then the scalar tail is
// added. The reassociation this implies is the only source of difference
// from a sequential scalar dot, and it is width-independent for a given
// lane count.
//
// Example:
//
//	a := []float64{1, 2, 3}
//	b := []float64{4, 5, 6}
//	sum := vec.Dot(a, b) // 1*4 + 2*5 + 3*6 = 32
func Dot[T Floats](a, b []T) T {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	lanes := MaxLanes[T]()
	step := 4 * lanes

	acc0 := Zero[T]()
	acc1 := Zero[T]()
	acc2 := Zero[T]()
	acc3 := Zero[T]()

	i := 0
	for ; i+step <= n; i += step {
		acc0 = MulAdd(Load(a[i:]), Load(b[i:]), acc0)
		acc1 = MulAdd(Load(a[i+lanes:]), Load(b[i+lanes:]), acc1)
		acc2 = MulAdd(Load(a[i+2*lanes:]), Load(b[i+2*lanes:]), acc2)
		acc3 = MulAdd(Load(a[i+3*lanes:]), Load(b[i+3*lanes:]), acc3)
	}
	for ; i+lanes <= n; i += lanes {
		acc0 = MulAdd(Load(a[i:]), Load(b[i:]), acc0)
	}

	acc0 = Add(acc0, acc2)
	acc1 = Add(acc1, acc3)
	sum := ReduceSum(Add(acc0, acc1))

	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
