package quadmul

import "github.com/blockwise/quadmul/vec"

// kernelFunc computes c += a·b for one base block of side m, all three
// slices row-contiguous runs of m*m elements.
type kernelFunc[T vec.Floats] func(a, b, c []T, m int)

// kernelFor selects the base kernel. Both kernels compute the same sums;
// they differ only in association order, so the choice is a performance
// knob.
func kernelFor[T vec.Floats](useSIMD bool) kernelFunc[T] {
	if useSIMD {
		return mulAddVec[T]
	}
	return mulAddScalar[T]
}

// mulAddScalar is the reference triple loop in i, k, j order: the inner
// loop walks rows of b and c contiguously.
func mulAddScalar[T vec.Floats](a, b, c []T, m int) {
	for i := 0; i < m; i++ {
		ci := c[i*m : (i+1)*m]
		for k := 0; k < m; k++ {
			aik := a[i*m+k]
			bk := b[k*m : (k+1)*m]
			for j, bv := range bk {
				ci[j] += aik * bv
			}
		}
	}
}

// mulAddVec stages one column of b at a time into a contiguous buffer,
// then runs the vectorized dot of that buffer against every row of a.
// The outer loop is over columns of b, so each column copy is amortized
// across all m rows. b's column stride defeats vector loads; the staged
// copy restores contiguous access without changing the math.
func mulAddVec[T vec.Floats](a, b, c []T, m int) {
	col := grabBuf[T](m)

	for j := 0; j < m; j++ {
		for k := 0; k < m; k++ {
			col[k] = b[k*m+j]
		}
		for i := 0; i < m; i++ {
			c[i*m+j] += vec.Dot(a[i*m:(i+1)*m], col)
		}
	}

	putBuf(col)
}
