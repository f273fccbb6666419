package quadmul

import "github.com/blockwise/quadmul/vec"

// strassen rewrites one multiply of side m into 7 multiplies of side m/2
// plus a fixed set of quadrant additions and subtractions:
//
//	M1 = (a11+a22)·(b11+b22)   M2 = (a21+a22)·b11   M3 = a11·(b12−b22)
//	M4 = a22·(b21−b11)         M5 = (a11+a12)·b22   M6 = (a21−a11)·(b11+b12)
//	M7 = (a12−a22)·(b21+b22)
//
//	c11 += M1+M4−M5+M7   c12 += M3+M5   c21 += M2+M4   c22 += M1−M2+M3+M6
//
// Each of the 7 products goes back through the strategy gate, so it is
// parallel-, vector-, and Strassen-accelerated in its own right. The 10
// operand sums/differences and the 7 products need 17 quadrant-sized
// temporaries — O(m²) for the level, recycled through the buffer pool but
// deliberately not computed in place. All 17 are acquired before any
// product is dispatched, so an allocation failure aborts the level with
// no work started.
//
// Quadrant sums preserve the block-recursive order element-for-element,
// so the temporaries are valid operands for the recursive core as they
// stand. c's quadrants may be aliased by sibling levels only as read-only
// inputs never as outputs, and the combine below writes nothing but c.
func (p *plan[T]) strassen(a, b, c []T, m int) error {
	q := m / 2
	qe := q * q

	bufs, err := getBufs[T](17, qe)
	if err != nil {
		return err
	}
	defer putBufs(bufs)

	a11, a12, a21, a22 := a[:qe], a[qe:2*qe], a[2*qe:3*qe], a[3*qe:4*qe]
	b11, b12, b21, b22 := b[:qe], b[qe:2*qe], b[2*qe:3*qe], b[3*qe:4*qe]
	c11, c12, c21, c22 := c[:qe], c[qe:2*qe], c[2*qe:3*qe], c[3*qe:4*qe]

	sums, prods := bufs[:10], bufs[10:]
	addTo(sums[0], a11, a22) // M1 left
	addTo(sums[1], b11, b22) // M1 right
	addTo(sums[2], a21, a22) // M2 left
	subTo(sums[3], b12, b22) // M3 right
	subTo(sums[4], b21, b11) // M4 right
	addTo(sums[5], a11, a12) // M5 left
	subTo(sums[6], a21, a11) // M6 left
	addTo(sums[7], b11, b12) // M6 right
	subTo(sums[8], a12, a22) // M7 left
	addTo(sums[9], b21, b22) // M7 right

	mul := func(dst, x, y []T) func() error {
		return func() error {
			clear(dst) // pool buffers come back dirty
			return p.mulAdd(x, y, dst, q)
		}
	}
	err = p.fanOut(m, []func() error{
		mul(prods[0], sums[0], sums[1]),
		mul(prods[1], sums[2], b11),
		mul(prods[2], a11, sums[3]),
		mul(prods[3], a22, sums[4]),
		mul(prods[4], sums[5], b22),
		mul(prods[5], sums[6], sums[7]),
		mul(prods[6], sums[8], sums[9]),
	})
	if err != nil {
		return err
	}

	m1, m2, m3, m4 := prods[0], prods[1], prods[2], prods[3]
	m5, m6, m7 := prods[4], prods[5], prods[6]
	for i := 0; i < qe; i++ {
		c11[i] += m1[i] + m4[i] - m5[i] + m7[i]
		c12[i] += m3[i] + m5[i]
		c21[i] += m2[i] + m4[i]
		c22[i] += m1[i] - m2[i] + m3[i] + m6[i]
	}
	return nil
}

// addTo stores x+y element-wise into dst. All three must have equal
// length; dst must not alias x or y.
func addTo[T vec.Floats](dst, x, y []T) {
	for i := range dst {
		dst[i] = x[i] + y[i]
	}
}

// subTo stores x−y element-wise into dst.
func subTo[T vec.Floats](dst, x, y []T) {
	for i := range dst {
		dst[i] = x[i] - y[i]
	}
}
