package quadmul

// recurse is the cache-oblivious core: view the operands as 2×2 quadrant
// matrices of side m/2 and accumulate the 8 canonical quadrant products,
// two per output quadrant:
//
//	c11 += a11·b11 + a12·b21    c12 += a11·b12 + a12·b22
//	c21 += a21·b11 + a22·b21    c22 += a21·b12 + a22·b22
//
// In block-recursive storage each quadrant is one contiguous run of
// (m/2)² elements, so "viewing" is slicing; no indices are computed. The
// 8 products group into 4 independent tasks, one per output quadrant;
// within a task the two products accumulate into the same quadrant
// sequentially, which realizes the combine step without temporaries.
// Each recursive call re-enters the strategy gate, so a child large
// enough is Strassen-eligible again.
//
// Recursion depth is log2(m) − log2(baseThreshold): m halves each level
// and the gate hands anything at or below the base threshold to the
// kernel before this function is reached.
func (p *plan[T]) recurse(a, b, c []T, m int) error {
	q := m / 2
	qe := q * q

	a11, a12, a21, a22 := a[:qe], a[qe:2*qe], a[2*qe:3*qe], a[3*qe:4*qe]
	b11, b12, b21, b22 := b[:qe], b[qe:2*qe], b[2*qe:3*qe], b[3*qe:4*qe]
	c11, c12, c21, c22 := c[:qe], c[qe:2*qe], c[2*qe:3*qe], c[3*qe:4*qe]

	return p.fanOut(m, []func() error{
		func() error {
			if err := p.mulAdd(a11, b11, c11, q); err != nil {
				return err
			}
			return p.mulAdd(a12, b21, c11, q)
		},
		func() error {
			if err := p.mulAdd(a11, b12, c12, q); err != nil {
				return err
			}
			return p.mulAdd(a12, b22, c12, q)
		},
		func() error {
			if err := p.mulAdd(a21, b11, c21, q); err != nil {
				return err
			}
			return p.mulAdd(a22, b21, c21, q)
		},
		func() error {
			if err := p.mulAdd(a21, b12, c22, q); err != nil {
				return err
			}
			return p.mulAdd(a22, b22, c22, q)
		},
	})
}
