package quadmul

import (
	"fmt"

	"github.com/blockwise/quadmul/vec"
	"github.com/blockwise/quadmul/workerpool"
)

// The block-recursive order enumerates base blocks along the Z-order
// curve: the block at grid position (br, bc) lands at block index
// interleave(bc, br), which is exactly the recursive TL, TR, BL, BR
// quadrant concatenation. Transcoding is therefore a flat loop over block
// indices rather than a recursive copy, which also makes it
// range-parallelizable.

// minParallelTranscode is the matrix size (in elements) below which
// transcoding runs sequentially. Distributing a pure copy pays off only
// once the matrix is well past cache-sized.
const minParallelTranscode = 1 << 16

// spreadBits spaces the low 16 bits of v out to even bit positions.
func spreadBits(v uint32) uint32 {
	v &= 0xffff
	v = (v | v<<8) & 0x00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

// compactBits inverts spreadBits, gathering even bit positions into the
// low 16 bits.
func compactBits(v uint32) uint32 {
	v &= 0x55555555
	v = (v | v>>1) & 0x33333333
	v = (v | v>>2) & 0x0f0f0f0f
	v = (v | v>>4) & 0x00ff00ff
	v = (v | v>>8) & 0x0000ffff
	return v
}

// mortonIndex returns the Z-order position of block (row, col): column
// bits on even positions, row bits on odd.
func mortonIndex(row, col uint32) int {
	return int(spreadBits(col) | spreadBits(row)<<1)
}

// mortonCoords inverts mortonIndex.
func mortonCoords(idx int) (row, col uint32) {
	u := uint32(idx)
	return compactBits(u >> 1), compactBits(u)
}

// packRange copies base blocks [from, to), in block-recursive order, from
// the row-major source into their contiguous destination runs. dst and
// src must both hold n*n elements and block must tile n.
func packRange[T vec.Floats](dst, src []T, n, block, from, to int) {
	be := block * block
	for bi := from; bi < to; bi++ {
		br, bc := mortonCoords(bi)
		srcOff := int(br)*block*n + int(bc)*block
		dstOff := bi * be
		for r := 0; r < block; r++ {
			copy(dst[dstOff+r*block:dstOff+(r+1)*block], src[srcOff+r*n:srcOff+r*n+block])
		}
	}
}

// unpackRange inverts packRange, copying base blocks [from, to) from
// block-recursive source runs back to their row-major positions.
func unpackRange[T vec.Floats](dst, src []T, n, block, from, to int) {
	be := block * block
	for bi := from; bi < to; bi++ {
		br, bc := mortonCoords(bi)
		dstOff := int(br)*block*n + int(bc)*block
		srcOff := bi * be
		for r := 0; r < block; r++ {
			copy(dst[dstOff+r*n:dstOff+r*n+block], src[srcOff+r*block:srcOff+(r+1)*block])
		}
	}
}

// packBlocks transcodes row-major src into block-recursive dst, spreading
// the copy over the pool when the matrix is large enough to repay it.
func packBlocks[T vec.Floats](pool *workerpool.Pool, dst, src []T, n, block int) {
	numBlocks := (n / block) * (n / block)
	if pool != nil && n*n >= minParallelTranscode {
		pool.ParallelFor(numBlocks, func(start, end int) {
			packRange(dst, src, n, block, start, end)
		})
		return
	}
	packRange(dst, src, n, block, 0, numBlocks)
}

// unpackBlocks is the inverse of packBlocks.
func unpackBlocks[T vec.Floats](pool *workerpool.Pool, dst, src []T, n, block int) {
	numBlocks := (n / block) * (n / block)
	if pool != nil && n*n >= minParallelTranscode {
		pool.ParallelFor(numBlocks, func(start, end int) {
			unpackRange(dst, src, n, block, start, end)
		})
		return
	}
	unpackRange(dst, src, n, block, 0, numBlocks)
}

// ToBlockRecursive returns a BlockRecursive copy of a RowMajor matrix,
// with base blocks of side block. block must be a power of two no larger
// than the matrix side (a block of the full side degenerates to a single
// row-major block). The source is left untouched.
func ToBlockRecursive[T vec.Floats](m *Matrix[T], block int) (*Matrix[T], error) {
	if m.layout != RowMajor {
		return nil, fmt.Errorf("%w: source is %s", ErrInvalidLayout, m.layout)
	}
	if !isPow2(m.n) {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidSize, m.n)
	}
	if block < 1 || block > m.n || !isPow2(block) {
		return nil, fmt.Errorf("%w: block=%d for n=%d", ErrInvalidSize, block, m.n)
	}

	dst := make([]T, len(m.data))
	packRange(dst, m.data, m.n, block, 0, (m.n/block)*(m.n/block))
	return &Matrix[T]{n: m.n, block: block, layout: BlockRecursive, data: dst}, nil
}

// ToRowMajor returns a RowMajor copy of a BlockRecursive matrix. The
// source is left untouched. Together with ToBlockRecursive this is an
// exact round trip: no arithmetic touches the elements.
func ToRowMajor[T vec.Floats](m *Matrix[T]) (*Matrix[T], error) {
	if m.layout != BlockRecursive {
		return nil, fmt.Errorf("%w: source is %s", ErrInvalidLayout, m.layout)
	}
	if !isPow2(m.n) {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidSize, m.n)
	}

	dst := make([]T, len(m.data))
	unpackRange(dst, m.data, m.n, m.block, 0, (m.n/m.block)*(m.n/m.block))
	return &Matrix[T]{n: m.n, layout: RowMajor, data: dst}, nil
}
