package array

import (
	"slices"

	"github.com/wippyai/for90-runtime/index"
)

// Transpose reverses the dimension order of a in place. Lower bounds and
// extents are reversed and element (i1,...,in) moves to (in,...,i1).
func (a *Array[T]) Transpose() {
	if a.Rank() < 2 {
		return
	}
	lower := slices.Clone(a.lower)
	size := slices.Clone(a.size)
	slices.Reverse(lower)
	slices.Reverse(size)
	stride := make([]int, len(size))
	n := 1
	for i, s := range size {
		stride[i] = n
		n *= s
	}

	scratch := make([]T, len(a.data))
	src := 0
	last := len(stride) - 1
	for idx := range index.All(a.lower, a.size) {
		dst := 0
		for d, v := range idx {
			dst += (v - a.lower[d]) * stride[last-d]
		}
		scratch[dst] = a.data[src]
		src++
	}

	a.lower, a.size, a.stride, a.data = lower, size, stride, scratch
}

// Transpose returns a transposed copy of a.
func Transpose[T any](a *Array[T]) *Array[T] {
	t := a.Clone()
	t.Transpose()
	return t
}
