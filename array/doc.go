// Package array implements column-major N-dimensional arrays with arbitrary
// per-dimension lower bounds.
//
// An Array owns its buffer. Element (i1,...,in) lives at flat offset
// Σ (ik - lb[k]) * stride[k], with stride[0] = 1 and
// stride[k] = stride[k-1] * size[k-1]. Subscripts are always bounds checked
// and an out-of-range tuple returns an index error.
//
// A View borrows an owner's buffer under a different shape of equal element
// count, the way a dummy argument re-dimensions its actual argument:
//
//	a, _ := array.FromSlice([]int{1, 1}, []int{2, 3}, []int{1, 2, 3, 4, 5, 6})
//	v, _ := a.View([]int{0}, []int{6})
//	x, _ := v.At(2) // 3
//
// Sections copy into fresh storage with lower bounds 1:
//
//	row, _ := array.Slice(a, array.Range(2, 2), array.Full())
//
// Dimension numbers accepted by methods are 0-based. The intrinsic package
// provides the 1-based DIM forms.
package array
