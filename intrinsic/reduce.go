package intrinsic

import (
	"slices"

	"github.com/wippyai/for90-runtime/array"
	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/index"
)

// shaped is the part of an array's surface the reductions need.
type shaped interface {
	Rank() int
	Lower() []int
	Sizes() []int
	FlatSize() int
}

func checkMask(a shaped, mask *array.Array[bool]) error {
	if mask == nil {
		return nil
	}
	if !slices.Equal(mask.Sizes(), a.Sizes()) {
		return errors.New(errors.PhaseReduce, errors.KindShape).
			Path("mask").
			Detail("mask extents %v do not match array extents %v", mask.Sizes(), a.Sizes()).
			Build()
	}
	return nil
}

// checkDim validates a 1-based dim and returns it 0-based.
func checkDim(a shaped, dim int) (int, error) {
	if dim < 1 || dim > a.Rank() {
		return 0, errors.New(errors.PhaseReduce, errors.KindShape).
			Path("dim").
			Value(dim).
			Detail("dim %d outside 1:%d", dim, a.Rank()).
			Build()
	}
	return dim - 1, nil
}

// reducedShape returns a's lower bounds and extents with dimension d removed.
func reducedShape(a shaped, d int) (lower, size []int) {
	lower = slices.Delete(a.Lower(), d, d+1)
	size = slices.Delete(a.Sizes(), d, d+1)
	return lower, size
}

// reducedOffset maps a source tuple to the flat offset of its slot in a
// result with dimension d dropped.
func reducedOffset(idx, lower, rstride []int, d int) int {
	off, k := 0, 0
	for i, v := range idx {
		if i == d {
			continue
		}
		off += (v - lower[i]) * rstride[k]
		k++
	}
	return off
}

func masked(mask *array.Array[bool], i int) bool {
	return mask != nil && !mask.Data()[i]
}

// Fold combines every participating element into initial in traversal order.
// A nil mask means every element participates.
func Fold[T, A any](op func(A, T) A, initial A, a *array.Array[T], mask *array.Array[bool]) (A, error) {
	if err := checkMask(a, mask); err != nil {
		return initial, err
	}
	acc := initial
	for i, v := range a.Data() {
		if masked(mask, i) {
			continue
		}
		acc = op(acc, v)
	}
	return acc, nil
}

// FoldDim folds along dimension dim (1-based). initial supplies one starting
// value per slot and must have a's shape with dim removed; it is not modified.
func FoldDim[T, A any](op func(A, T) A, initial *array.Array[A], a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[A], error) {
	d, err := checkDim(a, dim)
	if err != nil {
		return nil, err
	}
	if err := checkMask(a, mask); err != nil {
		return nil, err
	}
	_, size := reducedShape(a, d)
	if !slices.Equal(initial.Sizes(), size) {
		return nil, errors.New(errors.PhaseReduce, errors.KindShape).
			Path("initial").
			Detail("initial extents %v, want %v", initial.Sizes(), size).
			Build()
	}

	out := initial.Clone()
	acc := out.Data()
	lower, rstride := a.Lower(), out.Strides()
	data := a.Data()
	i := 0
	for idx := range index.All(lower, a.Sizes()) {
		if !masked(mask, i) {
			off := reducedOffset(idx, lower, rstride, d)
			acc[off] = op(acc[off], data[i])
		}
		i++
	}
	return out, nil
}

// foldDimFrom folds along dim starting every slot at the same value.
func foldDimFrom[T, A any](op func(A, T) A, initial A, a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[A], error) {
	d, err := checkDim(a, dim)
	if err != nil {
		return nil, err
	}
	lower, size := reducedShape(a, d)
	start, err := array.Filled(lower, size, initial)
	if err != nil {
		return nil, err
	}
	return FoldDim(op, start, a, dim, mask)
}

func add[T array.Number](acc, v T) T { return acc + v }
func mul[T array.Number](acc, v T) T { return acc * v }
func and(acc, v bool) bool          { return acc && v }
func or(acc, v bool) bool           { return acc || v }

func count(acc int, v bool) int {
	if v {
		return acc + 1
	}
	return acc
}

// Sum adds the participating elements.
func Sum[T array.Number](a *array.Array[T], mask *array.Array[bool]) (T, error) {
	return Fold(add[T], 0, a, mask)
}

// SumDim adds along dimension dim.
func SumDim[T array.Number](a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[T], error) {
	return foldDimFrom(add[T], 0, a, dim, mask)
}

// Product multiplies the participating elements.
func Product[T array.Number](a *array.Array[T], mask *array.Array[bool]) (T, error) {
	return Fold(mul[T], 1, a, mask)
}

// ProductDim multiplies along dimension dim.
func ProductDim[T array.Number](a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[T], error) {
	return foldDimFrom(mul[T], 1, a, dim, mask)
}

// All reports whether every element is true.
func All(a *array.Array[bool]) bool {
	v, _ := Fold(and, true, a, nil)
	return v
}

// AllDim reduces with logical AND along dimension dim.
func AllDim(a *array.Array[bool], dim int) (*array.Array[bool], error) {
	return foldDimFrom(and, true, a, dim, nil)
}

// Any reports whether some element is true.
func Any(a *array.Array[bool]) bool {
	v, _ := Fold(or, false, a, nil)
	return v
}

// AnyDim reduces with logical OR along dimension dim.
func AnyDim(a *array.Array[bool], dim int) (*array.Array[bool], error) {
	return foldDimFrom(or, false, a, dim, nil)
}

// Count returns the number of true elements.
func Count(a *array.Array[bool]) int {
	v, _ := Fold(count, 0, a, nil)
	return v
}

// CountDim counts true elements along dimension dim.
func CountDim(a *array.Array[bool], dim int) (*array.Array[int], error) {
	return foldDimFrom(count, 0, a, dim, nil)
}

// Merge selects from t where mask is true and from f elsewhere. The result has
// t's shape; all three element counts must agree.
func Merge[T any](t, f *array.Array[T], mask *array.Array[bool]) (*array.Array[T], error) {
	if t.FlatSize() != f.FlatSize() || t.FlatSize() != mask.FlatSize() {
		return nil, errors.ShapeMismatch(errors.PhaseReduce,
			"merge of %d, %d and mask of %d elements", t.FlatSize(), f.FlatSize(), mask.FlatSize())
	}
	out := t.Clone()
	fd, md := f.Data(), mask.Data()
	for i := range out.Data() {
		if !md[i] {
			out.Data()[i] = fd[i]
		}
	}
	return out, nil
}

// LBound returns the lower bound of dimension dim (1-based).
func LBound[T any](a *array.Array[T], dim int) (int, error) {
	d, err := checkDim(a, dim)
	if err != nil {
		return 0, err
	}
	return a.LBound(d), nil
}

// UBound returns the upper bound of dimension dim (1-based).
func UBound[T any](a *array.Array[T], dim int) (int, error) {
	d, err := checkDim(a, dim)
	if err != nil {
		return 0, err
	}
	return a.UBound(d), nil
}

// Size returns the extent of dimension dim (1-based), or the total element
// count when dim is 0.
func Size[T any](a *array.Array[T], dim int) (int, error) {
	if dim == 0 {
		return a.FlatSize(), nil
	}
	d, err := checkDim(a, dim)
	if err != nil {
		return 0, err
	}
	return a.Extent(d), nil
}

// Shape returns the extents as a rank-1 array.
func Shape[T any](a *array.Array[T]) *array.Array[int] {
	return a.ShapeArray()
}
