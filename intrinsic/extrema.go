package intrinsic

import (
	"math"
	"reflect"

	"github.com/wippyai/for90-runtime/array"
	"github.com/wippyai/for90-runtime/index"
)

// Real is the set of ordered numeric element types.
type Real interface {
	array.Integer | array.Float
}

// Huge returns the largest finite value of T.
func Huge[T Real]() T {
	var z T
	v := reflect.ValueOf(&z).Elem()
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(int64(1)<<(v.Type().Bits()-1) - 1)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(math.MaxUint64 >> (64 - v.Type().Bits()))
	case reflect.Float32:
		v.SetFloat(math.MaxFloat32)
	case reflect.Float64:
		v.SetFloat(math.MaxFloat64)
	}
	return z
}

// lowest is -Huge for signed types and 0 for unsigned ones.
func lowest[T Real]() T {
	h := Huge[T]()
	var zero T
	if zero-1 < zero {
		return -h
	}
	return zero
}

func greater[T Real](a, b T) bool { return a > b }
func less[T Real](a, b T) bool    { return a < b }

func pick[T Real](better func(a, b T) bool) func(T, T) T {
	return func(acc, v T) T {
		if better(v, acc) {
			return v
		}
		return acc
	}
}

// MaxVal returns the largest participating element, or -Huge when none participate.
func MaxVal[T Real](a *array.Array[T], mask *array.Array[bool]) (T, error) {
	return Fold(pick(greater[T]), lowest[T](), a, mask)
}

// MaxValDim returns the largest element along dimension dim.
func MaxValDim[T Real](a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[T], error) {
	return foldDimFrom(pick(greater[T]), lowest[T](), a, dim, mask)
}

// MinVal returns the smallest participating element, or Huge when none participate.
func MinVal[T Real](a *array.Array[T], mask *array.Array[bool]) (T, error) {
	return Fold(pick(less[T]), Huge[T](), a, mask)
}

// MinValDim returns the smallest element along dimension dim.
func MinValDim[T Real](a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[T], error) {
	return foldDimFrom(pick(less[T]), Huge[T](), a, dim, mask)
}

// MaxLoc returns the index tuple of the first largest participating element as
// a rank-1 array of length rank. It is all zeros when nothing participates.
func MaxLoc[T Real](a *array.Array[T], mask *array.Array[bool]) (*array.Array[int], error) {
	return loc(greater[T], a, mask)
}

// MinLoc returns the index tuple of the first smallest participating element.
func MinLoc[T Real](a *array.Array[T], mask *array.Array[bool]) (*array.Array[int], error) {
	return loc(less[T], a, mask)
}

// MaxLocDim returns, for each slot of a with dim removed, the dim subscript of
// its first largest participating element, or 0 when none participate.
func MaxLocDim[T Real](a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[int], error) {
	return locDim(greater[T], a, dim, mask)
}

// MinLocDim is MaxLocDim for the smallest element.
func MinLocDim[T Real](a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[int], error) {
	return locDim(less[T], a, dim, mask)
}

func loc[T Real](better func(a, b T) bool, a *array.Array[T], mask *array.Array[bool]) (*array.Array[int], error) {
	if err := checkMask(a, mask); err != nil {
		return nil, err
	}
	out := array.Vector(make([]int, a.Rank())...)
	pos := out.Data()
	var best T
	seen := false
	data := a.Data()
	if len(data) == 0 {
		return out, nil
	}
	i := 0
	for idx := range index.All(a.Lower(), a.Sizes()) {
		if !masked(mask, i) && (!seen || better(data[i], best)) {
			copy(pos, idx)
			best = data[i]
			seen = true
		}
		i++
	}
	return out, nil
}

func locDim[T Real](better func(a, b T) bool, a *array.Array[T], dim int, mask *array.Array[bool]) (*array.Array[int], error) {
	d, err := checkDim(a, dim)
	if err != nil {
		return nil, err
	}
	if err := checkMask(a, mask); err != nil {
		return nil, err
	}
	lower, size := reducedShape(a, d)
	out, err := array.New[int](lower, size)
	if err != nil {
		return nil, err
	}
	pos := out.Data()
	best := make([]T, len(pos))
	seen := make([]bool, len(pos))
	rstride := out.Strides()
	srcLower := a.Lower()
	data := a.Data()
	i := 0
	for idx := range index.All(srcLower, a.Sizes()) {
		if !masked(mask, i) {
			off := reducedOffset(idx, srcLower, rstride, d)
			if !seen[off] || better(data[i], best[off]) {
				pos[off] = idx[d]
				best[off] = data[i]
				seen[off] = true
			}
		}
		i++
	}
	return out, nil
}
