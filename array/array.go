package array

import (
	"fmt"
	"iter"

	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/index"
)

// Array is an owned, column-major, N-dimensional array with per-dimension
// lower bounds. The buffer length always equals the product of the extents
// while the array holds data; it changes only through Move or Reset.
type Array[T any] struct {
	lower  []int
	size   []int
	stride []int
	data   []T
}

// shape validates a lower/size pair and returns copies plus the column-major strides.
func shape(phase errors.Phase, lower, size []int) (lb, sz, stride []int, n int, err error) {
	if len(lower) != len(size) {
		return nil, nil, nil, 0, errors.ShapeMismatch(phase, "%d lower bounds for %d extents", len(lower), len(size))
	}
	lb = append([]int(nil), lower...)
	sz = append([]int(nil), size...)
	stride = make([]int, len(sz))
	n = 1
	for i, s := range sz {
		if s < 0 {
			return nil, nil, nil, 0, errors.New(phase, errors.KindShape).
				Path(fmt.Sprintf("dim%d", i)).
				Value(s).
				Detail("negative extent %d", s).
				Build()
		}
		stride[i] = n
		n *= s
	}
	return lb, sz, stride, n, nil
}

// New creates a zero-filled array with the given lower bounds and extents.
func New[T any](lower, size []int) (*Array[T], error) {
	lb, sz, stride, n, err := shape(errors.PhaseConstruct, lower, size)
	if err != nil {
		return nil, err
	}
	return &Array[T]{lower: lb, size: sz, stride: stride, data: make([]T, n)}, nil
}

// FromSlice creates an array whose buffer is a copy of values in column-major order.
func FromSlice[T any](lower, size []int, values []T) (*Array[T], error) {
	a, err := New[T](lower, size)
	if err != nil {
		return nil, err
	}
	if len(values) != len(a.data) {
		return nil, errors.ShapeMismatch(errors.PhaseConstruct, "%d values for %d elements", len(values), len(a.data))
	}
	copy(a.data, values)
	return a, nil
}

// FromScalar creates a one-element rank-1 array with lower bound 1.
func FromScalar[T any](v T) *Array[T] {
	return &Array[T]{lower: []int{1}, size: []int{1}, stride: []int{1}, data: []T{v}}
}

// Vector creates a rank-1 array with lower bound 1 holding values.
func Vector[T any](values ...T) *Array[T] {
	return &Array[T]{
		lower:  []int{1},
		size:   []int{len(values)},
		stride: []int{1},
		data:   append([]T(nil), values...),
	}
}

// Filled creates an array with every element set to v.
func Filled[T any](lower, size []int, v T) (*Array[T], error) {
	a, err := New[T](lower, size)
	if err != nil {
		return nil, err
	}
	a.Fill(v)
	return a, nil
}

// Reshape copies src's elements, in traversal order, into a new array of a
// different shape with the same element count.
func Reshape[T any](lower, size []int, src *Array[T]) (*Array[T], error) {
	a, err := New[T](lower, size)
	if err != nil {
		return nil, err
	}
	if len(a.data) != len(src.data) {
		return nil, errors.ShapeMismatch(errors.PhaseConstruct, "cannot reshape %d elements into %v", len(src.data), size)
	}
	copy(a.data, src.data)
	return a, nil
}

// Generate builds an array by calling f once per index tuple in traversal order.
// The tuple passed to f is reused between calls.
func Generate[T any](lower, size []int, f func(idx []int) T) (*Array[T], error) {
	a, err := New[T](lower, size)
	if err != nil {
		return nil, err
	}
	i := 0
	for idx := range index.All(a.lower, a.size) {
		a.data[i] = f(idx)
		i++
	}
	return a, nil
}

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int { return len(a.size) }

// FlatSize returns the number of elements held.
func (a *Array[T]) FlatSize() int { return len(a.data) }

// LBound returns the lower bound of dimension d (0-based).
func (a *Array[T]) LBound(d int) int { return a.lower[d] }

// UBound returns the upper bound of dimension d (0-based).
func (a *Array[T]) UBound(d int) int { return a.lower[d] + a.size[d] - 1 }

// Extent returns the number of elements along dimension d (0-based).
func (a *Array[T]) Extent(d int) int { return a.size[d] }

// Lower returns a copy of the lower bounds.
func (a *Array[T]) Lower() []int { return append([]int(nil), a.lower...) }

// Sizes returns a copy of the extents.
func (a *Array[T]) Sizes() []int { return append([]int(nil), a.size...) }

// Strides returns a copy of the strides.
func (a *Array[T]) Strides() []int { return append([]int(nil), a.stride...) }

// Upper returns the upper bounds.
func (a *Array[T]) Upper() []int {
	ub := make([]int, len(a.size))
	for i := range ub {
		ub[i] = a.lower[i] + a.size[i] - 1
	}
	return ub
}

// ShapeArray returns the extents as a rank-1 array with lower bound 1.
func (a *Array[T]) ShapeArray() *Array[int] {
	return Vector(a.size...)
}

// Data exposes the underlying column-major buffer.
func (a *Array[T]) Data() []T { return a.data }

// Offset returns the flat buffer offset of an index tuple.
func (a *Array[T]) Offset(idx []int) (int, error) {
	return offset(a.lower, a.size, a.stride, idx)
}

func offset(lower, size, stride, idx []int) (int, error) {
	if len(idx) != len(size) {
		return 0, errors.ShapeMismatch(errors.PhaseAccess, "%d subscripts for rank %d", len(idx), len(size))
	}
	off := 0
	for i, v := range idx {
		rel := v - lower[i]
		if rel < 0 || rel >= size[i] {
			ub := make([]int, len(size))
			for j := range ub {
				ub[j] = lower[j] + size[j] - 1
			}
			return 0, errors.OutOfBounds(errors.PhaseAccess, idx, lower, ub)
		}
		off += rel * stride[i]
	}
	return off, nil
}

// At returns the element at idx.
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.Offset(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[off], nil
}

// Set stores v at idx.
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.Offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Ref returns a pointer to the element at idx. The pointer stays valid until
// the array is moved from or reset.
func (a *Array[T]) Ref(idx ...int) (*T, error) {
	off, err := a.Offset(idx)
	if err != nil {
		return nil, err
	}
	return &a.data[off], nil
}

// All yields each index tuple with a pointer to its element, in traversal order.
// The index slice is reused between iterations. An empty array yields nothing.
func (a *Array[T]) All() iter.Seq2[[]int, *T] {
	return func(yield func([]int, *T) bool) {
		if len(a.data) == 0 {
			return
		}
		i := 0
		for idx := range index.All(a.lower, a.size) {
			if !yield(idx, &a.data[i]) {
				return
			}
			i++
		}
	}
}

// Values yields the elements in traversal order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range a.data {
			if !yield(v) {
				return
			}
		}
	}
}

// Elems yields each element boxed as any, in traversal order.
func (a *Array[T]) Elems() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range a.data {
			if !yield(v) {
				return
			}
		}
	}
}

// ElemRefs yields a *T for each element boxed as any, in traversal order.
func (a *Array[T]) ElemRefs() iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := range a.data {
			if !yield(&a.data[i]) {
				return
			}
		}
	}
}

// Fill sets every element to v.
func (a *Array[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Clone returns a deep copy with the same shape.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		lower:  append([]int(nil), a.lower...),
		size:   append([]int(nil), a.size...),
		stride: append([]int(nil), a.stride...),
		data:   append([]T(nil), a.data...),
	}
}

// Assign overwrites a's elements with src's, element for element in traversal
// order. a keeps its own shape; only the element counts must agree.
func (a *Array[T]) Assign(src *Array[T]) error {
	if len(a.data) != len(src.data) {
		return errors.ShapeMismatch(errors.PhaseAccess, "assign %d elements to %d", len(src.data), len(a.data))
	}
	copy(a.data, src.data)
	return nil
}

// Move transfers src's shape and buffer to a and leaves src empty.
func (a *Array[T]) Move(src *Array[T]) {
	if a == src {
		return
	}
	*a = *src
	*src = Array[T]{}
}

// Reset releases the buffer. Views over a report a released error afterwards.
func (a *Array[T]) Reset() {
	*a = Array[T]{}
}

// Scalar returns the only element of a one-element array.
func (a *Array[T]) Scalar() (T, error) {
	if len(a.data) != 1 {
		var zero T
		return zero, errors.ShapeMismatch(errors.PhaseAccess, "array of %d elements used as scalar", len(a.data))
	}
	return a.data[0], nil
}

// String renders shape and contents for debugging.
func (a *Array[T]) String() string {
	return fmt.Sprintf("Array%v:%v%v", a.lower, a.Upper(), a.data)
}

// Truth reports whether every element of a logical array is true.
func Truth(a *Array[bool]) bool {
	for _, v := range a.data {
		if !v {
			return false
		}
	}
	return true
}
