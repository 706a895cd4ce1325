package array

import (
	"iter"

	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/index"
)

// View borrows an owner's buffer under its own shape. The element count must
// match the owner's. A view never frees; every access first checks that the
// owner still holds the buffer the view was created over.
type View[T any] struct {
	owner  *Array[T]
	base   *T
	n      int
	lower  []int
	size   []int
	stride []int
}

// NewView creates a view of owner with a different shape of equal element count.
func NewView[T any](owner *Array[T], lower, size []int) (*View[T], error) {
	lb, sz, stride, n, err := shape(errors.PhaseConstruct, lower, size)
	if err != nil {
		return nil, err
	}
	if owner == nil || n != len(owner.data) {
		have := 0
		if owner != nil {
			have = len(owner.data)
		}
		return nil, errors.ShapeMismatch(errors.PhaseConstruct, "view of %d elements over %d", n, have)
	}
	v := &View[T]{owner: owner, n: n, lower: lb, size: sz, stride: stride}
	if n > 0 {
		v.base = &owner.data[0]
	}
	return v, nil
}

// View returns a view of a with its own shape.
func (a *Array[T]) View(lower, size []int) (*View[T], error) {
	return NewView(a, lower, size)
}

func (v *View[T]) buffer() ([]T, error) {
	d := v.owner.data
	if len(d) != v.n || (v.n > 0 && &d[0] != v.base) {
		return nil, errors.Released(errors.PhaseAccess)
	}
	return d, nil
}

// Valid reports whether the owner still holds the viewed buffer.
func (v *View[T]) Valid() bool {
	_, err := v.buffer()
	return err == nil
}

// Rank returns the number of dimensions.
func (v *View[T]) Rank() int { return len(v.size) }

// FlatSize returns the number of elements viewed.
func (v *View[T]) FlatSize() int { return v.n }

// LBound returns the lower bound of dimension d (0-based).
func (v *View[T]) LBound(d int) int { return v.lower[d] }

// UBound returns the upper bound of dimension d (0-based).
func (v *View[T]) UBound(d int) int { return v.lower[d] + v.size[d] - 1 }

// Extent returns the number of elements along dimension d (0-based).
func (v *View[T]) Extent(d int) int { return v.size[d] }

// Lower returns a copy of the lower bounds.
func (v *View[T]) Lower() []int { return append([]int(nil), v.lower...) }

// Sizes returns a copy of the extents.
func (v *View[T]) Sizes() []int { return append([]int(nil), v.size...) }

// At returns the element at idx.
func (v *View[T]) At(idx ...int) (T, error) {
	var zero T
	d, err := v.buffer()
	if err != nil {
		return zero, err
	}
	off, err := offset(v.lower, v.size, v.stride, idx)
	if err != nil {
		return zero, err
	}
	return d[off], nil
}

// Set stores x at idx in the owner's buffer.
func (v *View[T]) Set(x T, idx ...int) error {
	d, err := v.buffer()
	if err != nil {
		return err
	}
	off, err := offset(v.lower, v.size, v.stride, idx)
	if err != nil {
		return err
	}
	d[off] = x
	return nil
}

// Ref returns a pointer to the element at idx.
func (v *View[T]) Ref(idx ...int) (*T, error) {
	d, err := v.buffer()
	if err != nil {
		return nil, err
	}
	off, err := offset(v.lower, v.size, v.stride, idx)
	if err != nil {
		return nil, err
	}
	return &d[off], nil
}

// All yields each index tuple with a pointer to its element. It yields nothing
// if the owner's buffer has been released.
func (v *View[T]) All() iter.Seq2[[]int, *T] {
	return func(yield func([]int, *T) bool) {
		d, err := v.buffer()
		if err != nil || len(d) == 0 {
			return
		}
		i := 0
		for idx := range index.All(v.lower, v.size) {
			if !yield(idx, &d[i]) {
				return
			}
			i++
		}
	}
}

// Elems yields each element boxed as any, in traversal order.
func (v *View[T]) Elems() iter.Seq[any] {
	return func(yield func(any) bool) {
		d, err := v.buffer()
		if err != nil {
			return
		}
		for _, x := range d {
			if !yield(x) {
				return
			}
		}
	}
}

// ElemRefs yields a *T for each element boxed as any, in traversal order.
func (v *View[T]) ElemRefs() iter.Seq[any] {
	return func(yield func(any) bool) {
		d, err := v.buffer()
		if err != nil {
			return
		}
		for i := range d {
			if !yield(&d[i]) {
				return
			}
		}
	}
}

// Err returns the released error if the owner no longer holds the buffer.
func (v *View[T]) Err() error {
	_, err := v.buffer()
	return err
}

// Clone copies the viewed elements into a new owned array with the view's shape.
func (v *View[T]) Clone() (*Array[T], error) {
	d, err := v.buffer()
	if err != nil {
		return nil, err
	}
	return &Array[T]{
		lower:  append([]int(nil), v.lower...),
		size:   append([]int(nil), v.size...),
		stride: append([]int(nil), v.stride...),
		data:   append([]T(nil), d...),
	}, nil
}
