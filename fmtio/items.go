package fmtio

import (
	"iter"

	"github.com/wippyai/for90-runtime/index"
)

// Tuple is an ordered group of items dispatched left to right.
type Tuple []any

// Group is a lazily generated sequence of items, drained to exhaustion.
type Group interface {
	Items() iter.Seq[any]
}

// ImpliedDo generates items by evaluating Body at every index tuple of the
// box [Lower, Upper], first index fastest. Body returns the items for one
// iteration; for input they must be pointers.
//
//	// (a(i), i = 1, 3)
//	fmtio.ImpliedDo{Lower: []int{1}, Upper: []int{3}, Body: func(ix []int) []any {
//		v, _ := a.At(ix[0])
//		return []any{v}
//	}}
type ImpliedDo struct {
	Body  func(idx []int) []any
	Lower []int
	Upper []int
}

// Items evaluates Body lazily in column-major order. It yields nothing when
// Lower and Upper differ in length.
func (d ImpliedDo) Items() iter.Seq[any] {
	return func(yield func(any) bool) {
		if len(d.Lower) != len(d.Upper) {
			return
		}
		size := make([]int, len(d.Lower))
		for i := range size {
			size[i] = max(d.Upper[i]-d.Lower[i]+1, 0)
		}
		it := index.New(d.Lower, size)
		for it.Next() {
			for _, v := range d.Body(it.Index()) {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// elems is implemented by arrays and views for output.
type elems interface {
	Elems() iter.Seq[any]
}

// elemRefs is implemented by arrays and views for input.
type elemRefs interface {
	ElemRefs() iter.Seq[any]
}

// released is implemented by views that can lose their owner's storage.
type released interface {
	Err() error
}
