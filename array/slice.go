package array

import (
	"fmt"

	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/index"
)

// SliceSpec selects one dimension of a section: either the whole declared
// range or from:to:step.
type SliceSpec struct {
	Full bool
	From int
	To   int
	Step int
}

// Full selects the whole declared range of a dimension.
func Full() SliceSpec { return SliceSpec{Full: true} }

// Range selects from:to with unit step.
func Range(from, to int) SliceSpec { return SliceSpec{From: from, To: to, Step: 1} }

// RangeStep selects from:to:step. A negative step walks downwards.
func RangeStep(from, to, step int) SliceSpec { return SliceSpec{From: from, To: to, Step: step} }

// String renders the spec in section notation.
func (s SliceSpec) String() string {
	if s.Full {
		return ":"
	}
	if s.Step == 1 {
		return fmt.Sprintf("%d:%d", s.From, s.To)
	}
	return fmt.Sprintf("%d:%d:%d", s.From, s.To, s.Step)
}

// extent returns how many indices from:to:step selects.
func (s SliceSpec) extent() int {
	switch {
	case s.Step > 0 && s.To >= s.From:
		return (s.To-s.From)/s.Step + 1
	case s.Step < 0 && s.From >= s.To:
		return (s.From-s.To)/(-s.Step) + 1
	}
	return 0
}

// Slice copies the section of a selected by specs into a new array with lower
// bounds 1. One spec is required per dimension.
func Slice[T any](a *Array[T], specs ...SliceSpec) (*Array[T], error) {
	if len(specs) != a.Rank() {
		return nil, errors.ShapeMismatch(errors.PhaseSlice, "%d slice specs for rank %d", len(specs), a.Rank())
	}
	if len(a.data) == 0 && a.Rank() == 0 {
		return &Array[T]{}, nil
	}

	from := make([]int, len(specs))
	step := make([]int, len(specs))
	size := make([]int, len(specs))
	ones := make([]int, len(specs))
	for d, s := range specs {
		if s.Full {
			s = Range(a.LBound(d), a.UBound(d))
		}
		if s.Step == 0 {
			return nil, errors.New(errors.PhaseSlice, errors.KindShape).
				Path(fmt.Sprintf("dim%d", d)).
				Detail("zero step in %s", s).
				Build()
		}
		n := s.extent()
		if n > 0 {
			last := s.From + (n-1)*s.Step
			lo, hi := a.LBound(d), a.UBound(d)
			if s.From < lo || s.From > hi || last < lo || last > hi {
				return nil, errors.New(errors.PhaseSlice, errors.KindIndex).
					Path(fmt.Sprintf("dim%d", d)).
					Value(s).
					Detail("section %s outside bounds %d:%d", s, lo, hi).
					Build()
			}
		}
		from[d], step[d], size[d], ones[d] = s.From, s.Step, n, 1
	}

	out, err := New[T](ones, size)
	if err != nil {
		return nil, err
	}
	i := 0
	for idx := range index.All(ones, size) {
		off := 0
		for d, o := range idx {
			off += (from[d] + (o-1)*step[d] - a.lower[d]) * a.stride[d]
		}
		out.data[i] = a.data[off]
		i++
	}
	return out, nil
}

// Concat flattens arrays in argument order into a rank-1 array with lower bound 1.
func Concat[T any](arrays ...*Array[T]) *Array[T] {
	n := 0
	for _, a := range arrays {
		n += len(a.data)
	}
	data := make([]T, 0, n)
	for _, a := range arrays {
		data = append(data, a.data...)
	}
	return &Array[T]{lower: []int{1}, size: []int{n}, stride: []int{1}, data: data}
}
