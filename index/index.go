package index

import "iter"

// Step advances cur by one position in column-major order within the box
// [lower, lower+size). It returns the number of dimensions that wrapped back
// to their lower bound (the carry) and false once the last tuple has been passed.
// After a false return cur holds the first tuple again.
func Step(cur, lower, size []int) (carry int, ok bool) {
	for d := range cur {
		cur[d]++
		if cur[d] < lower[d]+size[d] {
			return carry, true
		}
		cur[d] = lower[d]
		carry++
	}
	return carry, false
}

// Count returns the number of tuples in a box with the given extents.
func Count(size []int) int {
	n := 1
	for _, s := range size {
		if s <= 0 {
			return 0
		}
		n *= s
	}
	return n
}

// Iterator is a restartable odometer over a fixed box.
type Iterator struct {
	lower   []int
	size    []int
	cur     []int
	carry   int
	started bool
	done    bool
}

// New creates an iterator over the box [lower, lower+size). The slices are copied.
func New(lower, size []int) *Iterator {
	it := &Iterator{
		lower: append([]int(nil), lower...),
		size:  append([]int(nil), size...),
		cur:   make([]int, len(lower)),
	}
	it.Reset()
	return it
}

// Reset rewinds the iterator to the first tuple.
func (it *Iterator) Reset() {
	copy(it.cur, it.lower)
	it.carry = 0
	it.started = false
	it.done = Count(it.size) == 0
}

// Next advances to the next tuple and reports whether one is available.
// The first call positions the iterator on the first tuple.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		return true
	}
	var ok bool
	it.carry, ok = Step(it.cur, it.lower, it.size)
	if !ok {
		it.done = true
	}
	return ok
}

// Index returns the current tuple. The slice is reused by subsequent calls to Next.
func (it *Iterator) Index() []int {
	return it.cur
}

// Carry returns how many dimensions wrapped on the most recent step.
func (it *Iterator) Carry() int {
	return it.carry
}

// All yields every tuple of the box in column-major order.
// The yielded slice is reused between iterations; copy it to retain it.
func All(lower, size []int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if Count(size) == 0 {
			return
		}
		cur := append([]int(nil), lower...)
		for {
			if !yield(cur) {
				return
			}
			if _, ok := Step(cur, lower, size); !ok {
				return
			}
		}
	}
}
