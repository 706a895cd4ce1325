package array

import (
	"cmp"

	"github.com/wippyai/for90-runtime/errors"
)

// Integer is the set of integer element types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of real element types.
type Float interface {
	~float32 | ~float64
}

// Complex is the set of complex element types.
type Complex interface {
	~complex64 | ~complex128
}

// Number is every element type that supports arithmetic.
type Number interface {
	Integer | Float | Complex
}

// CompareOp selects a relational operator for Compare.
type CompareOp int

const (
	OpEQ CompareOp = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

func (op CompareOp) String() string {
	switch op {
	case OpEQ:
		return ".EQ."
	case OpNE:
		return ".NE."
	case OpLT:
		return ".LT."
	case OpLE:
		return ".LE."
	case OpGT:
		return ".GT."
	case OpGE:
		return ".GE."
	default:
		return "?"
	}
}

func (op CompareOp) apply(c int) bool {
	switch op {
	case OpEQ:
		return c == 0
	case OpNE:
		return c != 0
	case OpLT:
		return c < 0
	case OpLE:
		return c <= 0
	case OpGT:
		return c > 0
	case OpGE:
		return c >= 0
	}
	return false
}

// Map applies f to every element and returns the results with x's shape.
func Map[T, R any](x *Array[T], f func(T) R) *Array[R] {
	out := &Array[R]{
		lower:  append([]int(nil), x.lower...),
		size:   append([]int(nil), x.size...),
		stride: append([]int(nil), x.stride...),
		data:   make([]R, len(x.data)),
	}
	for i, v := range x.data {
		out.data[i] = f(v)
	}
	return out
}

// Zip combines x and y element for element in traversal order. The result has
// x's shape; the element counts must agree.
func Zip[T, U, R any](x *Array[T], y *Array[U], f func(T, U) R) (*Array[R], error) {
	if len(x.data) != len(y.data) {
		return nil, errors.ShapeMismatch(errors.PhaseAccess, "operands have %d and %d elements", len(x.data), len(y.data))
	}
	i := 0
	return Map(x, func(v T) R {
		r := f(v, y.data[i])
		i++
		return r
	}), nil
}

// ZipScalar combines every element of x with the scalar s.
func ZipScalar[T, U, R any](x *Array[T], s U, f func(T, U) R) *Array[R] {
	return Map(x, func(v T) R { return f(v, s) })
}

func add[T Number](a, b T) T { return a + b }
func sub[T Number](a, b T) T { return a - b }
func mul[T Number](a, b T) T { return a * b }
func div[T Number](a, b T) T { return a / b }

// Add returns x + y.
func Add[T Number](x, y *Array[T]) (*Array[T], error) { return Zip(x, y, add[T]) }

// Sub returns x - y.
func Sub[T Number](x, y *Array[T]) (*Array[T], error) { return Zip(x, y, sub[T]) }

// Mul returns the element-wise product x * y.
func Mul[T Number](x, y *Array[T]) (*Array[T], error) { return Zip(x, y, mul[T]) }

// Div returns the element-wise quotient x / y.
func Div[T Number](x, y *Array[T]) (*Array[T], error) { return Zip(x, y, div[T]) }

func update[T Number](x, y *Array[T], f func(T, T) T) error {
	if len(x.data) != len(y.data) {
		return errors.ShapeMismatch(errors.PhaseAccess, "operands have %d and %d elements", len(x.data), len(y.data))
	}
	for i := range x.data {
		x.data[i] = f(x.data[i], y.data[i])
	}
	return nil
}

func updateScalar[T Number](x *Array[T], s T, f func(T, T) T) {
	for i := range x.data {
		x.data[i] = f(x.data[i], s)
	}
}

// AddAssign performs x += y in place.
func AddAssign[T Number](x, y *Array[T]) error { return update(x, y, add[T]) }

// SubAssign performs x -= y in place.
func SubAssign[T Number](x, y *Array[T]) error { return update(x, y, sub[T]) }

// MulAssign performs x *= y in place.
func MulAssign[T Number](x, y *Array[T]) error { return update(x, y, mul[T]) }

// DivAssign performs x /= y in place.
func DivAssign[T Number](x, y *Array[T]) error { return update(x, y, div[T]) }

// AddAssignScalar performs x += s in place.
func AddAssignScalar[T Number](x *Array[T], s T) { updateScalar(x, s, add[T]) }

// SubAssignScalar performs x -= s in place.
func SubAssignScalar[T Number](x *Array[T], s T) { updateScalar(x, s, sub[T]) }

// MulAssignScalar performs x *= s in place.
func MulAssignScalar[T Number](x *Array[T], s T) { updateScalar(x, s, mul[T]) }

// DivAssignScalar performs x /= s in place.
func DivAssignScalar[T Number](x *Array[T], s T) { updateScalar(x, s, div[T]) }

// Compare applies a relational operator element for element.
func Compare[T cmp.Ordered](x, y *Array[T], op CompareOp) (*Array[bool], error) {
	return Zip(x, y, func(a, b T) bool { return op.apply(cmp.Compare(a, b)) })
}

// CompareScalar compares every element of x against s.
func CompareScalar[T cmp.Ordered](x *Array[T], s T, op CompareOp) *Array[bool] {
	return ZipScalar(x, s, func(a, b T) bool { return op.apply(cmp.Compare(a, b)) })
}

// Not returns the logical negation of x.
func Not(x *Array[bool]) *Array[bool] {
	return Map(x, func(v bool) bool { return !v })
}
