package intrinsic

import (
	"math"
	"slices"
	"testing"

	"github.com/wippyai/for90-runtime/array"
	"github.com/wippyai/for90-runtime/errors"
)

func grid(t *testing.T, values ...int) *array.Array[int] {
	t.Helper()
	a, err := array.FromSlice([]int{1, 1}, []int{2, 3}, values)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return a
}

func logical(t *testing.T, size []int, values ...bool) *array.Array[bool] {
	t.Helper()
	lower := make([]int, len(size))
	for i := range lower {
		lower[i] = 1
	}
	a, err := array.FromSlice(lower, size, values)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return a
}

func TestSum(t *testing.T) {
	a := grid(t, 1, 2, 3, 4, 5, 6)

	total, err := Sum(a, nil)
	if err != nil || total != 21 {
		t.Errorf("Sum = %d, %v; want 21", total, err)
	}

	mask := logical(t, []int{2, 3}, true, false, true, false, true, false)
	odd, err := Sum(a, mask)
	if err != nil || odd != 9 {
		t.Errorf("masked Sum = %d, %v; want 9", odd, err)
	}

	folded, _ := Fold(func(acc string, v int) string { return acc + string(rune('0'+v)) }, "", a, nil)
	if folded != "123456" {
		t.Errorf("Fold order = %q, want 123456", folded)
	}

	cols, err := SumDim(a, 1, nil)
	if err != nil {
		t.Fatalf("SumDim: %v", err)
	}
	if !slices.Equal(cols.Sizes(), []int{3}) || !slices.Equal(cols.Data(), []int{3, 7, 11}) {
		t.Errorf("SumDim(1) = %v", cols)
	}

	rows, err := SumDim(a, 2, nil)
	if err != nil {
		t.Fatalf("SumDim: %v", err)
	}
	if !slices.Equal(rows.Data(), []int{9, 12}) {
		t.Errorf("SumDim(2) = %v", rows)
	}
}

func TestSumDim_RankOne(t *testing.T) {
	v := array.Vector(1.5, 2.5)
	r, err := SumDim(v, 1, nil)
	if err != nil {
		t.Fatalf("SumDim: %v", err)
	}
	if r.Rank() != 0 || r.FlatSize() != 1 {
		t.Fatalf("rank=%d flatsize=%d, want rank 0 with one element", r.Rank(), r.FlatSize())
	}
	if s, _ := r.Scalar(); s != 4 {
		t.Errorf("value = %v, want 4", s)
	}
}

func TestReduce_Errors(t *testing.T) {
	a := grid(t, 1, 2, 3, 4, 5, 6)

	if _, err := SumDim(a, 3, nil); !errors.IsShape(err) {
		t.Errorf("bad dim err = %v", err)
	}
	if _, err := SumDim(a, 0, nil); !errors.IsShape(err) {
		t.Errorf("dim 0 err = %v", err)
	}
	if _, err := Sum(a, array.Vector(true, true)); !errors.IsShape(err) {
		t.Errorf("bad mask err = %v", err)
	}
	if _, err := MaxLoc(a, logical(t, []int{3, 2}, true, true, true, true, true, true)); !errors.IsShape(err) {
		t.Errorf("transposed mask err = %v", err)
	}
}

func TestProductAndLogical(t *testing.T) {
	a := grid(t, 1, 2, 3, 4, 5, 6)
	p, _ := Product(a, nil)
	if p != 720 {
		t.Errorf("Product = %d, want 720", p)
	}
	pd, _ := ProductDim(a, 1, nil)
	if !slices.Equal(pd.Data(), []int{2, 12, 30}) {
		t.Errorf("ProductDim = %v", pd.Data())
	}

	m := logical(t, []int{2, 2}, true, false, true, true)
	if All(m) || !Any(m) || Count(m) != 3 {
		t.Errorf("All=%v Any=%v Count=%d", All(m), Any(m), Count(m))
	}
	all, _ := AllDim(m, 1)
	if !slices.Equal(all.Data(), []bool{false, true}) {
		t.Errorf("AllDim = %v", all.Data())
	}
	anyd, _ := AnyDim(m, 2)
	if !slices.Equal(anyd.Data(), []bool{true, true}) {
		t.Errorf("AnyDim = %v", anyd.Data())
	}
	cnt, _ := CountDim(m, 1)
	if !slices.Equal(cnt.Data(), []int{1, 2}) {
		t.Errorf("CountDim = %v", cnt.Data())
	}
}

func TestFoldDim_KeepsLowerBounds(t *testing.T) {
	a, _ := array.FromSlice([]int{0, 5}, []int{2, 2}, []int{1, 2, 3, 4})
	r, err := SumDim(a, 1, nil)
	if err != nil {
		t.Fatalf("SumDim: %v", err)
	}
	if r.LBound(0) != 5 {
		t.Errorf("result lower bound = %d, want 5", r.LBound(0))
	}

	init := array.Vector(100, 200)
	out, err := FoldDim(func(acc, v int) int { return acc - v }, init, a, 1, nil)
	if err != nil {
		t.Fatalf("FoldDim: %v", err)
	}
	if !slices.Equal(out.Data(), []int{97, 193}) {
		t.Errorf("FoldDim = %v", out.Data())
	}
	if !slices.Equal(init.Data(), []int{100, 200}) {
		t.Error("FoldDim modified initial")
	}
	if _, err := FoldDim(func(acc, v int) int { return acc }, array.Vector(1), a, 1, nil); !errors.IsShape(err) {
		t.Errorf("initial shape mismatch err = %v", err)
	}
}

func TestExtrema(t *testing.T) {
	a := grid(t, 4, 9, 9, 1, 1, 7)

	mx, _ := MaxVal(a, nil)
	mn, _ := MinVal(a, nil)
	if mx != 9 || mn != 1 {
		t.Errorf("MaxVal=%d MinVal=%d", mx, mn)
	}

	none := logical(t, []int{2, 3}, false, false, false, false, false, false)
	if v, _ := MaxVal(a, none); v != -math.MaxInt {
		t.Errorf("empty MaxVal = %d, want -huge", v)
	}
	if v, _ := MinVal(a, none); v != math.MaxInt {
		t.Errorf("empty MinVal = %d, want huge", v)
	}

	cols, _ := MaxValDim(a, 1, nil)
	if !slices.Equal(cols.Data(), []int{9, 9, 7}) {
		t.Errorf("MaxValDim = %v", cols.Data())
	}
	rows, _ := MinValDim(a, 2, nil)
	if !slices.Equal(rows.Data(), []int{1, 1}) {
		t.Errorf("MinValDim = %v", rows.Data())
	}
}

func TestMaxLoc(t *testing.T) {
	a := grid(t, 4, 9, 9, 1, 1, 7)

	tests := []struct {
		name string
		fn   func(*array.Array[int], *array.Array[bool]) (*array.Array[int], error)
		mask *array.Array[bool]
		want []int
	}{
		{"max first tie", MaxLoc[int], nil, []int{2, 1}},
		{"min first tie", MinLoc[int], nil, []int{2, 2}},
		{"max masked", MaxLoc[int], logical(t, []int{2, 3}, true, false, false, true, true, true), []int{2, 3}},
		{"max none", MaxLoc[int], logical(t, []int{2, 3}, false, false, false, false, false, false), []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(a, tt.mask)
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if got.LBound(0) != 1 || !slices.Equal(got.Data(), tt.want) {
				t.Errorf("got %v, want %v", got.Data(), tt.want)
			}
		})
	}
}

func TestMaxLoc_Empty(t *testing.T) {
	src := array.Vector(3, 1, 2)
	var dst array.Array[int]
	dst.Move(src)

	got, err := MaxLoc(src, nil)
	if err != nil {
		t.Fatalf("MaxLoc: %v", err)
	}
	if got.FlatSize() != 0 {
		t.Errorf("MaxLoc of empty array = %v", got.Data())
	}

	zero, err := array.New[int]([]int{1}, []int{0})
	if err != nil {
		t.Fatal(err)
	}
	got, err = MinLoc(zero, nil)
	if err != nil {
		t.Fatalf("MinLoc: %v", err)
	}
	if !slices.Equal(got.Data(), []int{0}) {
		t.Errorf("MinLoc of zero-extent vector = %v, want [0]", got.Data())
	}
	if s, _ := Sum(src, nil); s != 0 {
		t.Errorf("Sum of empty array = %d", s)
	}
}

func TestMaxLocDim(t *testing.T) {
	a := grid(t, 4, 9, 9, 1, 1, 7)

	byCol, err := MaxLocDim(a, 1, nil)
	if err != nil {
		t.Fatalf("MaxLocDim: %v", err)
	}
	if !slices.Equal(byCol.Data(), []int{2, 1, 2}) {
		t.Errorf("MaxLocDim(1) = %v", byCol.Data())
	}

	byRow, _ := MinLocDim(a, 2, nil)
	if !slices.Equal(byRow.Data(), []int{3, 2}) {
		t.Errorf("MinLocDim(2) = %v", byRow.Data())
	}

	mask := logical(t, []int{2, 3}, false, false, true, true, false, true)
	masked, _ := MaxLocDim(a, 1, mask)
	if !slices.Equal(masked.Data(), []int{0, 1, 2}) {
		t.Errorf("masked MaxLocDim = %v", masked.Data())
	}
}

func TestMerge(t *testing.T) {
	tsrc := grid(t, 1, 2, 3, 4, 5, 6)
	fsrc := grid(t, 8, 9, 0, 1, 2, 3)
	mask := logical(t, []int{2, 3}, false, true, true, true, true, false)

	out, err := Merge(tsrc, fsrc, mask)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !slices.Equal(out.Data(), []int{8, 2, 3, 4, 5, 3}) {
		t.Errorf("Merge = %v", out.Data())
	}
	if _, err := Merge(tsrc, array.Vector(1, 2), mask); !errors.IsShape(err) {
		t.Errorf("Merge mismatch err = %v", err)
	}
}

func TestInquiry(t *testing.T) {
	a, _ := array.New[float32]([]int{0, -3}, []int{4, 2})
	if lb, _ := LBound(a, 2); lb != -3 {
		t.Errorf("LBound = %d", lb)
	}
	if ub, _ := UBound(a, 1); ub != 3 {
		t.Errorf("UBound = %d", ub)
	}
	if n, _ := Size(a, 0); n != 8 {
		t.Errorf("Size = %d", n)
	}
	if n, _ := Size(a, 2); n != 2 {
		t.Errorf("Size(2) = %d", n)
	}
	if _, err := Size(a, 3); !errors.IsShape(err) {
		t.Errorf("Size(3) err = %v", err)
	}
	if !slices.Equal(Shape(a).Data(), []int{4, 2}) {
		t.Errorf("Shape = %v", Shape(a).Data())
	}
}

func TestHuge(t *testing.T) {
	if Huge[int8]() != math.MaxInt8 {
		t.Errorf("Huge[int8] = %d", Huge[int8]())
	}
	if Huge[uint16]() != math.MaxUint16 {
		t.Errorf("Huge[uint16] = %d", Huge[uint16]())
	}
	if Huge[float32]() != math.MaxFloat32 {
		t.Errorf("Huge[float32] = %v", Huge[float32]())
	}
	if lowest[uint8]() != 0 || lowest[int32]() != -math.MaxInt32 {
		t.Errorf("lowest: %d %d", lowest[uint8](), lowest[int32]())
	}
}
