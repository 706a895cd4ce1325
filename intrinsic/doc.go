// Package intrinsic provides the array reduction and inquiry intrinsics.
//
// Every reduction is a fold over traversal order, optionally gated by a
// logical mask of the same extents. The Dim forms take a 1-based dimension
// number, as the source language does, and return an array of the input's
// shape with that dimension removed. Reducing a rank-1 array along dim 1
// yields a rank-0 array holding one element.
//
//	total, _ := intrinsic.Sum(a, nil)
//	cols, _ := intrinsic.SumDim(a, 1, nil)
//	where, _ := intrinsic.MaxLoc(a, positive)
//
// MaxLoc and MinLoc keep the first visited element on ties and return zeros
// when no element participates.
package intrinsic
