// Package index enumerates multi-dimensional index tuples in column-major order.
//
// The odometer advances dimension 0 fastest: when a dimension passes its upper
// bound it resets to its lower bound and carries into the next dimension. Step is
// the stateless form used by the array and reduction code; Iterator wraps it for
// callers that need to restart, and All exposes it as an iter.Seq.
//
// A rank-0 shape yields exactly one empty tuple. A shape with any zero extent
// yields nothing.
package index
