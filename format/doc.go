// Package format compiles FORMAT edit descriptor lists and walks them with
// reversion.
//
// Compile turns descriptor text into a flat Program. Repeat counts on single
// descriptors and on parenthesized groups are expanded at compile time, so a
// Program is just a token list plus the reversion offsets:
//
//	prog, err := format.Compile("(I3,2(1X,F6.2),/)")
//
// Supported descriptors are Iw[.m], Fw.d, Ew.d, Dw.d, Lw, A[w], nX, quoted
// literals with doubled-quote escapes, Hollerith nH constants, the separators
// ',' and '/', the ':' terminator and '\' or '$' to suppress the record
// terminator that is otherwise appended to every program.
//
// A Cursor hands out data descriptors one item at a time. When it reaches the
// end while items remain it restarts at the most recently opened parenthesis,
// or at the start when there is none:
//
//	c := prog.Cursor()
//	d, err := c.NextData(emitControl)
//	...
//	err = c.Drain(emitControl)
//
// Malformed specifications fail with a format syntax error from the errors
// package and never yield a partial Program.
package format
