// Package fmtio executes formatted and list-directed I/O statements.
//
// An output statement pairs a compiled format.Program with a list of items:
//
//	prog := format.MustCompile("(I3,/)")
//	err := fmtio.Write(os.Stdout, prog, 1, 2, 3)
//
// Items are flattened into scalars before dispatch. Arrays and views are
// traversed in column-major order, Go slices by index, Tuple left to right,
// and any Group (such as ImpliedDo) until exhausted. Each scalar consumes the
// next data descriptor of the program, reverting when the program runs out.
// Complex values consume two real descriptors.
//
// A nil program selects list-directed format. Output writes each value
// followed by a tab and ends the statement with a newline; input accepts
// values separated by blanks, newlines or commas, quoted strings and
// parenthesized complex constants.
//
// Input items must be pointers, or arrays and views whose elements are
// stored through. A descriptor that does not match the Go kind of its item
// fails with a type mismatch error that names the item position.
package fmtio
