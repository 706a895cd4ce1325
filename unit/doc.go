// Package unit maps I/O unit numbers to connected streams.
//
// A Table starts either empty or with the standard units preconnected:
// 5 for input, 6 for output and 0 for errors. Further units are connected to
// caller-supplied streams with Connect or to files with Open, and released
// with Disconnect. NewUnit hands out negative numbers that never collide with
// connected units.
//
//	t := unit.NewStandardTable(os.Stdin, os.Stdout, os.Stderr)
//	n := t.NewUnit()
//	if err := t.Open(n, "out.dat", unit.ActionWrite); err != nil {
//		return err
//	}
//	defer t.Disconnect(n)
//
// Observers are notified when units are connected and disconnected.
package unit
