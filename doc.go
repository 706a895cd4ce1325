// Package for90runtime is the support library for Go code translated from
// Fortran 90 sources.
//
// Translated programs need Fortran semantics that Go does not provide:
// arrays with arbitrary lower bounds stored in column-major order, section
// slicing, the array reduction intrinsics, and FORMAT driven input and output
// with reversion. This module provides them as a set of small packages.
//
// # Architecture Overview
//
//	for90runtime/
//	├── index/       Column-major odometer over multi-dimensional index boxes
//	├── array/       Owned arrays, borrowed views, slicing, transpose, element-wise ops
//	├── intrinsic/   SUM, PRODUCT, ALL, ANY, COUNT, MAXVAL, MINVAL, MAXLOC, MINLOC, MERGE
//	├── format/      FORMAT compiler and reverting descriptor cursor
//	├── fmtio/       Formatted and list-directed WRITE and READ statements
//	├── unit/        Logical unit table (preconnected 0, 5 and 6)
//	├── config/      YAML configuration for logging and units
//	├── errors/      Structured error types
//	└── cmd/fmtrun/  Command line tool and interactive FORMAT playground
//
// # Quick Start
//
// Build an array with Fortran bounds and print it:
//
//	a, _ := array.Generate([]int{0}, []int{5}, func(ix []int) int { return ix[0] * ix[0] })
//	total, _ := intrinsic.Sum(a, nil)
//	prog := format.MustCompile("(5I4,/,'sum=',I6)")
//	err := fmtio.Print(prog, a, total)
//
// Read values back with the same machinery:
//
//	var n int
//	var x float64
//	err := fmtio.ReadUnit(unit.Default(), unit.Stdin, format.MustCompile("(I5,F10.3)"), &n, &x)
//
// # Error Handling
//
// Every operation reports failures as *errors.Error values carrying the
// phase and kind of the failure, so callers can test them with errors.Is or
// the predicates in the errors package:
//
//	if errors.IsIndex(err) { ... }
//
// # Logging
//
// The format, fmtio and unit packages log through zap and are silent by
// default. Install a logger with their SetLogger functions, or build one from
// a config file with config.Config.NewLogger.
package for90runtime
