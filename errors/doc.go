// Package errors provides structured error types for the for90-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: location path, Go type, format descriptor,
// and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWrite, errors.KindTypeMismatch).
//		Path("item", "3").
//		GoType("string").
//		Descriptor("I5").
//		Detail("integer descriptor cannot print text").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ShapeMismatch(errors.PhaseConstruct, "%d values for %d elements", 5, 6)
//	err := errors.OutOfBounds(errors.PhaseAccess, []int{3, 1}, []int{1, 1}, []int{2, 2})
//
// The Kinds realize the runtime's error taxonomy: KindShape, KindIndex,
// KindFormatSyntax and KindIO, with predicates IsShape, IsIndex, IsFormatSyntax
// and IsIO. All errors implement the standard error interface and support errors.Is/As.
package errors
