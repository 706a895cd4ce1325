package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseWrite,
				Kind:       KindTypeMismatch,
				Path:       []string{"item", "2", "elem"},
				GoType:     "string",
				Descriptor: "I5",
				Detail:     "cannot convert",
			},
			contains: []string{"[write]", "type_mismatch", "item.2.elem", "string", "I5", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseAccess,
				Kind:  KindIndex,
			},
			contains: []string{"[access]", "index"},
		},
		{
			name: "descriptor only",
			err: &Error{
				Phase:      PhaseRead,
				Kind:       KindConversion,
				Descriptor: "F8.2",
				Detail:     "bad digits",
			},
			contains: []string{"[read]", "descriptor F8.2 - bad digits"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseWrite,
				Kind:   KindIO,
				Detail: "write record",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[write]", "io", "write record", "caused by", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseRead,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseConstruct,
		Kind:  KindShape,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseConstruct, Kind: KindShape}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseSlice, Kind: KindShape}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseConstruct, Kind: KindIndex}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseConstruct, Kind: KindShape}
	if !errors.Is(fmt.Errorf("wrapped: %w", err), target) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseWrite, KindTypeMismatch).
		Path("item", "name").
		GoType("string").
		Descriptor("I3").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "int", "string").
		Build()

	if err.Phase != PhaseWrite {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseWrite)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "item" || err.Path[1] != "name" {
		t.Errorf("Path = %v, want [item name]", err.Path)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.Descriptor != "I3" {
		t.Errorf("Descriptor = %v, want 'I3'", err.Descriptor)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected int, got string" {
		t.Errorf("Detail = %v, want 'expected int, got string'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("ShapeMismatch", func(t *testing.T) {
		err := ShapeMismatch(PhaseConstruct, "%d values for %d elements", 5, 6)
		if err.Kind != KindShape {
			t.Errorf("Kind = %v, want %v", err.Kind, KindShape)
		}
		if err.Detail != "5 values for 6 elements" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		idx := []int{3, 1}
		err := OutOfBounds(PhaseAccess, idx, []int{1, 1}, []int{2, 2})
		if err.Kind != KindIndex {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIndex)
		}
		idx[0] = 9
		if got := err.Value.([]int); got[0] != 3 {
			t.Errorf("Value aliases caller slice: %v", got)
		}
		if !containsSubstring(err.Detail, "[3 1]") {
			t.Errorf("Detail = %q, should contain index", err.Detail)
		}
	})

	t.Run("FormatSyntax", func(t *testing.T) {
		err := FormatSyntax("(I3", 3, "unmatched '('")
		if err.Kind != KindFormatSyntax || err.Phase != PhaseCompile {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if err.Value != 3 {
			t.Errorf("Value = %v, want 3", err.Value)
		}
	})

	t.Run("IO", func(t *testing.T) {
		err := IO(PhaseRead, io.ErrUnexpectedEOF, "read field")
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Error("IO error should unwrap to the stream error")
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseWrite, "bool", "I5")
		if err.GoType != "bool" || err.Descriptor != "I5" {
			t.Errorf("GoType=%v Descriptor=%v", err.GoType, err.Descriptor)
		}
	})

	t.Run("Conversion", func(t *testing.T) {
		err := Conversion(PhaseRead, "I3", "abc", nil)
		if err.Kind != KindConversion || err.Value != "abc" {
			t.Errorf("got %v %v", err.Kind, err.Value)
		}
	})

	t.Run("Released", func(t *testing.T) {
		if Released(PhaseAccess).Kind != KindReleased {
			t.Error("Released kind")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseUnit, "unit 12", 12)
		if err.Kind != KindNotFound || err.Detail != "unit 12 not found" {
			t.Errorf("got %v %q", err.Kind, err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseConfig, KindInvalidInput, cause, "load")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep cause")
		}
	})
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"shape", ShapeMismatch(PhaseSlice, "rank"), IsShape, true},
		{"shape wrapped", fmt.Errorf("ctx: %w", ShapeMismatch(PhaseSlice, "rank")), IsShape, true},
		{"shape vs index", OutOfBounds(PhaseAccess, nil, nil, nil), IsShape, false},
		{"index", OutOfBounds(PhaseAccess, nil, nil, nil), IsIndex, true},
		{"format", FormatSyntax("(", 0, "x"), IsFormatSyntax, true},
		{"io", IO(PhaseWrite, io.EOF, "x"), IsIO, true},
		{"plain error", io.EOF, IsIO, false},
		{"nil", nil, IsShape, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
