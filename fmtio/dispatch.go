package fmtio

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/wippyai/for90-runtime/errors"
)

// walker flattens items into scalars in dispatch order: tuples and groups
// left to right, arrays in traversal order, Go slices by index.
type walker struct {
	scalar func(v reflect.Value) error
	phase  errors.Phase
	input  bool
	count  int
}

func (w *walker) path() []string {
	return []string{"item", strconv.Itoa(w.count + 1)}
}

func (w *walker) item(x any) error {
	switch v := x.(type) {
	case nil:
		return errors.InvalidInput(w.phase, w.path(), "nil item")
	case Tuple:
		for _, it := range v {
			if err := w.item(it); err != nil {
				return err
			}
		}
		return nil
	case ImpliedDo:
		if len(v.Lower) != len(v.Upper) {
			return errors.InvalidInput(w.phase, w.path(),
				fmt.Sprintf("implied-do has %d lower and %d upper bounds", len(v.Lower), len(v.Upper)))
		}
		return w.group(v)
	case Group:
		return w.group(v)
	}

	if r, ok := x.(released); ok {
		if err := r.Err(); err != nil {
			return err
		}
	}
	if w.input {
		if a, ok := x.(elemRefs); ok {
			for p := range a.ElemRefs() {
				if err := w.item(p); err != nil {
					return err
				}
			}
			return nil
		}
	} else if a, ok := x.(elems); ok {
		for e := range a.Elems() {
			if err := w.item(e); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errors.InvalidInput(w.phase, w.path(), "nil pointer item")
		}
		rv = rv.Elem()
	} else if w.input && rv.Kind() != reflect.Slice {
		return errors.New(w.phase, errors.KindInvalidInput).
			Path(w.path()...).
			GoType(rv.Type().String()).
			Detail("input item must be a pointer").
			Build()
	}

	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		for i := range rv.Len() {
			if err := w.value(rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return w.value(rv)
}

func (w *walker) group(g Group) error {
	for it := range g.Items() {
		if err := w.item(it); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) value(v reflect.Value) error {
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		v = reflect.ValueOf(string(v.Bytes()))
	}
	if classify(v.Kind()) == classNone {
		e := errors.Unsupported(w.phase, "not an I/O item")
		e.Path, e.GoType = w.path(), v.Type().String()
		return e
	}
	err := w.scalar(v)
	w.count++
	return err
}
