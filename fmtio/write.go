package fmtio

import (
	"bufio"
	"io"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/format"
	"github.com/wippyai/for90-runtime/unit"
)

type writer struct {
	out *bufio.Writer
	cur *format.Cursor
	walker
}

// Write performs one output statement. Items are dispatched against prog in
// order; a nil prog selects list-directed (free) format, which separates
// values with tabs and ends the statement with a newline. Output produced
// before a failing item is still written.
func Write(w io.Writer, prog *format.Program, items ...any) error {
	s := &writer{out: bufio.NewWriter(w)}
	s.walker = walker{scalar: s.put, phase: errors.PhaseWrite}
	if prog != nil {
		s.cur = prog.Cursor()
	}

	var err error
	for _, it := range items {
		if err = s.item(it); err != nil {
			break
		}
	}
	if err == nil {
		if s.cur != nil {
			err = s.cur.Drain(s.control)
			// a statement stopped early still ends its record
			if err == nil && !s.cur.Done() && prog.TrailingNewline {
				s.out.WriteByte('\n')
			}
		} else {
			s.out.WriteByte('\n')
		}
	}
	if ferr := s.out.Flush(); ferr != nil && err == nil {
		err = errors.IO(errors.PhaseWrite, ferr, "write record")
	}

	if err != nil {
		Logger().Debug("write failed", zap.Int("items", s.count), zap.Error(err))
	} else if s.cur != nil && s.cur.Reversions() > 0 {
		Logger().Debug("write reverted format",
			zap.String("format", prog.Source),
			zap.Int("items", s.count),
			zap.Int("reversions", s.cur.Reversions()))
	}
	return err
}

// Sprint performs Write into a string.
func Sprint(prog *format.Program, items ...any) (string, error) {
	var b strings.Builder
	err := Write(&b, prog, items...)
	return b.String(), err
}

// WriteUnit performs Write on the stream connected to unit n of t.
func WriteUnit(t *unit.Table, n int, prog *format.Program, items ...any) error {
	w, err := t.Output(n)
	if err != nil {
		return err
	}
	return Write(w, prog, items...)
}

// Print writes to the standard output unit of the default table.
func Print(prog *format.Program, items ...any) error {
	return WriteUnit(unit.Default(), unit.Stdout, prog, items...)
}

func (s *writer) control(t format.Token) error {
	switch t.Kind {
	case format.Skip:
		s.out.WriteString(strings.Repeat(" ", t.Width))
	case format.Literal:
		s.out.WriteString(t.Text)
	case format.Newline:
		s.out.WriteByte('\n')
	}
	return nil
}

func (s *writer) put(v reflect.Value) error {
	if s.cur == nil {
		s.out.WriteString(free(v))
		s.out.WriteByte('\t')
		return nil
	}
	if classify(v.Kind()) == classComplex {
		c := v.Complex()
		if err := s.one(reflect.ValueOf(real(c))); err != nil {
			return err
		}
		return s.one(reflect.ValueOf(imag(c)))
	}
	return s.one(v)
}

func (s *writer) one(v reflect.Value) error {
	t, err := s.cur.NextData(s.control)
	if err != nil {
		return err
	}
	if !accepts(t.Kind, classify(v.Kind())) {
		e := errors.TypeMismatch(errors.PhaseWrite, v.Type().String(), t.String())
		e.Path = s.path()
		return e
	}
	s.out.WriteString(edit(t, v))
	return nil
}
