package fmtio

import (
	"bufio"
	"io"
	"reflect"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/format"
	"github.com/wippyai/for90-runtime/unit"
)

type reader struct {
	in   io.RuneScanner
	cur  *format.Cursor
	last rune
	prev rune
	walker
}

// Read performs one input statement, storing into pointer items in order.
// A nil prog selects list-directed (free) format, where values are separated
// by blanks, tabs, newlines or commas. After the last item the rest of the
// current record is skipped.
//
// Pass an io.RuneScanner to keep buffered input between statements; any other
// reader is wrapped in a bufio.Reader for the duration of the call.
func Read(r io.Reader, prog *format.Program, items ...any) error {
	rs, ok := r.(io.RuneScanner)
	if !ok {
		rs = bufio.NewReader(r)
	}
	s := &reader{in: rs, last: '\n'}
	s.walker = walker{scalar: s.get, phase: errors.PhaseRead, input: true}
	if prog != nil {
		s.cur = prog.Cursor()
	}

	var err error
	for _, it := range items {
		if err = s.item(it); err != nil {
			break
		}
	}
	if err == nil && s.count > 0 {
		err = s.skipRecord()
	}
	if err != nil {
		Logger().Debug("read failed", zap.Int("items", s.count), zap.Error(err))
	}
	return err
}

// ReadUnit performs Read on the stream connected to unit n of t.
func ReadUnit(t *unit.Table, n int, prog *format.Program, items ...any) error {
	r, err := t.Input(n)
	if err != nil {
		return err
	}
	return Read(r, prog, items...)
}

// Sscan performs Read over a string.
func Sscan(input string, prog *format.Program, items ...any) error {
	return Read(strings.NewReader(input), prog, items...)
}

func (s *reader) readRune() (rune, error) {
	r, _, err := s.in.ReadRune()
	if err != nil {
		return 0, err
	}
	s.prev, s.last = s.last, r
	return r, nil
}

func (s *reader) unread() {
	s.in.UnreadRune()
	s.last = s.prev
}

func (s *reader) ioErr(err error) error {
	if err == io.EOF {
		return errors.New(errors.PhaseRead, errors.KindIO).
			Path(s.path()...).
			Cause(io.EOF).
			Detail("end of input").
			Build()
	}
	return errors.New(errors.PhaseRead, errors.KindIO).Path(s.path()...).Cause(err).Build()
}

// skipSpace consumes whitespace, newlines included.
func (s *reader) skipSpace(also string) error {
	for {
		r, err := s.readRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return s.ioErr(err)
		}
		if !unicode.IsSpace(r) && !strings.ContainsRune(also, r) {
			s.unread()
			return nil
		}
	}
}

// skipRecord consumes the rest of the current line unless the last rune
// read already ended it.
func (s *reader) skipRecord() error {
	if s.last == '\n' {
		return nil
	}
	for {
		r, err := s.readRune()
		if err == io.EOF || r == '\n' {
			return nil
		}
		if err != nil {
			return s.ioErr(err)
		}
	}
}

// endRecord consumes blanks up to and including the next newline.
func (s *reader) endRecord() error {
	for {
		r, err := s.readRune()
		if err == io.EOF || r == '\n' {
			return nil
		}
		if err != nil {
			return s.ioErr(err)
		}
		if r != ' ' && r != '\t' && r != '\r' {
			s.unread()
			return nil
		}
	}
}

// field reads up to width non-blank runes after skipping leading whitespace.
// Width 0 reads to the next whitespace.
func (s *reader) field(width int, stop string) (string, error) {
	if err := s.skipSpace(""); err != nil {
		return "", err
	}
	var b strings.Builder
	n := 0
	for width == 0 || n < width {
		r, err := s.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", s.ioErr(err)
		}
		if unicode.IsSpace(r) || strings.ContainsRune(stop, r) {
			s.unread()
			break
		}
		b.WriteRune(r)
		n++
	}
	if n == 0 {
		return "", s.ioErr(io.EOF)
	}
	return b.String(), nil
}

// freeField reads one list-directed value: a quoted string, a parenthesized
// complex constant, or a run of characters up to a separator.
func (s *reader) freeField() (string, error) {
	if err := s.skipSpace(","); err != nil {
		return "", err
	}
	r, err := s.readRune()
	if err != nil {
		return "", s.ioErr(err)
	}

	var closing rune
	switch r {
	case '\'', '"':
		closing = r
	case '(':
		closing = ')'
	default:
		s.unread()
		return s.field(0, ",")
	}

	var b strings.Builder
	if closing == ')' {
		b.WriteRune(r)
	}
	for {
		c, err := s.readRune()
		if err != nil {
			return "", s.ioErr(err)
		}
		if c == closing {
			if closing != ')' {
				if next, err := s.readRune(); err == nil {
					if next == closing {
						b.WriteRune(c)
						continue
					}
					s.unread()
				}
				return b.String(), nil
			}
			b.WriteRune(c)
			return b.String(), nil
		}
		b.WriteRune(c)
	}
}

func (s *reader) control(t format.Token) error {
	switch t.Kind {
	case format.Newline:
		return s.endRecord()
	case format.Skip:
		for range t.Width {
			r, err := s.readRune()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return s.ioErr(err)
			}
			if r == '\n' {
				s.unread()
				return nil
			}
		}
	case format.Literal:
		for _, want := range t.Text {
			if unicode.IsSpace(want) {
				if err := s.skipSpace(""); err != nil {
					return err
				}
				continue
			}
			got, err := s.readRune()
			if err != nil {
				return s.ioErr(err)
			}
			if got != want {
				return errors.New(errors.PhaseRead, errors.KindConversion).
					Path(s.path()...).
					Descriptor(t.String()).
					Value(string(got)).
					Detail("literal mismatch: got %q, want %q", got, want).
					Build()
			}
		}
	}
	return nil
}

func (s *reader) get(v reflect.Value) error {
	if !v.CanSet() {
		return errors.New(errors.PhaseRead, errors.KindInvalidInput).
			Path(s.path()...).
			GoType(v.Type().String()).
			Detail("input item is not assignable").
			Build()
	}

	if s.cur == nil {
		text, err := s.freeField()
		if err != nil {
			return err
		}
		if classify(v.Kind()) == classComplex {
			return s.setComplex(v, text)
		}
		if !parseInto(v, text) {
			return errors.Conversion(errors.PhaseRead, "*", text, nil)
		}
		return nil
	}

	if classify(v.Kind()) == classComplex {
		var parts [2]float64
		for i := range parts {
			t, text, err := s.next(classFloat, v)
			if err != nil {
				return err
			}
			f, perr := parseReal(text)
			if perr != nil {
				return errors.Conversion(errors.PhaseRead, t.String(), text, perr)
			}
			parts[i] = f
		}
		v.SetComplex(complex(parts[0], parts[1]))
		return nil
	}

	t, text, err := s.next(classify(v.Kind()), v)
	if err != nil {
		return err
	}
	if !parseInto(v, text) {
		return errors.Conversion(errors.PhaseRead, t.String(), text, nil)
	}
	return nil
}

// next advances to the next data descriptor, checks it accepts c and reads its field.
func (s *reader) next(c class, v reflect.Value) (format.Token, string, error) {
	t, err := s.cur.NextData(s.control)
	if err != nil {
		return t, "", err
	}
	if !accepts(t.Kind, c) {
		e := errors.TypeMismatch(errors.PhaseRead, v.Type().String(), t.String())
		e.Path = s.path()
		return t, "", e
	}
	text, err := s.field(t.Width, "")
	return t, text, err
}

func (s *reader) setComplex(v reflect.Value, text string) error {
	body := strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")
	re, im, ok := strings.Cut(body, ",")
	if !ok {
		return errors.Conversion(errors.PhaseRead, "*", text, nil)
	}
	rf, err := parseReal(strings.TrimSpace(re))
	if err != nil {
		return errors.Conversion(errors.PhaseRead, "*", text, err)
	}
	imf, err := parseReal(strings.TrimSpace(im))
	if err != nil {
		return errors.Conversion(errors.PhaseRead, "*", text, err)
	}
	v.SetComplex(complex(rf, imf))
	return nil
}
