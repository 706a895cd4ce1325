package fmtio

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/for90-runtime/format"
)

// class is the scalar category an item falls into.
type class int

const (
	classNone class = iota
	classInt
	classUint
	classFloat
	classComplex
	classBool
	classString
)

func classify(k reflect.Kind) class {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classUint
	case reflect.Float32, reflect.Float64:
		return classFloat
	case reflect.Complex64, reflect.Complex128:
		return classComplex
	case reflect.Bool:
		return classBool
	case reflect.String:
		return classString
	}
	return classNone
}

func accepts(k format.Kind, c class) bool {
	switch k {
	case format.Integer:
		return c == classInt || c == classUint
	case format.Real, format.Exponent:
		return c == classFloat
	case format.Logical:
		return c == classBool
	case format.Character:
		return c == classString
	}
	return false
}

func justify(s string, w int) string {
	if w <= len(s) {
		return s
	}
	return strings.Repeat(" ", w-len(s)) + s
}

func logicalText(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// formatExponent renders v in the 0.ddddE+xx form with d significant digits.
func formatExponent(v float64, d int, letter byte) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	sign := ""
	if math.Signbit(v) && v != 0 {
		sign = "-"
	}
	digits := max(d, 1)

	mant := strings.Repeat("0", digits)
	exp := 0
	if v != 0 {
		s := strconv.FormatFloat(math.Abs(v), 'e', digits-1, 64)
		m, e, _ := strings.Cut(s, "e")
		mant = strings.Replace(m, ".", "", 1)
		exp, _ = strconv.Atoi(e)
		exp++
	}
	if d == 0 {
		mant = ""
	}

	if letter != 'D' {
		letter = 'E'
	}
	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("0.")
	b.WriteString(mant)
	if exp >= -99 && exp <= 99 {
		b.WriteByte(letter)
		fmt.Fprintf(&b, "%+03d", exp)
	} else {
		fmt.Fprintf(&b, "%+04d", exp)
	}
	return b.String()
}

// edit renders one scalar under a data descriptor.
func edit(t format.Token, v reflect.Value) string {
	switch t.Kind {
	case format.Integer:
		var s string
		if v.CanInt() {
			s = strconv.FormatInt(v.Int(), 10)
		} else {
			s = strconv.FormatUint(v.Uint(), 10)
		}
		if t.HasPrecision {
			neg := strings.HasPrefix(s, "-")
			digits := strings.TrimPrefix(s, "-")
			if len(digits) < t.Precision {
				digits = strings.Repeat("0", t.Precision-len(digits)) + digits
			}
			if neg {
				digits = "-" + digits
			}
			s = digits
		}
		return justify(s, t.Width)
	case format.Real:
		return justify(strconv.FormatFloat(v.Float(), 'f', t.Precision, 64), t.Width)
	case format.Exponent:
		return justify(formatExponent(v.Float(), t.Precision, t.Letter), t.Width)
	case format.Logical:
		return justify(logicalText(v.Bool()), t.Width)
	case format.Character:
		s := v.String()
		if t.Width == 0 {
			return s
		}
		if len(s) > t.Width {
			return s[:t.Width]
		}
		return justify(s, t.Width)
	}
	return ""
}

// free renders one scalar in list-directed form.
func free(v reflect.Value) string {
	switch classify(v.Kind()) {
	case classInt:
		return strconv.FormatInt(v.Int(), 10)
	case classUint:
		return strconv.FormatUint(v.Uint(), 10)
	case classFloat:
		return strconv.FormatFloat(v.Float(), 'f', 6, 64)
	case classComplex:
		c := v.Complex()
		return "(" + strconv.FormatFloat(real(c), 'f', 6, 64) + "," + strconv.FormatFloat(imag(c), 'f', 6, 64) + ")"
	case classBool:
		return logicalText(v.Bool())
	case classString:
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

// parseInto converts field text and stores it in the settable value v.
// It reports false when the text does not parse or does not fit.
func parseInto(v reflect.Value, text string) bool {
	switch classify(v.Kind()) {
	case classInt:
		n, err := strconv.ParseInt(strings.TrimPrefix(text, "+"), 10, 64)
		if err != nil || v.OverflowInt(n) {
			return false
		}
		v.SetInt(n)
	case classUint:
		n, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, 64)
		if err != nil || v.OverflowUint(n) {
			return false
		}
		v.SetUint(n)
	case classFloat:
		f, err := parseReal(text)
		if err != nil {
			return false
		}
		v.SetFloat(f)
	case classBool:
		b, ok := parseLogical(text)
		if !ok {
			return false
		}
		v.SetBool(b)
	case classString:
		v.SetString(text)
	default:
		return false
	}
	return true
}

// parseReal accepts Go float syntax plus D exponents.
func parseReal(text string) (float64, error) {
	text = strings.Map(func(r rune) rune {
		if r == 'd' || r == 'D' {
			return 'e'
		}
		return r
	}, text)
	return strconv.ParseFloat(text, 64)
}

// parseLogical accepts T, F, .TRUE., .false. and similar, by first letter.
func parseLogical(text string) (bool, bool) {
	text = strings.TrimPrefix(text, ".")
	if text == "" {
		return false, false
	}
	switch text[0] {
	case 'T', 't':
		return true, true
	case 'F', 'f':
		return false, true
	}
	return false, false
}
