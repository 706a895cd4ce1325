package format

import (
	"strconv"
	"strings"
)

// Kind identifies what a compiled token does.
type Kind int

const (
	// Data descriptors consume one item each.
	Integer   Kind = iota // Iw[.m]
	Real                  // Fw.d
	Exponent              // Ew.d, Dw.d
	Logical               // Lw
	Character             // A[w]

	// Control tokens consume nothing.
	Skip    // nX
	Literal // 'text', "text", nHtext
	Newline // / and the record terminator
	Colon   // :
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Exponent:
		return "exponent"
	case Logical:
		return "logical"
	case Character:
		return "character"
	case Skip:
		return "skip"
	case Literal:
		return "literal"
	case Newline:
		return "newline"
	case Colon:
		return "colon"
	}
	return "unknown"
}

// IsData reports whether the kind consumes an I/O item.
func (k Kind) IsData() bool {
	return k <= Character
}

// Token is one compiled edit descriptor with repeat counts already expanded.
// Width 0 on I and A means the natural width of the value.
type Token struct {
	Kind         Kind
	Width        int
	Precision    int
	HasPrecision bool
	Letter       byte
	Text         string
}

// String renders the token in descriptor notation.
func (t Token) String() string {
	switch t.Kind {
	case Skip:
		return strconv.Itoa(t.Width) + "X"
	case Literal:
		return "'" + strings.ReplaceAll(t.Text, "'", "''") + "'"
	case Newline:
		return "/"
	case Colon:
		return ":"
	}
	var b strings.Builder
	b.WriteByte(t.Letter)
	if t.Width > 0 {
		b.WriteString(strconv.Itoa(t.Width))
	}
	if t.HasPrecision {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(t.Precision))
	}
	return b.String()
}

// Program is a compiled format specification.
//
// ReversionStart is the token offset of the most recently opened parenthesis
// (0 when there is none). ReversionEnd is the offset just past the expansion
// of its matching close parenthesis, or the end of the descriptors when there
// is no group. When a cursor runs off the end while items remain, it restarts
// at ReversionStart.
type Program struct {
	Source          string
	Tokens          []Token
	ReversionStart  int
	ReversionEnd    int
	TrailingNewline bool
	hasData         bool
	replayHasData   bool
}

// HasData reports whether any token consumes an item.
func (p *Program) HasData() bool {
	return p.hasData
}

// String renders the expanded token list in descriptor notation.
func (p *Program) String() string {
	parts := make([]string, len(p.Tokens))
	for i, t := range p.Tokens {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Conversion renders one pass over the program as a printf-style conversion
// string, one verb per data descriptor. Formatting the pass's items with
// fmt.Sprintf reproduces the written record for I, F, L, A, X, literals and
// slashes, given a logical item as the rune 'T' or 'F'. E and D have no printf
// equivalent of the 0.dddE+nn form and render as %w.de.
func (p *Program) Conversion() string {
	var b strings.Builder
	for _, t := range p.Tokens {
		switch t.Kind {
		case Integer:
			b.WriteByte('%')
			writeWidth(&b, t)
			b.WriteByte('d')
		case Real:
			b.WriteByte('%')
			writeWidth(&b, t)
			b.WriteByte('f')
		case Exponent:
			b.WriteByte('%')
			writeWidth(&b, t)
			b.WriteByte('e')
		case Logical:
			b.WriteByte('%')
			writeWidth(&b, t)
			b.WriteByte('c')
		case Character:
			// Aw truncates to w, which printf spells as precision.
			b.WriteByte('%')
			if t.Width > 0 {
				w := strconv.Itoa(t.Width)
				b.WriteString(w + "." + w)
			}
			b.WriteByte('s')
		case Skip:
			b.WriteString(strings.Repeat(" ", t.Width))
		case Literal:
			b.WriteString(strings.ReplaceAll(t.Text, "%", "%%"))
		case Newline:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func writeWidth(b *strings.Builder, t Token) {
	if t.Width > 0 {
		b.WriteString(strconv.Itoa(t.Width))
	}
	if t.HasPrecision {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(t.Precision))
	}
}
