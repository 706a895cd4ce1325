package format

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/format/internal/token"
)

// Default precisions used when F, E or D omit .d.
const (
	DefaultRealPrecision     = 6
	DefaultExponentPrecision = 6
)

type frame struct {
	start  int
	repeat int
	pos    int
}

type compiler struct {
	src      string
	tokens   []token.Token
	pos      int
	out      []Token
	stack    []frame
	repeat   int
	repeatAt int
	revStart int
	revEnd   int
	noNL     bool
}

// Compile parses a format specification into a Program. The surrounding
// parentheses are optional. No partial program is returned on error.
func Compile(src string) (*Program, error) {
	c := &compiler{src: src, tokens: token.Tokenize(src), revEnd: -1, repeatAt: -1}
	if err := c.run(); err != nil {
		Logger().Debug("format rejected", zap.String("format", src), zap.Error(err))
		return nil, err
	}

	prog := &Program{
		Source:          src,
		Tokens:          c.out,
		ReversionStart:  c.revStart,
		ReversionEnd:    c.revEnd,
		TrailingNewline: !c.noNL,
	}
	if prog.ReversionEnd < 0 {
		prog.ReversionEnd = len(c.out)
	}
	if prog.TrailingNewline {
		prog.Tokens = append(prog.Tokens, Token{Kind: Newline})
	}
	for i, t := range prog.Tokens {
		if t.Kind.IsData() {
			prog.hasData = true
			if i >= prog.ReversionStart {
				prog.replayHasData = true
			}
		}
	}

	Logger().Debug("format compiled",
		zap.String("format", src),
		zap.Int("tokens", len(prog.Tokens)),
		zap.Int("reversion_start", prog.ReversionStart),
		zap.Int("reversion_end", prog.ReversionEnd))
	return prog, nil
}

// MustCompile is Compile for formats known to be valid. It panics on error.
func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (c *compiler) fail(pos int, detail string) error {
	return errors.FormatSyntax(c.src, pos, detail)
}

func (c *compiler) peek() *token.Token {
	if c.pos >= len(c.tokens) {
		return nil
	}
	return &c.tokens[c.pos]
}

func (c *compiler) next() *token.Token {
	if c.pos >= len(c.tokens) {
		return nil
	}
	t := &c.tokens[c.pos]
	c.pos++
	return t
}

// takeRepeat returns the pending repeat count, or 1 when none is pending.
func (c *compiler) takeRepeat() int {
	n := 1
	if c.repeatAt >= 0 {
		n = c.repeat
	}
	c.repeat, c.repeatAt = 0, -1
	return n
}

func (c *compiler) dangling() error {
	if c.repeatAt >= 0 {
		return c.fail(c.repeatAt, "repeat count not followed by a descriptor")
	}
	return nil
}

func (c *compiler) emit(t Token, n int) {
	for range n {
		c.out = append(c.out, t)
	}
}

func (c *compiler) run() error {
	for {
		t := c.next()
		if t == nil {
			break
		}

		switch t.Type {
		case token.Number:
			if err := c.dangling(); err != nil {
				return err
			}
			n, err := strconv.Atoi(t.Value)
			if err != nil {
				return c.fail(t.Pos, "invalid repeat count")
			}
			if n == 0 {
				return c.fail(t.Pos, "zero repeat count")
			}
			c.repeat, c.repeatAt = n, t.Pos

		case token.LParen:
			n := c.takeRepeat()
			c.stack = append(c.stack, frame{start: len(c.out), repeat: n, pos: t.Pos})
			c.revStart = len(c.out)
			c.revEnd = -1

		case token.RParen:
			if err := c.dangling(); err != nil {
				return err
			}
			if len(c.stack) == 0 {
				return c.fail(t.Pos, "unmatched ')'")
			}
			f := c.stack[len(c.stack)-1]
			c.stack = c.stack[:len(c.stack)-1]
			group := append([]Token(nil), c.out[f.start:]...)
			for range f.repeat - 1 {
				c.out = append(c.out, group...)
			}
			if f.start == c.revStart && c.revEnd < 0 {
				c.revEnd = len(c.out)
			}

		case token.Comma:
			if err := c.dangling(); err != nil {
				return err
			}

		case token.Slash:
			c.emit(Token{Kind: Newline}, c.takeRepeat())

		case token.Colon:
			if err := c.dangling(); err != nil {
				return err
			}
			c.emit(Token{Kind: Colon}, 1)

		case token.Backslash:
			if err := c.dangling(); err != nil {
				return err
			}
			c.noNL = true

		case token.String:
			c.emit(Token{Kind: Literal, Text: t.Value}, c.takeRepeat())

		case token.Letter:
			if err := c.descriptor(t); err != nil {
				return err
			}

		case token.Dot:
			return c.fail(t.Pos, "'.' outside a descriptor")

		default:
			return c.fail(t.Pos, "unterminated literal or malformed text "+strconv.Quote(t.Value))
		}
	}

	if err := c.dangling(); err != nil {
		return err
	}
	if len(c.stack) > 0 {
		return c.fail(c.stack[len(c.stack)-1].pos, "unmatched '('")
	}
	return nil
}

// widthPrecision reads an optional w and an optional .d after a descriptor letter.
func (c *compiler) widthPrecision() (w, d int, hasW, hasD bool, err error) {
	if t := c.peek(); t != nil && t.Type == token.Number {
		c.next()
		w, _ = strconv.Atoi(t.Value)
		hasW = true
	}
	if t := c.peek(); t != nil && t.Type == token.Dot {
		c.next()
		n := c.peek()
		if n == nil || n.Type != token.Number {
			return 0, 0, false, false, c.fail(t.Pos, "'.' not followed by digits")
		}
		c.next()
		d, _ = strconv.Atoi(n.Value)
		hasD = true
	}
	return w, d, hasW, hasD, nil
}

func (c *compiler) descriptor(t *token.Token) error {
	letter := t.Value[0]
	n := c.takeRepeat()

	if letter == 'X' {
		// the repeat count is the number of blanks
		c.emit(Token{Kind: Skip, Width: n}, 1)
		return nil
	}

	w, d, hasW, hasD, err := c.widthPrecision()
	if err != nil {
		return err
	}
	tok := Token{Letter: letter, Width: w, Precision: d, HasPrecision: hasD}
	switch letter {
	case 'I':
		tok.Kind = Integer
	case 'F':
		tok.Kind = Real
		if !hasD {
			tok.Precision = DefaultRealPrecision
		}
	case 'E', 'D':
		tok.Kind = Exponent
		if !hasD {
			tok.Precision = DefaultExponentPrecision
		}
	case 'L':
		tok.Kind = Logical
		if hasD {
			return c.fail(t.Pos, "precision not allowed on L")
		}
		if !hasW {
			tok.Width = 1
		}
	case 'A':
		tok.Kind = Character
		if hasD {
			return c.fail(t.Pos, "precision not allowed on A")
		}
	default:
		return c.fail(t.Pos, "unknown descriptor "+strconv.Quote(string(letter)))
	}
	if (tok.Kind == Real || tok.Kind == Exponent) && !hasW {
		return c.fail(t.Pos, "missing width for "+string(letter))
	}
	if hasW && w == 0 && tok.Kind != Integer {
		return c.fail(t.Pos, "zero width for "+string(letter))
	}

	c.emit(tok, n)
	return nil
}
