package format

import (
	"go.uber.org/zap"

	"github.com/wippyai/for90-runtime/errors"
)

// Cursor walks a Program's tokens for one I/O statement. Running past the
// last token while items remain restarts at ReversionStart.
type Cursor struct {
	prog  *Program
	pos   int
	wraps int
}

// Cursor returns a new cursor positioned at the first token.
func (p *Program) Cursor() *Cursor {
	return &Cursor{prog: p}
}

// Program returns the program the cursor walks.
func (c *Cursor) Program() *Program { return c.prog }

// Pos returns the index of the next token to be visited.
func (c *Cursor) Pos() int { return c.pos }

// Reversions returns how many times the cursor has restarted at ReversionStart.
func (c *Cursor) Reversions() int { return c.wraps }

// Done reports whether the cursor has visited every token of the program.
func (c *Cursor) Done() bool { return c.pos >= len(c.prog.Tokens) }

// NextData emits every control token before the next data descriptor and
// returns that descriptor. Colons are passed over since an item is pending.
// An error from emit stops the walk and is returned unchanged.
func (c *Cursor) NextData(emit func(Token) error) (Token, error) {
	if !c.prog.hasData {
		return Token{}, errors.New(errors.PhaseCompile, errors.KindFormatSyntax).
			Detail("format %q has no data descriptor for the item", c.prog.Source).
			Build()
	}
	for {
		if c.pos >= len(c.prog.Tokens) {
			if !c.prog.replayHasData {
				return Token{}, errors.New(errors.PhaseCompile, errors.KindFormatSyntax).
					Detail("reverted part of format %q has no data descriptor", c.prog.Source).
					Build()
			}
			c.pos = c.prog.ReversionStart
			c.wraps++
			Logger().Debug("format reversion",
				zap.String("format", c.prog.Source),
				zap.Int("restart", c.pos),
				zap.Int("reversions", c.wraps))
		}
		t := c.prog.Tokens[c.pos]
		c.pos++
		if t.Kind.IsData() {
			return t, nil
		}
		if t.Kind == Colon {
			continue
		}
		if err := emit(t); err != nil {
			return Token{}, err
		}
	}
}

// Drain emits control tokens up to the next data descriptor, a colon, or the
// end of the program, whichever comes first. It never restarts. Call it once
// the item list is exhausted to finish the record.
func (c *Cursor) Drain(emit func(Token) error) error {
	for c.pos < len(c.prog.Tokens) {
		t := c.prog.Tokens[c.pos]
		if t.Kind.IsData() || t.Kind == Colon {
			return nil
		}
		c.pos++
		if err := emit(t); err != nil {
			return err
		}
	}
	return nil
}
