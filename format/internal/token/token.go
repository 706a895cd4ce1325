package token

import "unicode"

type Type int

const (
	LParen Type = iota
	RParen
	Comma
	Slash
	Colon
	Backslash
	Dot
	Number
	Letter
	String
	Illegal
)

func (t Type) String() string {
	switch t {
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	case Slash:
		return "'/'"
	case Colon:
		return "':'"
	case Backslash:
		return "'\\'"
	case Dot:
		return "'.'"
	case Number:
		return "number"
	case Letter:
		return "descriptor"
	case String:
		return "string"
	case Illegal:
		return "illegal"
	}
	return "unknown"
}

// Token is one lexeme of a format specification. Pos is the byte offset of
// its first character. Letters are upper-cased; String holds literal text
// with quoting removed.
type Token struct {
	Value string
	Type  Type
	Pos   int
}

// Tokenize splits a format specification into tokens. Blanks are ignored
// outside literals, including between the digits of a number. Hollerith
// constants (nH followed by n characters) become String tokens. An
// unterminated literal or a short Hollerith constant produces a final
// Illegal token holding the rest of the input.
func Tokenize(input string) []Token {
	var tokens []Token
	b := []byte(input)

	for i := 0; i < len(b); i++ {
		c := b[i]

		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			continue
		}

		switch c {
		case '(':
			tokens = append(tokens, Token{"(", LParen, i})
			continue
		case ')':
			tokens = append(tokens, Token{")", RParen, i})
			continue
		case ',':
			tokens = append(tokens, Token{",", Comma, i})
			continue
		case '/':
			tokens = append(tokens, Token{"/", Slash, i})
			continue
		case ':':
			tokens = append(tokens, Token{":", Colon, i})
			continue
		case '\\', '$':
			tokens = append(tokens, Token{string(c), Backslash, i})
			continue
		case '.':
			tokens = append(tokens, Token{".", Dot, i})
			continue
		}

		// Quoted literal; a doubled quote stands for one quote character
		if c == '\'' || c == '"' {
			start := i
			var text []byte
			closed := false
			for i++; i < len(b); i++ {
				if b[i] == c {
					if i+1 < len(b) && b[i+1] == c {
						text = append(text, c)
						i++
						continue
					}
					closed = true
					break
				}
				text = append(text, b[i])
			}
			if !closed {
				tokens = append(tokens, Token{input[start:], Illegal, start})
				return tokens
			}
			tokens = append(tokens, Token{string(text), String, start})
			continue
		}

		if c >= '0' && c <= '9' {
			start := i
			var digits []byte
			for i < len(b) && (b[i] >= '0' && b[i] <= '9' || b[i] == ' ') {
				if b[i] != ' ' {
					digits = append(digits, b[i])
				}
				i++
			}
			i--
			tokens = append(tokens, Token{string(digits), Number, start})
			continue
		}

		if c < unicode.MaxASCII && unicode.IsLetter(rune(c)) {
			up := byte(unicode.ToUpper(rune(c)))
			if up == 'H' && len(tokens) > 0 && tokens[len(tokens)-1].Type == Number {
				prev := tokens[len(tokens)-1]
				n := 0
				for _, d := range prev.Value {
					n = n*10 + int(d-'0')
				}
				if n == 0 || i+1+n > len(b) {
					tokens[len(tokens)-1] = Token{input[prev.Pos:], Illegal, prev.Pos}
					return tokens
				}
				tokens[len(tokens)-1] = Token{input[i+1 : i+1+n], String, prev.Pos}
				i += n
				continue
			}
			tokens = append(tokens, Token{string(up), Letter, i})
			continue
		}

		tokens = append(tokens, Token{string(c), Illegal, i})
		return tokens
	}

	return tokens
}
