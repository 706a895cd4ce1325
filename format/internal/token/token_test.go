package token

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"parens",
			"()",
			[]Token{{"(", LParen, 0}, {")", RParen, 1}},
		},
		{
			"descriptor with width",
			"(I3)",
			[]Token{{"(", LParen, 0}, {"I", Letter, 1}, {"3", Number, 2}, {")", RParen, 3}},
		},
		{
			"lower case and precision",
			"f8.2",
			[]Token{{"F", Letter, 0}, {"8", Number, 1}, {".", Dot, 2}, {"2", Number, 3}},
		},
		{
			"blanks inside number",
			"1 2X",
			[]Token{{"12", Number, 0}, {"X", Letter, 3}},
		},
		{
			"separators",
			",/:\\$",
			[]Token{{",", Comma, 0}, {"/", Slash, 1}, {":", Colon, 2}, {"\\", Backslash, 3}, {"$", Backslash, 4}},
		},
		{
			"single quoted",
			"'a b'",
			[]Token{{"a b", String, 0}},
		},
		{
			"doubled quote",
			`'it''s'`,
			[]Token{{"it's", String, 0}},
		},
		{
			"double quoted keeps apostrophe",
			`"it's"`,
			[]Token{{"it's", String, 0}},
		},
		{
			"hollerith",
			"5HAB CD,I2",
			[]Token{{"AB CD", String, 0}, {",", Comma, 7}, {"I", Letter, 8}, {"2", Number, 9}},
		},
		{
			"unterminated literal",
			"(I2,'abc",
			[]Token{{"(", LParen, 0}, {"I", Letter, 1}, {"2", Number, 2}, {",", Comma, 3}, {"'abc", Illegal, 4}},
		},
		{
			"short hollerith",
			"4HAB",
			[]Token{{"4HAB", Illegal, 0}},
		},
		{
			"illegal character",
			"I2#",
			[]Token{{"I", Letter, 0}, {"2", Number, 1}, {"#", Illegal, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	if LParen.String() != "'('" || Letter.String() != "descriptor" || Type(99).String() != "unknown" {
		t.Error("unexpected Type names")
	}
}
