package lexer

import (
	"testing"

	"github.com/racklet/kicad-rs/internal/token"
)

func TestNextTokenOperatorsAndIdents(t *testing.T) {
	input := `R1.Value + 3.3 * (psu.C1.Value - 1) == "ok" && !false`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.IDENT, "R1.Value"},
		{token.PLUS, "+"},
		{token.FLOAT, "3.3"},
		{token.STAR, "*"},
		{token.LPAREN, "("},
		{token.IDENT, "psu.C1.Value"},
		{token.MINUS, "-"},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.EQ, "=="},
		{token.STRING, "ok"},
		{token.AND, "&&"},
		{token.NOT, "!"},
		{token.FALSE, "false"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenComparisonOperators(t *testing.T) {
	input := `<= >= != < >`
	expected := []token.Type{token.LTE, token.GTE, token.NEQ, token.LT, token.GT, token.EOF}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestNextTokenExponentBacktrack(t *testing.T) {
	// "1e" with nothing valid following the exponent marker should not
	// consume the 'e' into the number.
	l := New(`1e + 2`)

	tok := l.NextToken()
	if tok.Type != token.INT || tok.Literal != "1" {
		t.Fatalf("expected INT \"1\", got %s %q", tok.Type, tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "e" {
		t.Fatalf("expected IDENT \"e\", got %s %q", tok.Type, tok.Literal)
	}
}
