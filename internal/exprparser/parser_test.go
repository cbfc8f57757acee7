package exprparser

import (
	"testing"

	"github.com/racklet/kicad-rs/internal/ast"
)

func TestParsePrecedence(t *testing.T) {
	node, err := Parse("1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := node.String(), "(1 + (2 * 3))"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseComparisonAndLogic(t *testing.T) {
	node, err := Parse(`R1 > 0 && R2 > 0`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := node.String(), "((R1 > 0) && (R2 > 0))"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseCallWithTupleArgument(t *testing.T) {
	node, err := Parse(`idx((1, 2, 3), 1)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := node.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected *ast.CallExpression, got %T", node)
	}
	if call.Function != "idx" {
		t.Fatalf("expected function idx, got %q", call.Function)
	}
}

func TestParseOneElementTupleRequiresTrailingComma(t *testing.T) {
	node, err := Parse(`(0.8,)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tuple, ok := node.(*ast.TupleLiteral)
	if !ok {
		t.Fatalf("expected *ast.TupleLiteral, got %T", node)
	}
	if len(tuple.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(tuple.Elements))
	}

	grouped, err := Parse(`(0.8)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := grouped.(*ast.GroupedExpression); !ok {
		t.Fatalf("expected *ast.GroupedExpression without trailing comma, got %T", grouped)
	}
}

func TestParseDottedIdentifier(t *testing.T) {
	node, err := Parse(`psu.C1.Value + 1`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	free := ast.FreeIdentifiers(node)
	if len(free) != 1 || free[0] != "psu.C1.Value" {
		t.Fatalf("expected free identifier [psu.C1.Value], got %v", free)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(`1 +`)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}
