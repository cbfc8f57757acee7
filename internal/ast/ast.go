// Package ast defines the expression AST produced by internal/exprparser (C1).
package ast

import (
	"bytes"
	"strings"

	"github.com/racklet/kicad-rs/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Identifier is a free variable reference. Its Value may be a dotted path
// (e.g. "psu.C1.Value"); splitting into path segments is the Path Resolver's
// job (C3), not the parser's.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) String() string         { return i.Value }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos }

// IntegerLiteral is an integer literal, e.g. 123.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntegerLiteral) expressionNode()      {}
func (l *IntegerLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *IntegerLiteral) String() string       { return l.Token.Literal }
func (l *IntegerLiteral) Pos() token.Position  { return l.Token.Pos }

// FloatLiteral is a floating-point literal, e.g. 1.5 or 10e-6.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLiteral) String() string       { return l.Token.Literal }
func (l *FloatLiteral) Pos() token.Position  { return l.Token.Pos }

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) String() string       { return "\"" + l.Value + "\"" }
func (l *StringLiteral) Pos() token.Position  { return l.Token.Pos }

// BooleanLiteral is the `true` or `false` literal.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (l *BooleanLiteral) expressionNode()      {}
func (l *BooleanLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BooleanLiteral) String() string       { return l.Token.Literal }
func (l *BooleanLiteral) Pos() token.Position  { return l.Token.Pos }

// TupleLiteral is a parenthesized, comma-separated sequence: (a, b, c).
// A single parenthesized expression with no comma is a GroupedExpression,
// not a one-element tuple; (a,) is a one-element tuple.
type TupleLiteral struct {
	Token    token.Token // the '(' token
	Elements []Expression
}

func (l *TupleLiteral) expressionNode()      {}
func (l *TupleLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *TupleLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *TupleLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// GroupedExpression is a parenthesized sub-expression: (a + b).
type GroupedExpression struct {
	Token      token.Token // the '(' token
	Expression Expression
}

func (g *GroupedExpression) expressionNode()      {}
func (g *GroupedExpression) TokenLiteral() string { return g.Token.Literal }
func (g *GroupedExpression) Pos() token.Position  { return g.Token.Pos }
func (g *GroupedExpression) String() string       { return "(" + g.Expression.String() + ")" }

// BinaryExpression is a binary operator applied to two operands.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpression is a prefix unary operator applied to one operand.
type UnaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Right    Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	return "(" + u.Operator + u.Right.String() + ")"
}

// CallExpression is a function-call expression: name(argument).
// The built-in registry (C7) takes exactly one Value argument; multi-argument
// calls are expressed by passing a TupleLiteral, matching spec §4.7/§4.8.
type CallExpression struct {
	Token    token.Token // the function identifier token
	Function string
	Argument Expression // nil for a zero-argument call
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	if c.Argument == nil {
		return c.Function + "()"
	}
	return c.Function + "(" + c.Argument.String() + ")"
}

// FreeIdentifiers walks expr and returns the distinct identifier names it
// references, in first-occurrence order. Used by the Evaluator (C6) to find
// an Entry's dependencies, and by the Voltage Divider Solver (C8) to count
// the R1..Rn resistors in a divider expression.
func FreeIdentifiers(expr Expression) []string {
	seen := map[string]bool{}
	var order []string
	var walk func(Expression)
	walk = func(e Expression) {
		switch n := e.(type) {
		case nil:
			return
		case *Identifier:
			if !seen[n.Value] {
				seen[n.Value] = true
				order = append(order, n.Value)
			}
		case *BinaryExpression:
			walk(n.Left)
			walk(n.Right)
		case *UnaryExpression:
			walk(n.Right)
		case *GroupedExpression:
			walk(n.Expression)
		case *TupleLiteral:
			for _, el := range n.Elements {
				walk(el)
			}
		case *CallExpression:
			walk(n.Argument)
		}
	}
	walk(expr)
	return order
}
