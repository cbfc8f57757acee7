// Package exprparser implements the Pratt (precedence-climbing) parser for
// attribute expressions (C1 of the hierarchical evaluator).
package exprparser

import (
	"fmt"

	"github.com/racklet/kicad-rs/internal/ast"
	"github.com/racklet/kicad-rs/internal/lexer"
	"github.com/racklet/kicad-rs/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	LOGIC_OR
	LOGIC_AND
	EQUALS
	COMPARE
	SUM
	PRODUCT
	PREFIX
	CALL
)

var precedences = map[token.Type]int{
	token.OR:      LOGIC_OR,
	token.AND:     LOGIC_AND,
	token.EQ:      EQUALS,
	token.NEQ:     EQUALS,
	token.LT:      COMPARE,
	token.LTE:     COMPARE,
	token.GT:      COMPARE,
	token.GTE:     COMPARE,
	token.PLUS:    SUM,
	token.MINUS:   SUM,
	token.STAR:    PRODUCT,
	token.SLASH:   PRODUCT,
	token.PERCENT: PRODUCT,
}

func precedenceOf(t token.Type) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}

// SyntaxError reports a parse failure; it surfaces to callers as the spec's
// ExpressionSyntax error kind (internal/evalerr wraps it).
type SyntaxError struct {
	Pos     token.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expression syntax error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

type parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errs []error
}

// Parse tokenizes and parses expr into an AST. A non-nil error is always a
// *SyntaxError.
func Parse(expr string) (ast.Expression, error) {
	p := &parser{l: lexer.New(expr)}
	p.next()
	p.next()

	node := p.parseExpression(LOWEST)
	if len(p.errs) > 0 {
		return nil, p.errs[0]
	}
	if p.peek.Type != token.EOF {
		return nil, &SyntaxError{Pos: p.peek.Pos, Message: fmt.Sprintf("unexpected trailing token %q", p.peek.Literal)}
	}
	return node, nil
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *parser) errorf(pos token.Position, format string, args ...any) {
	p.errs = append(p.errs, &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for precedence < precedenceOf(p.peek.Type) {
		p.next()
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parsePrefix() ast.Expression {
	switch p.cur.Type {
	case token.IDENT:
		return p.parseIdentifierOrCall()
	case token.INT:
		return p.parseInteger()
	case token.FLOAT:
		return p.parseFloat()
	case token.STRING:
		return &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
	case token.TRUE:
		return &ast.BooleanLiteral{Token: p.cur, Value: true}
	case token.FALSE:
		return &ast.BooleanLiteral{Token: p.cur, Value: false}
	case token.MINUS, token.NOT:
		return p.parseUnary()
	case token.LPAREN:
		return p.parseGroupedOrTuple()
	default:
		p.errorf(p.cur.Pos, "unexpected token %q", p.cur.Literal)
		return nil
	}
}

func (p *parser) parseInteger() ast.Expression {
	tok := p.cur
	var v int64
	_, err := fmt.Sscanf(tok.Literal, "%d", &v)
	if err != nil {
		p.errorf(tok.Pos, "invalid integer literal %q", tok.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: tok, Value: v}
}

func (p *parser) parseFloat() ast.Expression {
	tok := p.cur
	var v float64
	_, err := fmt.Sscanf(tok.Literal, "%g", &v)
	if err != nil {
		p.errorf(tok.Pos, "invalid float literal %q", tok.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: tok, Value: v}
}

func (p *parser) parseUnary() ast.Expression {
	tok := p.cur
	op := tok.Literal
	p.next()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.UnaryExpression{Token: tok, Operator: op, Right: right}
}

func (p *parser) parseIdentifierOrCall() ast.Expression {
	tok := p.cur
	if p.peek.Type == token.LPAREN {
		p.next() // consume identifier, cur == '('
		return p.parseCall(tok)
	}
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

func (p *parser) parseCall(nameTok token.Token) ast.Expression {
	// cur == '('
	if p.peek.Type == token.RPAREN {
		p.next() // cur == ')'
		return &ast.CallExpression{Token: nameTok, Function: nameTok.Literal, Argument: nil}
	}

	p.next() // advance past '(' to the first argument token
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil
	}

	if p.peek.Type == token.COMMA {
		tuple := &ast.TupleLiteral{Token: nameTok, Elements: []ast.Expression{arg}}
		for p.peek.Type == token.COMMA {
			p.next() // cur == ','
			if p.peek.Type == token.RPAREN {
				// trailing comma, e.g. (0.8,) — a deliberate one-element tuple
				break
			}
			p.next()
			el := p.parseExpression(LOWEST)
			if el == nil {
				return nil
			}
			tuple.Elements = append(tuple.Elements, el)
		}
		arg = tuple
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.CallExpression{Token: nameTok, Function: nameTok.Literal, Argument: arg}
}

func (p *parser) parseGroupedOrTuple() ast.Expression {
	tok := p.cur // '('

	if p.peek.Type == token.RPAREN {
		p.next()
		return &ast.TupleLiteral{Token: tok, Elements: nil}
	}

	p.next()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if p.peek.Type == token.COMMA {
		tuple := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{first}}
		for p.peek.Type == token.COMMA {
			p.next() // cur == ','
			if p.peek.Type == token.RPAREN {
				break // trailing comma: one-element tuple
			}
			p.next()
			el := p.parseExpression(LOWEST)
			if el == nil {
				return nil
			}
			tuple.Elements = append(tuple.Elements, el)
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return tuple
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.GroupedExpression{Token: tok, Expression: first}
}

func (p *parser) parseInfix(left ast.Expression) ast.Expression {
	tok := p.cur
	op := tok.Literal
	prec := precedenceOf(tok.Type)
	p.next()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *parser) expectPeek(t token.Type) bool {
	if p.peek.Type != t {
		p.errorf(p.peek.Pos, "expected %s, got %q", t, p.peek.Literal)
		return false
	}
	p.next()
	return true
}
