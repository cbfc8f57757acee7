package ast

import (
	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/value"
)

// Context is the capability set an AST evaluates against (spec §4.1/§4.5):
// value lookup, function dispatch, and value assignment. internal/sheetindex
// furnishes the hierarchical implementation; internal/vdiv furnishes a small
// flat one that only binds R1..Rn and E1..Em.
type Context interface {
	GetValue(identifier string) (value.Value, bool)
	CallFunction(name string, arg value.Value) (value.Value, error)
	SetValue(identifier string, v value.Value) error
}

// Eval walks expr and computes its Value against ctx. This is the AST's own
// evaluation capability (spec §4.1b); the hierarchical dependency-resolution
// algorithm that decides *when* to call Eval for a given Entry lives in
// internal/evaluator (C6).
func Eval(expr Expression, ctx Context) (value.Value, error) {
	switch n := expr.(type) {
	case *IntegerLiteral:
		return value.NewInt(n.Value), nil
	case *FloatLiteral:
		return value.NewFloat(n.Value), nil
	case *StringLiteral:
		return value.NewString(n.Value), nil
	case *BooleanLiteral:
		return value.NewBool(n.Value), nil
	case *GroupedExpression:
		return Eval(n.Expression, ctx)
	case *TupleLiteral:
		elems := make([]value.Value, len(n.Elements))
		for i, e := range n.Elements {
			v, err := Eval(e, ctx)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewTuple(elems), nil
	case *Identifier:
		v, ok := ctx.GetValue(n.Value)
		if !ok {
			return nil, evalerr.AtIdentifier(evalerr.NotFound, n.Value, "identifier has no value")
		}
		return v, nil
	case *UnaryExpression:
		return evalUnary(n, ctx)
	case *BinaryExpression:
		return evalBinary(n, ctx)
	case *CallExpression:
		return evalCall(n, ctx)
	default:
		return nil, evalerr.New(evalerr.ExpressionSyntax, "unknown AST node %T", expr)
	}
}

func evalCall(n *CallExpression, ctx Context) (value.Value, error) {
	var arg value.Value = value.NewEmpty()
	if n.Argument != nil {
		v, err := Eval(n.Argument, ctx)
		if err != nil {
			return nil, err
		}
		arg = v
	}
	return ctx.CallFunction(n.Function, arg)
}

func evalUnary(n *UnaryExpression, ctx Context) (value.Value, error) {
	right, err := Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "-":
		num, ok := value.AsNumber(right)
		if !ok {
			return nil, evalerr.New(evalerr.ExpressionSyntax, "unary - requires a number, got %s", right.Kind())
		}
		if num.IsInt {
			return value.NewInt(-num.I), nil
		}
		return value.NewFloat(-num.F), nil
	case "!":
		b, ok := value.AsBool(right)
		if !ok {
			return nil, evalerr.New(evalerr.ExpressionSyntax, "! requires a boolean, got %s", right.Kind())
		}
		return value.NewBool(!b), nil
	default:
		return nil, evalerr.New(evalerr.ExpressionSyntax, "unknown unary operator %q", n.Operator)
	}
}

func evalBinary(n *BinaryExpression, ctx Context) (value.Value, error) {
	left, err := Eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+", "-", "*", "/", "%":
		return evalArith(n.Operator, left, right)
	case "==":
		return value.NewBool(valuesEqual(left, right)), nil
	case "!=":
		return value.NewBool(!valuesEqual(left, right)), nil
	case "<", "<=", ">", ">=":
		return evalCompare(n.Operator, left, right)
	case "&&", "||":
		return evalLogic(n.Operator, left, right)
	default:
		return nil, evalerr.New(evalerr.ExpressionSyntax, "unknown binary operator %q", n.Operator)
	}
}

// evalArith applies the spec's numeric coercion rule: integer arithmetic
// when both operands are integers, float arithmetic otherwise. "+" also
// supports string concatenation when both operands are strings.
func evalArith(op string, left, right value.Value) (value.Value, error) {
	if op == "+" {
		if ls, ok := value.AsString(left); ok {
			if rs, ok := value.AsString(right); ok {
				return value.NewString(ls + rs), nil
			}
		}
	}

	ln, ok := value.AsNumber(left)
	if !ok {
		return nil, evalerr.New(evalerr.ExpressionSyntax, "%s requires a number, got %s", op, left.Kind())
	}
	rn, ok := value.AsNumber(right)
	if !ok {
		return nil, evalerr.New(evalerr.ExpressionSyntax, "%s requires a number, got %s", op, right.Kind())
	}

	bothInt := ln.IsInt && rn.IsInt

	switch op {
	case "+":
		if bothInt {
			return value.NewInt(ln.I + rn.I), nil
		}
		return value.NewFloat(ln.Float() + rn.Float()), nil
	case "-":
		if bothInt {
			return value.NewInt(ln.I - rn.I), nil
		}
		return value.NewFloat(ln.Float() - rn.Float()), nil
	case "*":
		if bothInt {
			return value.NewInt(ln.I * rn.I), nil
		}
		return value.NewFloat(ln.Float() * rn.Float()), nil
	case "/":
		if rn.IsZero() {
			return nil, evalerr.DivByZero(rn.ToValue().String())
		}
		if bothInt {
			return value.NewInt(ln.I / rn.I), nil
		}
		return value.NewFloat(ln.Float() / rn.Float()), nil
	case "%":
		if rn.IsZero() {
			return nil, evalerr.DivByZero(rn.ToValue().String())
		}
		if bothInt {
			return value.NewInt(ln.I % rn.I), nil
		}
		lf, rf := ln.Float(), rn.Float()
		return value.NewFloat(lf - rf*float64(int64(lf/rf))), nil
	}
	panic("unreachable")
}

func evalCompare(op string, left, right value.Value) (value.Value, error) {
	ln, lok := value.AsNumber(left)
	rn, rok := value.AsNumber(right)
	if lok && rok {
		lf, rf := ln.Float(), rn.Float()
		switch op {
		case "<":
			return value.NewBool(lf < rf), nil
		case "<=":
			return value.NewBool(lf <= rf), nil
		case ">":
			return value.NewBool(lf > rf), nil
		case ">=":
			return value.NewBool(lf >= rf), nil
		}
	}

	ls, lsok := value.AsString(left)
	rs, rsok := value.AsString(right)
	if lsok && rsok {
		switch op {
		case "<":
			return value.NewBool(ls < rs), nil
		case "<=":
			return value.NewBool(ls <= rs), nil
		case ">":
			return value.NewBool(ls > rs), nil
		case ">=":
			return value.NewBool(ls >= rs), nil
		}
	}

	return nil, evalerr.New(evalerr.ExpressionSyntax, "%s requires two numbers or two strings, got %s and %s", op, left.Kind(), right.Kind())
}

func evalLogic(op string, left, right value.Value) (value.Value, error) {
	lb, ok := value.AsBool(left)
	if !ok {
		return nil, evalerr.New(evalerr.ExpressionSyntax, "%s requires a boolean, got %s", op, left.Kind())
	}
	rb, ok := value.AsBool(right)
	if !ok {
		return nil, evalerr.New(evalerr.ExpressionSyntax, "%s requires a boolean, got %s", op, right.Kind())
	}
	switch op {
	case "&&":
		return value.NewBool(lb && rb), nil
	case "||":
		return value.NewBool(lb || rb), nil
	}
	panic("unreachable")
}

func valuesEqual(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		if an, ok := value.AsNumber(a); ok {
			if bn, ok := value.AsNumber(b); ok {
				return an.Float() == bn.Float()
			}
		}
		return false
	}
	switch a.Kind() {
	case value.Integer:
		return a.(value.IntegerValue).V == b.(value.IntegerValue).V
	case value.Float:
		return a.(value.FloatValue).V == b.(value.FloatValue).V
	case value.String:
		return a.(value.StringValue).V == b.(value.StringValue).V
	case value.Boolean:
		return a.(value.BooleanValue).V == b.(value.BooleanValue).V
	case value.Empty:
		return true
	case value.Tuple:
		at, bt := a.(value.TupleValue).Elements, b.(value.TupleValue).Elements
		if len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !valuesEqual(at[i], bt[i]) {
				return false
			}
		}
		return true
	}
	return false
}
