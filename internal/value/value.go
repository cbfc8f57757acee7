// Package value implements the tagged-scalar Value model (C2) shared by the
// parser, evaluator, and built-in function registry.
package value

import (
	"strconv"
	"strings"
)

// Kind identifies a Value's tag.
type Kind int

const (
	Empty Kind = iota
	String
	Integer
	Float
	Boolean
	Tuple
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case String:
		return "String"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	case Tuple:
		return "Tuple"
	default:
		return "Unknown"
	}
}

// Value is the tagged scalar the evaluator computes and propagates.
// All runtime values implement this interface; concrete variants below are
// never constructed by zero value, only via the New* constructors.
type Value interface {
	Kind() Kind
	// String returns the canonical textual form used when writing a computed
	// value back into an Attribute (without any unit suffix — see
	// sheetindex.Entry.Update, which appends the unit separately).
	String() string
}

// StringValue wraps a string scalar.
type StringValue struct{ V string }

func (StringValue) Kind() Kind       { return String }
func (s StringValue) String() string { return s.V }

// IntegerValue wraps an integer scalar.
type IntegerValue struct{ V int64 }

func (IntegerValue) Kind() Kind       { return Integer }
func (i IntegerValue) String() string { return strconv.FormatInt(i.V, 10) }

// FloatValue wraps a floating-point scalar.
type FloatValue struct{ V float64 }

func (FloatValue) Kind() Kind       { return Float }
func (f FloatValue) String() string { return strconv.FormatFloat(f.V, 'g', -1, 64) }

// BooleanValue wraps a boolean scalar.
type BooleanValue struct{ V bool }

func (BooleanValue) Kind() Kind { return Boolean }
func (b BooleanValue) String() string {
	if b.V {
		return "true"
	}
	return "false"
}

// TupleValue wraps an ordered sequence of Values.
type TupleValue struct{ Elements []Value }

func (TupleValue) Kind() Kind { return Tuple }
func (t TupleValue) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// EmptyValue is the absent-value scalar.
type EmptyValue struct{}

func (EmptyValue) Kind() Kind      { return Empty }
func (EmptyValue) String() string  { return "" }

func NewString(s string) Value        { return StringValue{V: s} }
func NewInt(i int64) Value            { return IntegerValue{V: i} }
func NewFloat(f float64) Value        { return FloatValue{V: f} }
func NewBool(b bool) Value            { return BooleanValue{V: b} }
func NewTuple(vs []Value) Value       { return TupleValue{Elements: vs} }
func NewEmpty() Value                 { return EmptyValue{} }

// SameType reports whether a and b carry the same Kind, the equality rule
// Entry.Update (§4.4) applies to detect a TypeMismatch on re-assignment.
func SameType(a, b Value) bool {
	return a.Kind() == b.Kind()
}

// Number is a numeric value that remembers whether it originated as an
// Integer or a Float, so that arithmetic can apply the spec's "integer
// arithmetic when both operands are integers, float otherwise" rule.
type Number struct {
	IsInt bool
	I     int64
	F     float64
}

// Float returns the number widened to float64 regardless of origin.
func (n Number) Float() float64 {
	if n.IsInt {
		return float64(n.I)
	}
	return n.F
}

// IsZero reports whether the number is exactly zero (used for the
// DivisionByZero check, which is defined against the divisor's numeric
// value, not a tolerance).
func (n Number) IsZero() bool {
	if n.IsInt {
		return n.I == 0
	}
	return n.F == 0
}

// ToValue converts the Number back into a tagged Value, preserving its
// Integer/Float origin.
func (n Number) ToValue() Value {
	if n.IsInt {
		return NewInt(n.I)
	}
	return NewFloat(n.F)
}

// AsNumber accepts an Integer or Float Value and rejects anything else,
// matching §4.2's as_number conversion rule.
func AsNumber(v Value) (Number, bool) {
	switch t := v.(type) {
	case IntegerValue:
		return Number{IsInt: true, I: t.V}, true
	case FloatValue:
		return Number{IsInt: false, F: t.V}, true
	default:
		return Number{}, false
	}
}

// AsTuple accepts a Tuple Value as-is, or promotes any scalar Value to a
// single-element tuple. Per §4.2 this promotion is used only by the Voltage
// Divider Solver's argument parser.
func AsTuple(v Value) []Value {
	if t, ok := v.(TupleValue); ok {
		return t.Elements
	}
	return []Value{v}
}

// AsInt coerces a Value to an int64, accepting Integer directly and Float
// only when it has no fractional part — used by idx()'s index argument.
func AsInt(v Value) (int64, bool) {
	switch t := v.(type) {
	case IntegerValue:
		return t.V, true
	case FloatValue:
		if t.V == float64(int64(t.V)) {
			return int64(t.V), true
		}
	}
	return 0, false
}

// AsString accepts a String Value and rejects anything else.
func AsString(v Value) (string, bool) {
	s, ok := v.(StringValue)
	if !ok {
		return "", false
	}
	return s.V, true
}

// AsBool accepts a Boolean Value and rejects anything else.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(BooleanValue)
	if !ok {
		return false, false
	}
	return b.V, true
}
