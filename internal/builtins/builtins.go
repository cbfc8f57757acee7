// Package builtins implements the closed built-in function registry (C7):
// a name → pure-function-from-Value dispatch table invoked by CallExpression
// nodes. Modeled on the teacher's internal/interp builtin dispatch, but
// closed (no user-registrable functions) since the spec's function set is
// fixed: idx and vdiv.
package builtins

import (
	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/value"
	"github.com/racklet/kicad-rs/internal/vdiv"
)

// Call dispatches name(arg) to the matching built-in, or *UnknownFunction*
// if name is not registered.
func Call(name string, arg value.Value) (value.Value, error) {
	switch name {
	case "idx":
		return idx(arg)
	case "vdiv":
		return vdivCall(arg)
	default:
		return nil, evalerr.AtIdentifier(evalerr.UnknownFunction, name, "no such built-in function")
	}
}

// idx(tuple, i) returns the i-th element (0-indexed) of tuple (spec §4.7).
func idx(arg value.Value) (value.Value, error) {
	elems, ok := arg.(value.TupleValue)
	if !ok || len(elems.Elements) != 2 {
		return nil, evalerr.New(evalerr.TypeMismatch, "idx expects a 2-tuple argument (tuple, index)")
	}

	tuple, ok := elems.Elements[0].(value.TupleValue)
	if !ok {
		return nil, evalerr.New(evalerr.TypeMismatch, "idx's first argument must be a Tuple, got %s", elems.Elements[0].Kind())
	}

	i, ok := value.AsInt(elems.Elements[1])
	if !ok {
		return nil, evalerr.New(evalerr.TypeMismatch, "idx's second argument must coerce to an Integer, got %s", elems.Elements[1].Kind())
	}

	if i < 0 || int(i) >= len(tuple.Elements) {
		return nil, evalerr.New(evalerr.IndexOutOfBounds, "index %d out of bounds for tuple of length %d", i, len(tuple.Elements))
	}
	return tuple.Elements[i], nil
}

// vdivCall unpacks the positional argument tuple
// (target, expr, series, bounds?, extras?) and delegates to vdiv.Solve
// (spec §4.8).
func vdivCall(arg value.Value) (value.Value, error) {
	args := value.AsTuple(arg)
	if len(args) < 3 {
		return nil, evalerr.New(evalerr.TypeMismatch, "vdiv expects at least (target, expr, series), got %d arguments", len(args))
	}

	target, ok := value.AsNumber(args[0])
	if !ok {
		return nil, evalerr.New(evalerr.TypeMismatch, "vdiv's target argument must be a number, got %s", args[0].Kind())
	}
	expr, ok := value.AsString(args[1])
	if !ok {
		return nil, evalerr.New(evalerr.TypeMismatch, "vdiv's expr argument must be a string, got %s", args[1].Kind())
	}
	series, ok := value.AsString(args[2])
	if !ok {
		return nil, evalerr.New(evalerr.TypeMismatch, "vdiv's series argument must be a string, got %s", args[2].Kind())
	}

	var bounds *vdiv.Bounds
	var extras []value.Value
	if len(args) >= 4 {
		if b, ok := args[3].(value.TupleValue); ok && len(b.Elements) == 2 {
			min, minOk := value.AsNumber(b.Elements[0])
			max, maxOk := value.AsNumber(b.Elements[1])
			if !minOk || !maxOk {
				return nil, evalerr.New(evalerr.TypeMismatch, "vdiv's bounds argument must be a (min, max) tuple of numbers")
			}
			bounds = &vdiv.Bounds{Min: min.Float(), Max: max.Float()}
		} else if args[3].Kind() != value.Empty {
			return nil, evalerr.New(evalerr.TypeMismatch, "vdiv's bounds argument must be a (min, max) tuple")
		}
	}
	if len(args) >= 5 && args[4].Kind() != value.Empty {
		extras = value.AsTuple(args[4])
	}

	return vdiv.Solve(target.Float(), expr, series, bounds, extras)
}
