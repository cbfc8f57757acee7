// Package vdiv implements the Voltage Divider Solver (C8): a combinatorial
// search over standard E-series resistor values that minimizes the distance
// between a divider expression's evaluated result and a target value.
// Grounded on kicad/kicad_functions/src/vdiv.rs, reworked around the shared
// ast.Eval/exprparser pipeline instead of a bespoke evaluator.
package vdiv

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/cockroachdb/apd/v2"

	"github.com/racklet/kicad-rs/internal/ast"
	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/exprparser"
	"github.com/racklet/kicad-rs/internal/value"
)

// Bounds constrains the candidate search to dividers whose resistances sum
// within [Min, Max]. A nil *Bounds means unconstrained.
type Bounds struct {
	Min, Max float64
}

// maxResistors caps the number of distinct R-identifiers a divider
// expression may reference before the search space is rejected as
// impractically large (spec §4.8, SolverTooLarge).
const maxResistors = 8

var resistorIdent = regexp.MustCompile(`^R[1-9][0-9]*$`)

// scoreExponent fixes the decimal precision used to compare candidate
// scores, giving deterministic, platform-stable tie-breaking regardless of
// float64 rounding differences (spec §4.8's suggestion to use fixed-point
// scoring).
const scoreExponent = -9

var scoreCtx = apd.BaseContext.WithPrecision(40)

// Solve searches seriesName's standard resistor values for the assignment
// of R1..Rn (n inferred from expr's free identifiers) that brings expr's
// evaluated result closest to target. extras, if non-empty, are bound in
// order to E1, E2, ... before each candidate evaluation (spec §4.8).
//
// On success it returns a Tuple (result, R1, R2, ..., Rn) where result is
// target plus the winning candidate's signed error (spec §4.8 step 5).
func Solve(target float64, expr string, seriesName string, bounds *Bounds, extras []value.Value) (value.Value, error) {
	series, ok := Values(seriesName)
	if !ok {
		return nil, evalerr.New(evalerr.UnknownSeries, "unknown resistor series %q", seriesName)
	}

	node, err := exprparser.Parse(expr)
	if err != nil {
		return nil, evalerr.New(evalerr.ExpressionSyntax, "vdiv expression: %v", err)
	}

	var resistorNames []string
	for _, ident := range ast.FreeIdentifiers(node) {
		if resistorIdent.MatchString(ident) {
			resistorNames = append(resistorNames, ident)
		}
	}
	// Order R1..Rn by index so the result tuple and the enumeration order
	// follow resistor numbering, not first occurrence in expr.
	sort.Slice(resistorNames, func(a, b int) bool {
		ia, _ := strconv.Atoi(resistorNames[a][1:])
		ib, _ := strconv.Atoi(resistorNames[b][1:])
		return ia < ib
	})
	n := len(resistorNames)
	if n == 0 {
		return nil, evalerr.New(evalerr.ExpressionSyntax, "vdiv expression references no R1..Rn resistors")
	}
	if n > maxResistors {
		return nil, evalerr.New(evalerr.SolverTooLarge, "vdiv expression references %d resistors, exceeding the limit of %d", n, maxResistors)
	}

	assignment := make([]float64, n)
	var best []float64
	var bestResult float64
	var bestScore *apd.Decimal
	found := false

	var enumerate func(i int) error
	enumerate = func(i int) error {
		if i == n {
			sum := 0.0
			for _, r := range assignment {
				sum += r
			}
			if bounds != nil && (sum < bounds.Min || sum > bounds.Max) {
				return nil
			}

			ctx := newFlatContext(resistorNames, assignment, extras)
			result, err := ast.Eval(node, ctx)
			if err != nil {
				if evalerr.Is(err, evalerr.DivisionByZero) {
					return nil // soft-catch: skip this candidate (spec §4.8 step 3)
				}
				return evalerr.Wrap(err) // any other error is fatal (step 4)
			}

			rn, ok := value.AsNumber(result)
			if !ok {
				return evalerr.Wrap(fmt.Errorf("vdiv expression evaluated to non-numeric %s", result.Kind()))
			}

			score := scoreOf(rn.Float(), target)
			if !found || score.Cmp(bestScore) < 0 {
				found = true
				bestScore = score
				bestResult = rn.Float()
				best = append([]float64(nil), assignment...)
			}
			return nil
		}

		for _, r := range series {
			assignment[i] = r
			if err := enumerate(i + 1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := enumerate(0); err != nil {
		return nil, err
	}
	if !found {
		return nil, evalerr.New(evalerr.NoSolution, "no candidate in series %s satisfies the given bounds", seriesName)
	}

	elems := make([]value.Value, 0, n+1)
	elems = append(elems, value.NewFloat(target+(bestResult-target)))
	for _, r := range best {
		elems = append(elems, value.NewFloat(r))
	}
	return value.NewTuple(elems), nil
}

// scoreOf computes |result - target| quantized to a fixed exponent so that
// Decimal.Cmp gives a deterministic total order across platforms.
func scoreOf(result, target float64) *apd.Decimal {
	diff := result - target
	if diff < 0 {
		diff = -diff
	}
	d, _, err := apd.NewFromString(fmt.Sprintf("%.12f", diff))
	if err != nil {
		// %.12f of a finite float64 is always a valid decimal literal.
		panic(err)
	}
	rounded := new(apd.Decimal)
	if _, err := scoreCtx.Quantize(rounded, d, scoreExponent); err != nil {
		panic(err)
	}
	return rounded
}

// flatContext binds a fixed set of identifiers to Values; it implements
// ast.Context for the solver's candidate-evaluation pass, which has no
// hierarchy and no function calls of its own.
type flatContext struct {
	values map[string]value.Value
}

func newFlatContext(names []string, assignment []float64, extras []value.Value) *flatContext {
	vals := make(map[string]value.Value, len(names)+len(extras))
	for i, v := range extras {
		vals[fmt.Sprintf("E%d", i+1)] = v
	}
	for i, name := range names {
		vals[name] = value.NewFloat(assignment[i])
	}
	return &flatContext{values: vals}
}

func (c *flatContext) GetValue(identifier string) (value.Value, bool) {
	v, ok := c.values[identifier]
	return v, ok
}

func (c *flatContext) CallFunction(name string, arg value.Value) (value.Value, error) {
	return nil, evalerr.AtIdentifier(evalerr.UnknownFunction, name, "function calls are not available inside a vdiv expression")
}

func (c *flatContext) SetValue(identifier string, v value.Value) error {
	return evalerr.AtIdentifier(evalerr.TypeMismatch, identifier, "vdiv expressions cannot assign values")
}
