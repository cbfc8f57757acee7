package vdiv

import (
	"math"
	"testing"

	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/value"
)

func TestValuesKnownSeries(t *testing.T) {
	e3, ok := Values("E3")
	if !ok {
		t.Fatal("expected E3 to be a known series")
	}
	if len(e3) == 0 {
		t.Fatal("expected a non-empty candidate list")
	}
	for i := 1; i < len(e3); i++ {
		if e3[i] <= e3[i-1] {
			t.Fatalf("expected strictly ascending sorted values, got %v <= %v at index %d", e3[i], e3[i-1], i)
		}
	}

	if _, ok := Values("E7"); ok {
		t.Fatal("expected E7 to be unknown")
	}
}

func TestSolveFindsExactHalfDivider(t *testing.T) {
	// A 5V source halved by equal resistors should resolve to any pair of
	// identical standard values, exactly matching the target.
	result, err := Solve(2.5, "5 * R2 / (R1 + R2)", "E12", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tuple, ok := result.(value.TupleValue)
	if !ok || len(tuple.Elements) != 3 {
		t.Fatalf("expected a 3-element tuple (result, R1, R2), got %v", result)
	}

	r1, _ := value.AsNumber(tuple.Elements[1])
	r2, _ := value.AsNumber(tuple.Elements[2])
	if r1.Float() != r2.Float() {
		t.Fatalf("expected R1 == R2 for an exact half-divider, got R1=%v R2=%v", r1.Float(), r2.Float())
	}

	got, _ := value.AsNumber(tuple.Elements[0])
	if math.Abs(got.Float()-2.5) > 1e-9 {
		t.Fatalf("expected result close to target 2.5, got %v", got.Float())
	}
}

func TestSolveUnknownSeries(t *testing.T) {
	_, err := Solve(2.5, "5 * R2 / (R1 + R2)", "E7", nil, nil)
	if !evalerr.Is(err, evalerr.UnknownSeries) {
		t.Fatalf("expected UnknownSeries, got %v", err)
	}
}

func TestSolveTooManyResistors(t *testing.T) {
	expr := "R1+R2+R3+R4+R5+R6+R7+R8+R9"
	_, err := Solve(1, expr, "E3", nil, nil)
	if !evalerr.Is(err, evalerr.SolverTooLarge) {
		t.Fatalf("expected SolverTooLarge, got %v", err)
	}
}

func TestSolveBoundsExcludeAllCandidates(t *testing.T) {
	bounds := &Bounds{Min: 1e12, Max: 2e12}
	_, err := Solve(2.5, "5 * R2 / (R1 + R2)", "E3", bounds, nil)
	if !evalerr.Is(err, evalerr.NoSolution) {
		t.Fatalf("expected NoSolution, got %v", err)
	}
}

func TestSolveSoftCatchesDivisionByZero(t *testing.T) {
	// R1 - R1 is always zero, so every candidate hits DivisionByZero and is
	// soft-caught; none survive, so the result is NoSolution rather than a
	// surfaced DivisionByZero.
	_, err := Solve(1, "R2 / (R1 - R1)", "E3", nil, nil)
	if !evalerr.Is(err, evalerr.NoSolution) {
		t.Fatalf("expected NoSolution (every candidate soft-caught), got %v", err)
	}
}

func TestSolveBindsExtrasAsE1(t *testing.T) {
	result, err := Solve(10, "E1 * R1 / (R1 + R2)", "E3", nil, []value.Value{value.NewFloat(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.(value.TupleValue); !ok {
		t.Fatalf("expected a tuple result, got %v", result)
	}
}
