package sheetindex

import (
	"testing"

	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/schema"
	"github.com/racklet/kicad-rs/internal/value"
)

func TestNewEntrySeedsPreSetValue(t *testing.T) {
	attr := &schema.Attribute{Name: "Value", Value: "10k", Expression: ""}
	e := NewEntry(attr)

	v, ok := e.GetValue()
	if !ok {
		t.Fatal("expected a pre-set Entry to already have a cached value")
	}
	if v.Kind() != value.String || v.(value.StringValue).V != "10k" {
		t.Fatalf("expected String(10k), got %v", v)
	}
}

func TestNewEntryParsesNumericLiteral(t *testing.T) {
	attr := &schema.Attribute{Name: "Value", Value: "5", Expression: ""}
	e := NewEntry(attr)

	v, _ := e.GetValue()
	if v.Kind() != value.Integer || v.(value.IntegerValue).V != 5 {
		t.Fatalf("expected Integer(5), got %v", v)
	}
}

func TestValueDefinedDetectsDependencyCycle(t *testing.T) {
	attr := &schema.Attribute{Name: "Value", Value: "", Expression: "R1.Value + 1"}
	e := NewEntry(attr)

	defined, err := e.ValueDefined("R1.Value")
	if err != nil {
		t.Fatalf("unexpected error on first call: %v", err)
	}
	if defined {
		t.Fatal("expected not yet defined")
	}

	_, err = e.ValueDefined("R1.Value")
	if !evalerr.Is(err, evalerr.DependencyCycle) {
		t.Fatalf("expected DependencyCycle on re-entrant call, got %v", err)
	}
}

func TestUpdateClearsInProgressAndWritesBack(t *testing.T) {
	attr := &schema.Attribute{Name: "Value", Value: "", Expression: "1 + 1", Unit: "V"}
	e := NewEntry(attr)

	if _, err := e.ValueDefined("X.Value"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Update(value.NewInt(2), "X.Value"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if attr.Value != "2 V" {
		t.Fatalf("expected write-back \"2 V\", got %q", attr.Value)
	}

	defined, err := e.ValueDefined("X.Value")
	if err != nil {
		t.Fatalf("expected in-progress flag to be cleared by Update: %v", err)
	}
	if !defined {
		t.Fatal("expected value to be defined after Update")
	}
}

func TestUpdateRejectsTypeMismatch(t *testing.T) {
	attr := &schema.Attribute{Name: "Value", Value: "5", Expression: ""}
	e := NewEntry(attr) // pre-set to Integer(5)

	err := e.Update(value.NewString("oops"), "X.Value")
	if !evalerr.Is(err, evalerr.TypeMismatch) {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}
