package evaluator

import (
	"testing"

	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/indexer"
	"github.com/racklet/kicad-rs/internal/schema"
)

func buildSchematic() *schema.Schematic {
	return &schema.Schematic{
		Meta: schema.SchematicMeta{ID: "root"},
		Globals: map[string]*schema.Attribute{
			"Vin": {Name: "Vin", Value: "9"},
		},
		Components: map[string]*schema.Component{
			"R1": {
				Reference: "R1",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "1"},
				},
			},
			"R2": {
				Reference: "R2",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "", Expression: "Vin - R1.Value"},
				},
			},
		},
		SubSheets: map[string]*schema.Schematic{},
	}
}

func TestEvaluateSchematicWritesDependentValue(t *testing.T) {
	s := buildSchematic()
	idx, err := indexer.Index(s)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if err := EvaluateSchematic(idx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if got, want := s.Components["R2"].Attributes["Value"].Value, "8"; got != want {
		t.Fatalf("expected R2.Value to be written back as %q, got %q", want, got)
	}
}

func TestEvaluateSchematicDetectsCycle(t *testing.T) {
	s := &schema.Schematic{
		Meta:    schema.SchematicMeta{ID: "root"},
		Globals: map[string]*schema.Attribute{},
		Components: map[string]*schema.Component{
			"R1": {
				Reference: "R1",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "", Expression: "R2.Value"},
				},
			},
			"R2": {
				Reference: "R2",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "", Expression: "R1.Value"},
				},
			},
		},
		SubSheets: map[string]*schema.Schematic{},
	}

	idx, err := indexer.Index(s)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	err = EvaluateSchematic(idx)
	if !evalerr.Is(err, evalerr.DependencyCycle) {
		t.Fatalf("expected DependencyCycle, got %v", err)
	}
}

func TestEvaluateSchematicChildBeforeParent(t *testing.T) {
	child := &schema.Schematic{
		Meta: schema.SchematicMeta{ID: "psu", FileName: "psu.sch"},
		Globals: map[string]*schema.Attribute{},
		Components: map[string]*schema.Component{
			"C1": {
				Reference: "C1",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "5"},
				},
			},
		},
		SubSheets: map[string]*schema.Schematic{},
	}

	root := &schema.Schematic{
		Meta:    schema.SchematicMeta{ID: "root"},
		Globals: map[string]*schema.Attribute{},
		Components: map[string]*schema.Component{
			"R1": {
				Reference: "R1",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "", Expression: "psu.C1.Value + 1"},
				},
			},
		},
		SubSheets: map[string]*schema.Schematic{"psu": child},
	}

	idx, err := indexer.Index(root)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if err := EvaluateSchematic(idx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if got, want := root.Components["R1"].Attributes["Value"].Value, "6"; got != want {
		t.Fatalf("expected R1.Value to be written back as %q, got %q", want, got)
	}
}

// TestEvaluateSchematicSiblingReferenceInsideSubSheet guards against
// resolving a bare, unqualified reference written inside a sub-sheet (as a
// real schematic author would write an intra-sheet reference) against the
// index root instead of the sheet the expression actually lives in.
func TestEvaluateSchematicSiblingReferenceInsideSubSheet(t *testing.T) {
	child := &schema.Schematic{
		Meta:    schema.SchematicMeta{ID: "psu", FileName: "psu.sch"},
		Globals: map[string]*schema.Attribute{},
		Components: map[string]*schema.Component{
			"C1": {
				Reference: "C1",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "5"},
				},
			},
			"C2": {
				Reference: "C2",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "", Expression: "C1.Value + 1"},
				},
			},
		},
		SubSheets: map[string]*schema.Schematic{},
	}

	root := &schema.Schematic{
		Meta:       schema.SchematicMeta{ID: "root"},
		Globals:    map[string]*schema.Attribute{},
		Components: map[string]*schema.Component{},
		SubSheets:  map[string]*schema.Schematic{"psu": child},
	}

	idx, err := indexer.Index(root)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if err := EvaluateSchematic(idx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if got, want := child.Components["C2"].Attributes["Value"].Value, "6"; got != want {
		t.Fatalf("expected psu.C2.Value to be written back as %q, got %q", want, got)
	}
}

// TestEvaluateSchematicBareGlobalTwoLevelsDeep guards against a reference
// written two sheet levels deep (a grandchild) to a bare global declared at
// the root failing to fall back past its immediate parent.
func TestEvaluateSchematicBareGlobalTwoLevelsDeep(t *testing.T) {
	grandchild := &schema.Schematic{
		Meta:    schema.SchematicMeta{ID: "driver", FileName: "driver.sch"},
		Globals: map[string]*schema.Attribute{},
		Components: map[string]*schema.Component{
			"Q1": {
				Reference: "Q1",
				Attributes: map[string]*schema.Attribute{
					"Value": {Name: "Value", Value: "", Expression: "Vin * 2"},
				},
			},
		},
		SubSheets: map[string]*schema.Schematic{},
	}

	child := &schema.Schematic{
		Meta:       schema.SchematicMeta{ID: "psu", FileName: "psu.sch"},
		Globals:    map[string]*schema.Attribute{},
		Components: map[string]*schema.Component{},
		SubSheets:  map[string]*schema.Schematic{"driver": grandchild},
	}

	root := &schema.Schematic{
		Meta: schema.SchematicMeta{ID: "root"},
		Globals: map[string]*schema.Attribute{
			"Vin": {Name: "Vin", Value: "9"},
		},
		Components: map[string]*schema.Component{},
		SubSheets:  map[string]*schema.Schematic{"psu": child},
	}

	idx, err := indexer.Index(root)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if err := EvaluateSchematic(idx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if got, want := grandchild.Components["Q1"].Attributes["Value"].Value, "18"; got != want {
		t.Fatalf("expected psu.driver.Q1.Value to be written back as %q, got %q", want, got)
	}
}
