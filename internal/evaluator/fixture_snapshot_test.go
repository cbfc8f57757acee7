package evaluator

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/racklet/kicad-rs/internal/fixture"
	"github.com/racklet/kicad-rs/internal/indexer"
)

const voltageDividerFixture = `{
	"id": "root",
	"file_name": "divider.sch",
	"globals": [
		{"name": "Vin", "value": "9"}
	],
	"components": [
		{"reference": "R1", "attributes": [{"name": "Value", "value": "1000", "unit": "ohm"}]},
		{"reference": "R2", "attributes": [{"name": "Value", "value": "", "expression": "Vin - R1.Value", "unit": "ohm"}]}
	]
}`

// TestFixtureEvaluation runs a small voltage-divider-shaped schematic fixture
// end to end (load, index, evaluate) and snapshots the written-back
// attribute values.
func TestFixtureEvaluation(t *testing.T) {
	s, err := fixture.Load([]byte(voltageDividerFixture))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	idx, err := indexer.Index(s)
	if err != nil {
		t.Fatalf("index: %v", err)
	}

	if err := EvaluateSchematic(idx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	snaps.MatchSnapshot(t, "R1.Value", s.Components["R1"].Attributes["Value"].Value)
	snaps.MatchSnapshot(t, "R2.Value", s.Components["R2"].Attributes["Value"].Value)
}
