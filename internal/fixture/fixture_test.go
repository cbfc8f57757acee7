package fixture

import "testing"

const sampleFixture = `{
	"id": "root",
	"file_name": "main.sch",
	"title": "Voltage Divider Demo",
	"globals": [
		{"name": "Vin", "value": "9"}
	],
	"components": [
		{
			"reference": "R1",
			"classes": ["resistor"],
			"attributes": [
				{"name": "Value", "value": "1000", "unit": "ohm"}
			]
		},
		{
			"reference": "R2",
			"attributes": [
				{"name": "Value", "value": "", "expression": "Vin - R1.Value"}
			]
		}
	],
	"sheets": [
		{
			"id": "psu",
			"file_name": "psu.sch",
			"components": [
				{"reference": "C1", "attributes": [{"name": "Value", "value": "10", "unit": "uF"}]}
			]
		}
	]
}`

func TestLoadBuildsSchematic(t *testing.T) {
	s, err := Load([]byte(sampleFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Meta.Title != "Voltage Divider Demo" {
		t.Fatalf("expected title to be parsed, got %q", s.Meta.Title)
	}
	if _, ok := s.Globals["Vin"]; !ok {
		t.Fatal("expected global Vin to be parsed")
	}
	r1, ok := s.Components["R1"]
	if !ok {
		t.Fatal("expected component R1 to be parsed")
	}
	if len(r1.Classes) != 1 || r1.Classes[0] != "resistor" {
		t.Fatalf("expected R1 to carry class [resistor], got %v", r1.Classes)
	}
	if r1.Attributes["Value"].Unit != "ohm" {
		t.Fatalf("expected R1.Value unit \"ohm\", got %q", r1.Attributes["Value"].Unit)
	}

	psu, ok := s.SubSheets["psu.sch"]
	if !ok {
		t.Fatal("expected sub-sheet keyed by file_name")
	}
	if _, ok := psu.Components["C1"]; !ok {
		t.Fatal("expected psu sub-sheet's C1 component to be parsed")
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	_, err := Load([]byte("not json"))
	if err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}
