// Package schema defines the in-memory schematic tree (spec §3) that an
// upstream KiCad parser (out of scope here) is expected to hand to the
// Indexer. Field names follow the original kicad-rs types.rs shape so that a
// real parser can populate this struct directly.
package schema

// PrimaryAttribute is the canonical "primary" attribute name of a component;
// a symbolic reference that omits the attribute segment implies this one.
const PrimaryAttribute = "Value"

// Schematic is one sheet of the hierarchy: metadata, its own components and
// globals, and named sub-sheets.
type Schematic struct {
	Meta SchematicMeta

	// Globals are attributes with no owning component, addressed by bare
	// name (e.g. "A" in "A+B"). Populated from a schematic's global-notes
	// mini-syntax by the upstream parser (spec §6).
	Globals map[string]*Attribute

	// Components are keyed by reference designator (e.g. "R7").
	Components map[string]*Component

	// SubSheets are keyed by a producer-chosen name (internal/fixture uses
	// the file name, falling back to the id). The Indexer ignores this key
	// and derives each sub-sheet's index name from its Meta (filename stem,
	// falling back to its id — see Indexer, §4.9).
	SubSheets map[string]*Schematic
}

// SchematicMeta carries descriptive, non-evaluated sheet metadata.
type SchematicMeta struct {
	ID       string
	FileName string
	Title    string
	Revision string
	Company  string
}

// Component is identified by its reference designator and carries labels,
// class tags (consumed by the optional policy classifier), and attributes.
type Component struct {
	Reference string
	Labels    ComponentLabels
	Classes   []string
	Attributes map[string]*Attribute
}

// ComponentLabels are descriptive, non-evaluated fields of a Component.
type ComponentLabels struct {
	FootprintLibrary string
	FootprintName    string
	SymbolLibrary    string
	SymbolName       string
	Model            string
	Datasheet        string
	Extra            map[string]string
}

// Attribute is one named, expression-bearing field of a Component (or a
// global). Value holds the attribute's textual representation: the upstream
// parser seeds it from source text, and a successful evaluation overwrites
// it with `<computed>[ <unit>]` (spec §4.4).
type Attribute struct {
	Name       string
	Value      string
	Expression string
	Unit       string
	Comment    string
}
