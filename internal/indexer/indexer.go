// Package indexer implements the Indexer (C9): a one-shot transform of a
// parsed schema.Schematic tree into a sheetindex.SheetIndex ready for the
// Evaluator. Grounded on kicad_rs/src/resolver.rs's index-building pass and
// kicad_rs/src/types.rs's Schematic shape.
package indexer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/schema"
	"github.com/racklet/kicad-rs/internal/sheetindex"
)

var fold = cases.Fold()

// Index builds a SheetIndex from root, checking for duplicate attributes
// within a component and namespace collisions between components and
// sub-sheets (spec §4.9).
func Index(root *schema.Schematic) (*sheetindex.SheetIndex, error) {
	sheet, err := indexSchematic(root)
	if err != nil {
		return nil, err
	}
	return &sheetindex.SheetIndex{Root: sheet}, nil
}

func indexSchematic(s *schema.Schematic) (*sheetindex.Sheet, error) {
	sheet := &sheetindex.Sheet{
		Meta:       s.Meta,
		Globals:    map[string]*sheetindex.Entry{},
		Components: map[string]*sheetindex.ComponentIndex{},
		SubSheets:  map[string]*sheetindex.Sheet{},
	}

	for name, attr := range s.Globals {
		sheet.Globals[name] = sheetindex.NewEntry(attr)
	}

	for ref, comp := range s.Components {
		ci, err := indexComponent(comp)
		if err != nil {
			return nil, err
		}
		sheet.Components[ref] = ci
	}

	used := make(map[string]string) // case-folded name -> original name already taken
	for name := range sheet.Components {
		used[fold.String(name)] = name
	}

	for _, sub := range s.SubSheets {
		name := subSheetName(sub)

		folded := fold.String(name)
		if existing, taken := used[folded]; taken && existing != name {
			return nil, evalerr.AtIdentifier(evalerr.NamespaceCollide, name, "sub-sheet name collides with existing name %q under case-insensitive comparison", existing)
		}
		if _, taken := sheet.SubSheets[name]; taken {
			return nil, evalerr.AtIdentifier(evalerr.NamespaceCollide, name, "duplicate sub-sheet name at this level")
		}
		if _, taken := sheet.Components[name]; taken {
			return nil, evalerr.AtIdentifier(evalerr.NamespaceCollide, name, "sub-sheet name collides with a component reference")
		}

		subSheet, err := indexSchematic(sub)
		if err != nil {
			return nil, err
		}
		sheet.SubSheets[name] = subSheet
		used[folded] = name
	}

	return sheet, nil
}

func indexComponent(c *schema.Component) (*sheetindex.ComponentIndex, error) {
	ci := &sheetindex.ComponentIndex{
		Reference: c.Reference,
		Entries:   map[string]*sheetindex.Entry{},
	}

	folded := make(map[string]string) // case-folded name -> original name
	for name, attr := range c.Attributes {
		key := fold.String(name)
		if existing, ok := folded[key]; ok && existing != name {
			return nil, evalerr.AtIdentifier(evalerr.DuplicateAttr, c.Reference+"."+name, "attribute %q collides with %q under case-insensitive comparison", name, existing)
		}
		folded[key] = name
		ci.Entries[name] = sheetindex.NewEntry(attr)
	}

	return ci, nil
}

// subSheetName derives a sub-sheet's index name from its filename stem,
// falling back to its id when no filename is present (spec §4.9).
func subSheetName(s *schema.Schematic) string {
	if stem := fileStem(s.Meta.FileName); stem != "" {
		return stem
	}
	return s.Meta.ID
}

func fileStem(fileName string) string {
	name := fileName
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' || name[i] == '\\' {
			name = name[i+1:]
			break
		}
	}
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}
