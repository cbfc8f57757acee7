// Package evaluator implements the Evaluator (C6): the depth-first,
// cycle-detecting dependency-resolution algorithm that drives each Entry
// through Unevaluated -> InProgress -> Evaluated. Grounded on kicad_rs's
// resolver evaluate_test/resolve_test DFS loop (kicad_rs/src/resolver.rs).
package evaluator

import (
	"sort"

	"github.com/racklet/kicad-rs/internal/ast"
	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/exprparser"
	"github.com/racklet/kicad-rs/internal/sheetindex"
)

// EvaluateSchematic walks the whole Sheet Index, evaluating every
// Component attribute (spec §4.6). On success, every evaluated Attribute's
// Value string has been updated in place.
func EvaluateSchematic(idx *sheetindex.SheetIndex) error {
	return evaluateSheet(idx.RootScope(), idx.Root, "")
}

// evaluateSheet implements the per-level algorithm: post-order descent into
// sub-sheets, then a snapshotted work list of this sheet's own attributes.
// scope is positioned at sheet itself, so that free identifiers in any of
// this sheet's expressions resolve within it (and its ancestors) first,
// per spec §4.6 — not against the index root regardless of nesting depth.
func evaluateSheet(scope *sheetindex.Scope, sheet *sheetindex.Sheet, prefix string) error {
	// Post-order sheet descent: a parent may reference into a child, so the
	// child's namespace must be fully resolved first.
	subNames := sortedKeys(sheet.SubSheets)
	for _, name := range subNames {
		if err := evaluateSheet(scope.Child(name), sheet.SubSheets[name], joinPath(prefix, name)); err != nil {
			return err
		}
	}

	// Snapshot the work list before any evaluation at this level, so newly
	// written caches do not affect enumeration.
	type workItem struct {
		path  string
		entry *sheetindex.Entry
	}
	var worklist []workItem
	for _, compName := range sortedComponentKeys(sheet.Components) {
		comp := sheet.Components[compName]
		for _, attrName := range sortedEntryKeys(comp.Entries) {
			worklist = append(worklist, workItem{
				path:  joinPath(joinPath(prefix, compName), attrName),
				entry: comp.Entries[attrName],
			})
		}
	}

	for _, w := range worklist {
		if err := evaluate(scope, w.entry, w.path); err != nil {
			return err
		}
	}
	return nil
}

// evaluate computes, if necessary, the Value of entry (displayed as path in
// any error), recursively evaluating its free-variable dependencies first.
// Each dependency is resolved — and then itself evaluated — from its own
// owning sheet's Scope (via ResolveScoped), not from scope, so that a
// dependency living in a different sheet resolves its own free identifiers
// against its own namespace rather than the caller's.
func evaluate(scope *sheetindex.Scope, entry *sheetindex.Entry, path string) error {
	defined, err := entry.ValueDefined(path)
	if err != nil {
		return err
	}
	if defined {
		return nil
	}

	node, err := exprparser.Parse(entry.GetExpression())
	if err != nil {
		return evalerr.AtPath(evalerr.ExpressionSyntax, path, "%v", err)
	}

	for _, id := range ast.FreeIdentifiers(node) {
		depEntry, depScope, err := scope.ResolveScoped(id)
		if err != nil {
			return err
		}
		if err := evaluate(depScope, depEntry, id); err != nil {
			return err
		}
	}

	result, err := ast.Eval(node, scope)
	if err != nil {
		return err
	}

	return entry.Update(result, path)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func sortedKeys(m map[string]*sheetindex.Sheet) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedEntryKeys(m map[string]*sheetindex.Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedComponentKeys(m map[string]*sheetindex.ComponentIndex) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
