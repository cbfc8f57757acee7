// Package sheetindex implements the Sheet Index (C5) and its Entries (C4):
// the mutable, hierarchical structure the Evaluator walks and the AST reads
// through as a Context. Grounded on kicad_rs/src/resolver.rs (Entry,
// SheetIndex, Node::Sheet/Node::Component, and the Context impls).
package sheetindex

import (
	"github.com/racklet/kicad-rs/internal/ast"
	"github.com/racklet/kicad-rs/internal/builtins"
	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/path"
	"github.com/racklet/kicad-rs/internal/schema"
	"github.com/racklet/kicad-rs/internal/value"
)

// ComponentIndex is the indexed form of a schema.Component: its attributes,
// keyed by name, as Entries.
type ComponentIndex struct {
	Reference string
	Entries   map[string]*Entry
}

// Sheet is the indexed form of a schema.Schematic: a node in the Sheet
// Index tree, holding this sheet's own globals, components, and named
// sub-sheets.
type Sheet struct {
	Meta       schema.SchematicMeta
	Globals    map[string]*Entry
	Components map[string]*ComponentIndex
	SubSheets  map[string]*Sheet
}

// SheetIndex is the root of the indexed tree, produced by the Indexer (C9)
// and consumed by the Evaluator (C6). It implements ast.Context directly,
// so expressions resolve against it without an intermediate adapter.
type SheetIndex struct {
	Root *Sheet
}

var _ ast.Context = (*SheetIndex)(nil)

// ResolveEntry resolves a dotted path against the index root and returns the
// target Entry, implementing the Path Resolver's algorithm (spec §4.3). This
// is the entry point for fully-qualified, root-relative lookups (worklist
// paths, the CLI, tests); a reference written inside an expression is
// relative to its *own* sheet and must resolve through a Scope instead (see
// RootScope/Scope.Child), not through this method.
func (idx *SheetIndex) ResolveEntry(identifier string) (*Entry, error) {
	return idx.RootScope().Resolve(identifier)
}

// RootScope returns the Scope rooted at (and currently positioned at) the
// index's own root sheet.
func (idx *SheetIndex) RootScope() *Scope {
	return &Scope{chain: []*Sheet{idx.Root}}
}

// Scope pins path resolution to one sheet plus its chain of ancestors,
// implementing spec §4.6's nesting rule: a path whose first segment names a
// component or sub-sheet matches within the current sheet's own namespace
// first; a bare identifier that isn't found there is retried against each
// enclosing ancestor sheet in turn, all the way up to the root (so a child
// sheet may still reach a parent's globals by bare name). Grounded on
// kicad_rs/src/eval.rs's per-level recursion, where evaluate_schematic
// descends with the sub-sheet's own index instance rather than the root's.
type Scope struct {
	chain []*Sheet // chain[0] is the root; chain[len-1] is the current sheet.
}

var _ ast.Context = (*Scope)(nil)

// Child returns the Scope for the named sub-sheet of s's current sheet,
// extending s's ancestor chain by one level.
func (s *Scope) Child(name string) *Scope {
	current := s.chain[len(s.chain)-1]
	chain := make([]*Sheet, len(s.chain)+1)
	copy(chain, s.chain)
	chain[len(s.chain)] = current.SubSheets[name]
	return &Scope{chain: chain}
}

// Resolve implements the Path Resolver (C3) scoped to s's sheet chain: it
// tries the current sheet first, then walks outward through each ancestor.
// Only a NotFound at one level falls through to the next; any other error
// (a dependency cycle, an overreached path) is definitive and propagates
// immediately rather than being masked by an outer sheet's own miss.
func (s *Scope) Resolve(identifier string) (*Entry, error) {
	entry, _, err := s.ResolveScoped(identifier)
	return entry, err
}

// ResolveScoped is Resolve, plus the Scope owning the resolved Entry — the
// sheet the entry actually lives in, which may be an ancestor of s (reached
// by falling outward) or a descendant reached via a sub-sheet-qualified
// path (e.g. "psu.C1.Value" resolved from the root). The Evaluator uses this
// so that a dependency's own free identifiers are in turn resolved from
// *its* sheet, not from whichever sheet happened to ask for it.
func (s *Scope) ResolveScoped(identifier string) (*Entry, *Scope, error) {
	segs := path.Parse(identifier)
	if len(segs) == 0 {
		return nil, nil, evalerr.AtIdentifier(evalerr.NotFound, identifier, "empty path")
	}

	var last error
	for i := len(s.chain) - 1; i >= 0; i-- {
		entry, owner, err := resolveInSheet(s.chain[:i+1], segs, identifier)
		if err == nil {
			return entry, &Scope{chain: owner}, nil
		}
		if !evalerr.Is(err, evalerr.NotFound) {
			return nil, nil, err
		}
		last = err
	}
	return nil, nil, last
}

// Update resolves identifier within s's scope and applies Entry.Update at
// the target.
func (s *Scope) Update(identifier string, v value.Value) error {
	entry, err := s.Resolve(identifier)
	if err != nil {
		return err
	}
	return entry.Update(v, identifier)
}

// GetValue implements ast.Context: a pure read of the current cache
// snapshot, scoped to s's sheet chain. It never triggers recursive
// evaluation (spec §4.5) — by the time an expression calls this, the
// Evaluator's pre-walk has already resolved the identifier's dependency.
func (s *Scope) GetValue(identifier string) (value.Value, bool) {
	entry, err := s.Resolve(identifier)
	if err != nil {
		return nil, false
	}
	return entry.GetValue()
}

// CallFunction implements ast.Context by delegating to the built-in
// function registry (C7), which is global and carries no sheet scope.
func (s *Scope) CallFunction(name string, arg value.Value) (value.Value, error) {
	return builtins.Call(name, arg)
}

// SetValue implements ast.Context by delegating to Update.
func (s *Scope) SetValue(identifier string, v value.Value) error {
	return s.Update(identifier, v)
}

// resolveInSheet resolves segs against the innermost sheet of chain
// (chain[len-1]), descending into named sub-sheets as segments demand. It
// returns the chain extended to the sheet that actually owns the resolved
// Entry, so a caller can continue resolving that entry's own dependencies
// from its true lexical home.
func resolveInSheet(chain []*Sheet, segs []string, full string) (*Entry, []*Sheet, error) {
	sheet := chain[len(chain)-1]
	seg, rest := segs[0], segs[1:]

	if comp, ok := sheet.Components[seg]; ok {
		entry, err := resolveInComponent(comp, rest, full)
		return entry, chain, err
	}
	if sub, ok := sheet.SubSheets[seg]; ok {
		if len(rest) == 0 {
			return nil, nil, evalerr.AtIdentifier(evalerr.NotFound, full, "path names a sheet, not an attribute")
		}
		return resolveInSheet(append(append([]*Sheet{}, chain...), sub), rest, full)
	}
	if global, ok := sheet.Globals[seg]; ok {
		if len(rest) != 0 {
			return nil, nil, evalerr.AtIdentifier(evalerr.PathOverreach, full, "global %q has no further segments", seg)
		}
		return global, chain, nil
	}
	return nil, nil, evalerr.AtIdentifier(evalerr.NotFound, full, "segment %q not found", seg)
}

func resolveInComponent(comp *ComponentIndex, rest []string, full string) (*Entry, error) {
	var attrName string
	switch len(rest) {
	case 0:
		attrName = schema.PrimaryAttribute
	case 1:
		attrName = rest[0]
	default:
		return nil, evalerr.AtIdentifier(evalerr.PathOverreach, full, "too many segments past component %q", comp.Reference)
	}

	entry, ok := comp.Entries[attrName]
	if !ok {
		return nil, evalerr.AtIdentifier(evalerr.NotFound, full, "component %q has no attribute %q", comp.Reference, attrName)
	}
	return entry, nil
}

// UpdateEntry resolves identifier against the root scope and applies
// Entry.Update at the target, mirroring ResolveEntry's errors.
func (idx *SheetIndex) UpdateEntry(identifier string, v value.Value) error {
	return idx.RootScope().Update(identifier, v)
}

// GetValue implements ast.Context against the root scope; see Scope.GetValue
// for the scoped lookup recursive evaluation actually drives.
func (idx *SheetIndex) GetValue(identifier string) (value.Value, bool) {
	return idx.RootScope().GetValue(identifier)
}

// CallFunction implements ast.Context by delegating to the built-in
// function registry (C7).
func (idx *SheetIndex) CallFunction(name string, arg value.Value) (value.Value, error) {
	return builtins.Call(name, arg)
}

// SetValue implements ast.Context by delegating to the root scope's Update.
func (idx *SheetIndex) SetValue(identifier string, v value.Value) error {
	return idx.RootScope().Update(identifier, v)
}
