// Package path implements the Path Resolver's symbolic-name splitting (C3).
// The actual tree walk lives in internal/sheetindex, which owns the Node
// types a Path is resolved against; this package only owns the textual
// convention: a non-empty sequence of dot-separated segments with empty
// segments dropped (spec §4.3).
package path

import "strings"

// Path is a parsed, non-empty sequence of path segments.
type Path []string

// Parse splits a dotted symbolic identifier into its segments, dropping any
// empty segments produced by leading, trailing, or repeated dots.
func Parse(identifier string) Path {
	raw := strings.Split(identifier, ".")
	segments := make(Path, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// String rejoins the path's segments with '.'.
func (p Path) String() string {
	return strings.Join(p, ".")
}
