package sheetindex

import (
	"strconv"
	"strings"

	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/schema"
	"github.com/racklet/kicad-rs/internal/value"
)

// Entry (C4) is a mutable borrow of one schema.Attribute plus the cached
// Value and in-progress flag the Evaluator drives its state machine with.
type Entry struct {
	attr *schema.Attribute

	cached    value.Value
	hasCached bool

	inProgress bool
}

// NewEntry wraps attr. An Attribute whose expression is empty is a pre-set
// Entry (spec §4.6): its cache is seeded now from the Attribute's textual
// value so that no AST parse is ever attempted on an empty expression.
func NewEntry(attr *schema.Attribute) *Entry {
	e := &Entry{attr: attr}
	if strings.TrimSpace(attr.Expression) == "" {
		e.cached = ParseLiteral(attr.Value)
		e.hasCached = true
	}
	return e
}

// GetExpression returns the Entry's source expression text.
func (e *Entry) GetExpression() string { return e.attr.Expression }

// GetValue returns the Entry's current cached Value, if any.
func (e *Entry) GetValue() (value.Value, bool) { return e.cached, e.hasCached }

// ValueDefined reports whether the Entry already has a cached Value. As a
// side effect it asserts the in-progress flag: if the flag was already set
// and no cached value is present, this is a re-entrant call and signals a
// dependency cycle (spec §4.4).
func (e *Entry) ValueDefined(path string) (bool, error) {
	if e.inProgress && !e.hasCached {
		return false, evalerr.AtPath(evalerr.DependencyCycle, path, "re-entered while still in progress")
	}
	e.inProgress = true
	return e.hasCached, nil
}

// Update writes newValue into the cache, clears the in-progress flag, and
// writes the textual form back into the underlying Attribute's Value field
// (appending " <unit>" when a unit is present). If a prior cached value
// existed, its Kind must match newValue's exactly, else *TypeMismatch*.
func (e *Entry) Update(newValue value.Value, path string) error {
	if e.hasCached && !value.SameType(e.cached, newValue) {
		return evalerr.AtPath(evalerr.TypeMismatch, path, "cannot overwrite a %s value with a %s value", e.cached.Kind(), newValue.Kind())
	}

	e.cached = newValue
	e.hasCached = true
	e.inProgress = false

	text := newValue.String()
	if e.attr.Unit != "" {
		text += " " + e.attr.Unit
	}
	e.attr.Value = text
	return nil
}

// ParseLiteral interprets an Attribute's raw textual value as a Value,
// trying Integer, then Float, then Boolean, and falling back to String;
// blank text yields Empty. Used to seed pre-set Entries; it never reports an error because any text
// is at minimum a valid String value.
func ParseLiteral(text string) value.Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return value.NewEmpty()
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return value.NewInt(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return value.NewFloat(f)
	}
	if trimmed == "true" {
		return value.NewBool(true)
	}
	if trimmed == "false" {
		return value.NewBool(false)
	}
	return value.NewString(text)
}
