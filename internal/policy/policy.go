// Package policy implements an optional downstream component classifier,
// kept deliberately outside the core evaluator's call graph (it is never
// invoked by internal/evaluator or internal/indexer). It reuses the same
// expression machinery the core uses instead of a bespoke rule DSL.
// Grounded on kicad_rs/src/policy.rs and kicad_rs/src/classifier.rs.
package policy

import (
	"github.com/racklet/kicad-rs/internal/ast"
	"github.com/racklet/kicad-rs/internal/evalerr"
	"github.com/racklet/kicad-rs/internal/exprparser"
	"github.com/racklet/kicad-rs/internal/schema"
	"github.com/racklet/kicad-rs/internal/value"
)

// Rule names a predicate expression that every matching component must
// satisfy. RequireTags restricts the rule to components carrying all of
// the listed classes; an empty RequireTags applies the rule to every
// component.
type Rule struct {
	Name        string
	Predicate   string
	RequireTags []string
}

// Policy is an ordered set of Rules evaluated against every component of a
// Schematic.
type Policy struct {
	Rules []Rule
}

// Violation reports a component that failed a Rule's Predicate, or whose
// Predicate could not even be evaluated.
type Violation struct {
	Component string
	Rule      string
	Err       error // non-nil when the predicate itself failed to evaluate
}

// Classify evaluates policy's rules against every component of s, without
// consulting the sheet index built by internal/indexer (classification is
// a separate, read-only pass over the raw schema tree).
func Classify(s *schema.Schematic, pol Policy) ([]Violation, error) {
	var violations []Violation
	classifySheet(s, pol, &violations)
	return violations, nil
}

func classifySheet(s *schema.Schematic, pol Policy, out *[]Violation) {
	for _, comp := range s.Components {
		classifyComponent(comp, pol, out)
	}
	for _, sub := range s.SubSheets {
		classifySheet(sub, pol, out)
	}
}

func classifyComponent(c *schema.Component, pol Policy, out *[]Violation) {
	ctx := &componentContext{attrs: c.Attributes}

	for _, rule := range pol.Rules {
		if !hasAllTags(c.Classes, rule.RequireTags) {
			continue
		}

		node, err := exprparser.Parse(rule.Predicate)
		if err != nil {
			*out = append(*out, Violation{Component: c.Reference, Rule: rule.Name, Err: err})
			continue
		}

		result, err := ast.Eval(node, ctx)
		if err != nil {
			*out = append(*out, Violation{Component: c.Reference, Rule: rule.Name, Err: err})
			continue
		}

		ok, isBool := value.AsBool(result)
		if !isBool {
			*out = append(*out, Violation{Component: c.Reference, Rule: rule.Name, Err: evalerr.New(evalerr.TypeMismatch, "policy rule %q did not evaluate to a boolean", rule.Name)})
			continue
		}
		if !ok {
			*out = append(*out, Violation{Component: c.Reference, Rule: rule.Name})
		}
	}
}

func hasAllTags(classes, required []string) bool {
	if len(required) == 0 {
		return true
	}
	has := make(map[string]bool, len(classes))
	for _, c := range classes {
		has[c] = true
	}
	for _, r := range required {
		if !has[r] {
			return false
		}
	}
	return true
}

// componentContext implements ast.Context against one component's own
// already-evaluated attributes; policy predicates cannot call functions or
// assign values.
type componentContext struct {
	attrs map[string]*schema.Attribute
}

func (c *componentContext) GetValue(identifier string) (value.Value, bool) {
	attr, ok := c.attrs[identifier]
	if !ok {
		return nil, false
	}
	// Predicates see an attribute's raw serialized text as a String, not a
	// re-parsed literal: classification runs over an already-evaluated (or
	// still pre-set) schema tree, where the canonical form is the text a
	// real KiCad tool would show the user.
	return value.NewString(attr.Value), true
}

func (c *componentContext) CallFunction(name string, arg value.Value) (value.Value, error) {
	return nil, evalerr.AtIdentifier(evalerr.UnknownFunction, name, "function calls are not available inside a policy predicate")
}

func (c *componentContext) SetValue(identifier string, v value.Value) error {
	return evalerr.AtIdentifier(evalerr.TypeMismatch, identifier, "policy predicates cannot assign values")
}
