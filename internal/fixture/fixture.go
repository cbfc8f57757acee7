// Package fixture loads the JSON test-fixture format used by this repo's
// own tests and the kicadeval CLI's demo commands. It is explicitly NOT a
// KiCad file parser: real schematics are expected to arrive already built
// as a schema.Schematic by an external, out-of-scope component. This
// package exists only to give tests and a demo CLI a convenient, inspectable
// stand-in. Loading walks the document with tidwall/gjson.
package fixture

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/racklet/kicad-rs/internal/schema"
)

// Load parses a JSON fixture document into a schema.Schematic.
func Load(data []byte) (*schema.Schematic, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("fixture: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	return parseSchematic(root), nil
}

func parseSchematic(node gjson.Result) *schema.Schematic {
	s := &schema.Schematic{
		Meta: schema.SchematicMeta{
			ID:       node.Get("id").String(),
			FileName: node.Get("file_name").String(),
			Title:    node.Get("title").String(),
			Revision: node.Get("revision").String(),
			Company:  node.Get("company").String(),
		},
		Globals:    map[string]*schema.Attribute{},
		Components: map[string]*schema.Component{},
		SubSheets:  map[string]*schema.Schematic{},
	}

	for _, g := range node.Get("globals").Array() {
		attr := parseAttribute(g)
		s.Globals[attr.Name] = attr
	}

	for _, c := range node.Get("components").Array() {
		comp := parseComponent(c)
		s.Components[comp.Reference] = comp
	}

	for _, sub := range node.Get("sheets").Array() {
		child := parseSchematic(sub)
		key := child.Meta.FileName
		if key == "" {
			key = child.Meta.ID
		}
		s.SubSheets[key] = child
	}

	return s
}

func parseComponent(node gjson.Result) *schema.Component {
	c := &schema.Component{
		Reference: node.Get("reference").String(),
		Attributes: map[string]*schema.Attribute{},
	}

	labels := node.Get("labels")
	c.Labels = schema.ComponentLabels{
		FootprintLibrary: labels.Get("footprint_library").String(),
		FootprintName:    labels.Get("footprint_name").String(),
		SymbolLibrary:    labels.Get("symbol_library").String(),
		SymbolName:       labels.Get("symbol_name").String(),
		Model:            labels.Get("model").String(),
		Datasheet:        labels.Get("datasheet").String(),
		Extra:            map[string]string{},
	}
	labels.Get("extra").ForEach(func(key, value gjson.Result) bool {
		c.Labels.Extra[key.String()] = value.String()
		return true
	})

	for _, class := range node.Get("classes").Array() {
		c.Classes = append(c.Classes, class.String())
	}

	for _, a := range node.Get("attributes").Array() {
		attr := parseAttribute(a)
		c.Attributes[attr.Name] = attr
	}

	return c
}

func parseAttribute(node gjson.Result) *schema.Attribute {
	return &schema.Attribute{
		Name:       node.Get("name").String(),
		Value:      node.Get("value").String(),
		Expression: node.Get("expression").String(),
		Unit:       node.Get("unit").String(),
		Comment:    node.Get("comment").String(),
	}
}
