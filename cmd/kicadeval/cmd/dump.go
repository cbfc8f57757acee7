package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/racklet/kicad-rs/internal/fixture"
	"github.com/racklet/kicad-rs/internal/schema"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [fixture.json]",
	Short: "Re-serialize a schematic fixture without evaluating it",
	Long:  `Load a JSON schematic fixture and print it back out, useful for checking how a fixture is read into the schema model. Component labels are not written, and entries are emitted in sorted order.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError("reading fixture: %v", err)
	}

	schematic, err := fixture.Load(data)
	if err != nil {
		exitWithError("loading fixture: %v", err)
	}

	out, err := dumpSchematic(schematic)
	if err != nil {
		exitWithError("dumping schematic: %v", err)
	}
	fmt.Println(out)
	return nil
}

// dumpSchematic serializes s to JSON by incrementally setting paths with
// sjson, using the fixture format fixture.Load reads. Component labels are
// not written.
func dumpSchematic(s *schema.Schematic) (string, error) {
	return dumpSchematicAt("", s)
}

func dumpSchematicAt(json string, s *schema.Schematic) (string, error) {
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		json, err = sjson.Set(json, path, value)
	}

	set("id", s.Meta.ID)
	set("file_name", s.Meta.FileName)
	set("title", s.Meta.Title)
	set("revision", s.Meta.Revision)
	set("company", s.Meta.Company)
	if err != nil {
		return "", err
	}

	globalIdx := 0
	for _, name := range sortedAttrNames(s.Globals) {
		attr := s.Globals[name]
		prefix := fmt.Sprintf("globals.%d.", globalIdx)
		setAttribute(set, prefix, attr)
		globalIdx++
	}

	compIdx := 0
	for _, ref := range sortedComponentRefs(s.Components) {
		comp := s.Components[ref]
		prefix := fmt.Sprintf("components.%d.", compIdx)
		set(prefix+"reference", comp.Reference)
		for _, class := range comp.Classes {
			json, err = sjson.SetRaw(json, prefix+"classes.-1", fmt.Sprintf("%q", class))
			if err != nil {
				return "", err
			}
		}
		attrIdx := 0
		for _, name := range sortedAttrNames(comp.Attributes) {
			setAttribute(set, fmt.Sprintf("%sattributes.%d.", prefix, attrIdx), comp.Attributes[name])
			attrIdx++
		}
		compIdx++
	}
	if err != nil {
		return "", err
	}

	sheetIdx := 0
	for _, name := range sortedSubSheetNames(s.SubSheets) {
		sub := s.SubSheets[name]
		subJSON, subErr := dumpSchematicAt("", sub)
		if subErr != nil {
			return "", subErr
		}
		json, err = sjson.SetRaw(json, fmt.Sprintf("sheets.%d", sheetIdx), subJSON)
		if err != nil {
			return "", err
		}
		sheetIdx++
	}

	return json, nil
}

func setAttribute(set func(string, any), prefix string, attr *schema.Attribute) {
	set(prefix+"name", attr.Name)
	set(prefix+"value", attr.Value)
	set(prefix+"expression", attr.Expression)
	set(prefix+"unit", attr.Unit)
	set(prefix+"comment", attr.Comment)
}

func sortedAttrNames(m map[string]*schema.Attribute) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func sortedComponentRefs(m map[string]*schema.Component) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func sortedSubSheetNames(m map[string]*schema.Schematic) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
