package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/racklet/kicad-rs/internal/evaluator"
	"github.com/racklet/kicad-rs/internal/fixture"
	"github.com/racklet/kicad-rs/internal/indexer"
	"github.com/racklet/kicad-rs/internal/schema"
)

var evalCmd = &cobra.Command{
	Use:   "eval [fixture.json]",
	Short: "Index and evaluate a schematic fixture",
	Long: `Load a JSON schematic fixture, build its sheet index, and evaluate
every component attribute's expression in dependency order, printing the
resulting "[sheet.]component.attribute = value" for each one.

Examples:
  kicadeval eval schematic.json
  kicadeval eval --dump schematic.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

var evalDump bool

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&evalDump, "dump", false, "dump the evaluated schematic as JSON after evaluation")
}

func runEval(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError("reading fixture: %v", err)
	}

	schematic, err := fixture.Load(data)
	if err != nil {
		exitWithError("loading fixture: %v", err)
	}

	idx, err := indexer.Index(schematic)
	if err != nil {
		exitWithError("indexing schematic: %v", err)
	}

	if err := evaluator.EvaluateSchematic(idx); err != nil {
		exitWithError("evaluating schematic: %v", err)
	}

	printSchematicValues(schematic, "")

	if evalDump {
		out, err := dumpSchematic(schematic)
		if err != nil {
			exitWithError("dumping schematic: %v", err)
		}
		fmt.Println(out)
	}
	return nil
}

// printSchematicValues prints every component attribute's resulting value,
// one "path = value [unit]" line per attribute: a sheet's components first,
// then its sub-sheets depth-first, each sorted by name.
func printSchematicValues(s *schema.Schematic, prefix string) {
	for _, ref := range sortedComponentRefs(s.Components) {
		comp := s.Components[ref]
		compPath := joinCLIPath(prefix, ref)
		for _, name := range sortedAttrNames(comp.Attributes) {
			attr := comp.Attributes[name]
			fmt.Printf("%s.%s = %s\n", compPath, name, attr.Value)
		}
	}
	for _, name := range sortedSubSheetNames(s.SubSheets) {
		printSchematicValues(s.SubSheets[name], joinCLIPath(prefix, name))
	}
}

func joinCLIPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
