package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/racklet/kicad-rs/internal/fixture"
	"github.com/racklet/kicad-rs/internal/policy"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [fixture.json]",
	Short: "Run an optional policy classification pass over a schematic",
	Long: `Evaluate a fixed set of policy rules against every component of a
schematic, independent of the core evaluator. This is a demo of the
optional downstream classification capability; it is never invoked by
"kicadeval eval".`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

// demoPolicy is a small built-in rule set exercising policy.Classify from
// the CLI without requiring a separate policy file format.
var demoPolicy = policy.Policy{
	Rules: []policy.Rule{
		{Name: "has-value", Predicate: `Value != ""`},
	},
}

func runClassify(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError("reading fixture: %v", err)
	}

	schematic, err := fixture.Load(data)
	if err != nil {
		exitWithError("loading fixture: %v", err)
	}

	violations, err := policy.Classify(schematic, demoPolicy)
	if err != nil {
		exitWithError("classifying schematic: %v", err)
	}

	if len(violations) == 0 {
		fmt.Println("no violations")
		return nil
	}
	for _, v := range violations {
		if v.Err != nil {
			fmt.Printf("%s: rule %q failed to evaluate: %v\n", v.Component, v.Rule, v.Err)
			continue
		}
		fmt.Printf("%s: violates rule %q\n", v.Component, v.Rule)
	}
	return nil
}
