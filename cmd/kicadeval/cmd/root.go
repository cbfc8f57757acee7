package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "kicadeval",
	Short: "Hierarchical KiCad schematic expression evaluator",
	Long: `kicadeval resolves and evaluates attribute expressions across a
hierarchical KiCad schematic: sheets, components, and their attributes.

Given a schematic tree (here, loaded from a JSON fixture standing in for
the output of an external KiCad parser), it builds a sheet index, evaluates
every attribute's expression with dependency-ordered, cycle-detecting
recursion, and writes the computed values back into the tree.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
