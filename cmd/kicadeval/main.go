// Command kicadeval is a demo CLI driving the hierarchical expression
// evaluator core over JSON schematic fixtures.
package main

import (
	"fmt"
	"os"

	"github.com/racklet/kicad-rs/cmd/kicadeval/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
