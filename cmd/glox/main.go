// Command glox is a tree-walking interpreter for a small, dynamically
// typed, lexically scoped scripting language (SPEC_FULL.md).
package main

import (
	"os"

	"github.com/glox-lang/glox/cmd/glox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
