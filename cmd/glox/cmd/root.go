// Package cmd wires glox's cobra command tree (SPEC_FULL.md §2.4).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var jsonDiagnostics bool
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "glox",
	Short: "glox is a tree-walking interpreter for a small scripting language",
	Long: `glox interprets a small, dynamically typed, lexically scoped scripting
language with first-class functions, closures, and single-inheritance
classes.

Run it with no arguments for a REPL, or "glox run <file>" to execute a
script. "glox tokens", "glox ast", and "glox resolve" expose each pipeline
stage for inspection.`,
	Version: Version,
	RunE:    runRepl,
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

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonDiagnostics, "json", false, "emit diagnostics as JSON")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
