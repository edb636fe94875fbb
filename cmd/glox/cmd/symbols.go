package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/glox-lang/glox/internal/diag"
	"github.com/glox-lang/glox/internal/lexer"
	"github.com/glox-lang/glox/internal/parser"
	"github.com/glox-lang/glox/internal/resolver"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <path|->",
	Short: "List top-level var/fn/class declarations, naturally sorted",
	Args:  cobra.ExactArgs(1),
	RunE:  showSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func showSymbols(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := readSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
		os.Exit(exitFileRead)
	}

	l := lexer.New(source)
	tokens := l.ScanTokens()
	if len(l.Errors()) > 0 {
		reportDiagnostics(diag.FromScanner(l.Errors(), filename, source))
		os.Exit(1)
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		reportDiagnostics(diag.FromParser(p.Errors(), filename, source))
		os.Exit(1)
	}

	names := resolver.GlobalNames(stmts)
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
