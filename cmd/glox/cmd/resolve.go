package cmd

import (
	"fmt"
	"os"

	"github.com/glox-lang/glox/internal/diag"
	"github.com/glox-lang/glox/internal/lexer"
	"github.com/glox-lang/glox/internal/parser"
	"github.com/glox-lang/glox/internal/resolver"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path|->",
	Short: "Run the static resolver and report scope/binding errors",
	Args:  cobra.ExactArgs(1),
	RunE:  showResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func showResolve(_ *cobra.Command, args []string) error {
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

	_, resolveErrs := resolver.New().Resolve(stmts)
	if len(resolveErrs) > 0 {
		reportDiagnostics(diag.FromResolver(resolveErrs, filename, source))
		os.Exit(1)
	}
	fmt.Println("ok: no scope or binding errors")
	return nil
}
