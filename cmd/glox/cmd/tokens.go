package cmd

import (
	"fmt"
	"os"

	"github.com/glox-lang/glox/internal/diag"
	"github.com/glox-lang/glox/internal/lexer"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <path|->",
	Short: "Scan a file and dump its token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  showTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func showTokens(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := readSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
		os.Exit(exitFileRead)
	}

	l := lexer.New(source)
	tokens := l.ScanTokens()
	for _, t := range tokens {
		fmt.Println(t.String())
	}
	if len(l.Errors()) > 0 {
		reportDiagnostics(diag.FromScanner(l.Errors(), filename, source))
		os.Exit(1)
	}
	return nil
}
