package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/diag"
	"github.com/glox-lang/glox/internal/lexer"
	"github.com/glox-lang/glox/internal/parser"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	astJSON  bool
	astQuery string
)

var astCmd = &cobra.Command{
	Use:   "ast <path|-> [out]",
	Short: "Parse a file and dump its statement sequence",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  showAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().BoolVar(&astJSON, "json", false, "dump the AST as JSON instead of lisp-style text")
	astCmd.Flags().StringVar(&astQuery, "query", "", "gjson path to extract from the JSON AST (implies --json)")
}

func showAST(_ *cobra.Command, args []string) error {
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

	out := os.Stdout
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if astQuery != "" {
		buf, err := json.Marshal(ast.ToJSON(stmts))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, gjson.GetBytes(buf, astQuery).String())
		return nil
	}

	if astJSON {
		buf, err := json.MarshalIndent(ast.ToJSON(stmts), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(buf))
		return nil
	}

	fmt.Fprint(out, ast.Print(stmts))
	return nil
}
