package cmd

import (
	"fmt"
	"os"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/diag"
	"github.com/glox-lang/glox/internal/interp/evaluator"
	"github.com/glox-lang/glox/internal/interp/runtime"
	"github.com/glox-lang/glox/internal/lexer"
	"github.com/glox-lang/glox/internal/parser"
	"github.com/glox-lang/glox/internal/resolver"
	"github.com/spf13/cobra"
)

var traceFlag bool

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Run a glox script file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&traceFlag, "trace", false, "trace statement and call execution as JSON")
}

func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := readSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
		os.Exit(exitFileRead)
	}

	stmts, parseDiags, ok := compileProgram(filename, source)
	if !ok {
		reportDiagnostics(parseDiags)
		os.Exit(1)
	}

	locals, resolveErrs := resolver.New().Resolve(stmts)
	if len(resolveErrs) > 0 {
		reportDiagnostics(diag.FromResolver(resolveErrs, filename, source))
		os.Exit(1)
	}

	eval := evaluator.New(locals)
	if traceFlag {
		eval.SetTracer(evaluator.NewJSONTracer(os.Stderr))
	}

	if err := runGuarded(eval, stmts); err != nil {
		reportDiagnostics([]diag.Diagnostic{diag.FromRuntime(err, filename, source)})
		os.Exit(exitFailure)
	}
	return nil
}

// compileProgram scans and parses source. Scanner errors abort before
// parsing even begins (spec.md §7); a non-empty parser error list means
// the caller must not resolve or evaluate (spec.md §9).
func compileProgram(filename, source string) ([]ast.Stmt, []diag.Diagnostic, bool) {
	l := lexer.New(source)
	tokens := l.ScanTokens()
	if len(l.Errors()) > 0 {
		return nil, diag.FromScanner(l.Errors(), filename, source), false
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, diag.FromParser(p.Errors(), filename, source), false
	}
	return stmts, nil, true
}

// runGuarded executes stmts and converts an escaped control-flow signal
// into the "implementation bug" report spec.md §9 calls for, instead of
// letting it print as a confusing runtime error.
func runGuarded(eval *evaluator.Evaluator, stmts []ast.Stmt) error {
	err := eval.Run(stmts)
	switch err.(type) {
	case nil:
		return nil
	case *runtime.ReturnSignal, *runtime.BreakSignal:
		fmt.Fprintf(os.Stderr, "glox: internal error: uncaught control signal %T\n", err)
		os.Exit(exitFailure)
		return nil
	default:
		return err
	}
}

func reportDiagnostics(items []diag.Diagnostic) {
	if jsonDiagnostics {
		buf, err := diag.EncodeJSON(items)
		if err == nil {
			fmt.Fprintln(os.Stderr, string(buf))
			return
		}
	}
	for _, d := range items {
		fmt.Fprintln(os.Stderr, d.Format())
	}
}
