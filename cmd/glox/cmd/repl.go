package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/config"
	"github.com/glox-lang/glox/internal/diag"
	"github.com/glox-lang/glox/internal/interp/evaluator"
	"github.com/glox-lang/glox/internal/interp/runtime"
	"github.com/glox-lang/glox/internal/lexer"
	"github.com/glox-lang/glox/internal/parser"
	"github.com/glox-lang/glox/internal/resolver"
	"github.com/spf13/cobra"
)

func runRepl(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return exitOnUsage()
	}

	cfg, err := config.Load()
	if err != nil && verbose {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	eval := evaluator.New(nil)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print(cfg.Prompt)
	for scanner.Scan() {
		line := scanner.Text()
		runReplLine(eval, "<repl>", line, cfg)
		fmt.Print(cfg.Prompt)
	}
	fmt.Println()
	return nil
}

// runReplLine implements spec.md §6's REPL fallback: a line is first
// parsed as a statement sequence; if that fails and the line contains no
// ';', it's retried as a single expression whose non-nil result is printed.
func runReplLine(eval *evaluator.Evaluator, filename, line string, cfg config.Config) {
	stmts, parseErrs, ok := tryParse(line)
	if !ok && !strings.Contains(line, ";") {
		if expr, exprOK := tryParseExpression(line); exprOK {
			runExpression(eval, filename, line, expr, cfg)
			return
		}
	}
	if !ok {
		reportDiagnostics(diag.FromParser(parseErrs, filename, line))
		return
	}

	locals, resolveErrs := resolver.New().Resolve(stmts)
	if len(resolveErrs) > 0 {
		reportDiagnostics(diag.FromResolver(resolveErrs, filename, line))
		return
	}
	replMergeLocals(eval, locals)

	if err := eval.Run(stmts); err != nil {
		reportDiagnostics([]diag.Diagnostic{diag.FromRuntime(err, filename, line)})
	}
}

func tryParse(line string) ([]ast.Stmt, []*parser.Error, bool) {
	l := lexer.New(line)
	tokens := l.ScanTokens()
	if len(l.Errors()) > 0 {
		return nil, nil, false
	}
	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, p.Errors(), false
	}
	return stmts, nil, true
}

func tryParseExpression(line string) (ast.Expr, bool) {
	l := lexer.New(line + ";")
	tokens := l.ScanTokens()
	if len(l.Errors()) > 0 {
		return nil, false
	}
	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 || len(stmts) != 1 {
		return nil, false
	}
	exprStmt, ok := stmts[0].(*ast.ExpressionStmt)
	if !ok {
		return nil, false
	}
	return exprStmt.Expr, true
}

func runExpression(eval *evaluator.Evaluator, filename, line string, expr ast.Expr, cfg config.Config) {
	wrapper := []ast.Stmt{&ast.ExpressionStmt{Expr: expr}}
	locals, resolveErrs := resolver.New().Resolve(wrapper)
	if len(resolveErrs) > 0 {
		reportDiagnostics(diag.FromResolver(resolveErrs, filename, line))
		return
	}
	replMergeLocals(eval, locals)

	value, err := evaluator.EvalStandalone(eval, expr)
	if err != nil {
		reportDiagnostics([]diag.Diagnostic{diag.FromRuntime(err, filename, line)})
		return
	}
	if cfg.PrintResults {
		if _, isNil := value.(runtime.Nil); !isNil {
			fmt.Println(runtime.Stringify(value))
		}
	}
}

// replMergeLocals folds a single line's freshly resolved depth table into
// the long-lived evaluator's table; each REPL line is resolved independently
// since declarations persist across lines only through the shared global
// environment, not a shared scope stack.
func replMergeLocals(eval *evaluator.Evaluator, locals resolver.Locals) {
	eval.MergeLocals(locals)
}

func exitOnUsage() error {
	fmt.Fprintln(os.Stderr, "Error: unexpected arguments")
	os.Exit(exitUsage)
	return nil
}
