// Package evaluator tree-walks a resolved glox program and produces its
// observable effects: printed output, mutated environments, and runtime
// errors (spec.md §4.5).
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/interp/runtime"
	"github.com/glox-lang/glox/internal/resolver"
)

// Tracer receives one event per statement and call boundary when a caller
// wants execution visibility (wired to `glox run --trace`; see
// SPEC_FULL.md §2.2). A nil Tracer means no tracing.
type Tracer interface {
	Statement(line int, kind string)
	Call(name string, line int)
	Return(name string)
}

// Evaluator holds the global environment, the currently executing scope
// (swapped on every block and call), and the resolver's depth table. It implements
// runtime.Interpreter so Callable values can run their bodies without the
// runtime package importing the evaluator.
type Evaluator struct {
	Globals     *runtime.Environment
	environment *runtime.Environment
	locals      resolver.Locals
	out         io.Writer
	tracer      Tracer
}

// New creates an Evaluator with a fresh global environment pre-populated
// with the native builtins.
func New(locals resolver.Locals) *Evaluator {
	globals := runtime.NewEnvironment()
	runtime.DefineGlobals(globals)
	return &Evaluator{Globals: globals, environment: globals, locals: locals, out: os.Stdout}
}

// SetOutput redirects `print` output; tests use this to capture stdout.
func (e *Evaluator) SetOutput(w io.Writer) { e.out = w }

// SetTracer installs a Tracer; pass nil to disable tracing.
func (e *Evaluator) SetTracer(t Tracer) { e.tracer = t }

// MergeLocals folds additional resolved depth entries into the evaluator's
// table. The REPL resolves each line independently against its own scope
// stack, so every line's table is merged in rather than replacing the
// running one (cmd/glox/cmd/repl.go).
func (e *Evaluator) MergeLocals(locals resolver.Locals) {
	if e.locals == nil {
		e.locals = make(resolver.Locals, len(locals))
	}
	for node, depth := range locals {
		e.locals[node] = depth
	}
}

// EvalStandalone evaluates a single expression against the evaluator's
// current environment, for the REPL's bare-expression fallback
// (cmd/glox/cmd/repl.go).
func EvalStandalone(e *Evaluator, expr ast.Expr) (runtime.Value, error) {
	return e.eval(expr)
}

// Run executes a top-level statement sequence against globals.
func (e *Evaluator) Run(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := e.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteBlock implements runtime.Interpreter: it runs stmts under env and
// restores the previous environment on every exit path, including a
// ReturnSignal or RuntimeError unwinding through it (spec.md §5 "Resource
// scoping").
func (e *Evaluator) ExecuteBlock(stmts []ast.Stmt, env *runtime.Environment) error {
	previous := e.environment
	e.environment = env
	defer func() { e.environment = previous }()

	for _, s := range stmts {
		if err := e.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execute(s ast.Stmt) error {
	if e.tracer != nil {
		e.tracer.Statement(statementLine(s), fmt.Sprintf("%T", s))
	}
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		_, err := e.eval(n.Expr)
		return err
	case *ast.PrintStmt:
		v, err := e.eval(n.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, runtime.Stringify(v))
		return nil
	case *ast.VarStmt:
		var value runtime.Value = runtime.NilValue
		if n.Init != nil {
			v, err := e.eval(n.Init)
			if err != nil {
				return err
			}
			value = v
		}
		e.environment.Define(n.Name.Lexeme, value)
		return nil
	case *ast.BlockStmt:
		return e.ExecuteBlock(n.Stmts, runtime.NewEnclosed(e.environment))
	case *ast.IfStmt:
		cond, err := e.eval(n.Cond)
		if err != nil {
			return err
		}
		if runtime.IsTruthy(cond) {
			return e.execute(n.Then)
		}
		if n.Else != nil {
			return e.execute(n.Else)
		}
		return nil
	case *ast.WhileStmt:
		return e.executeWhile(n)
	case *ast.BreakStmt:
		return &runtime.BreakSignal{}
	case *ast.ReturnStmt:
		var value runtime.Value = runtime.NilValue
		if n.Value != nil {
			v, err := e.eval(n.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &runtime.ReturnSignal{Value: value}
	case *ast.FunctionStmt:
		fn := &runtime.Function{Decl: n.Decl, Closure: e.environment}
		e.environment.Define(n.Decl.Name.Lexeme, fn)
		return nil
	case *ast.ClassStmt:
		return e.executeClass(n)
	default:
		return fmt.Errorf("evaluator: unknown statement %T", s)
	}
}

// executeWhile loops until the condition is falsy; a BreakSignal unwinding
// out of the body ends the loop normally, any other error propagates
// (spec.md §4.5).
func (e *Evaluator) executeWhile(n *ast.WhileStmt) error {
	for {
		cond, err := e.eval(n.Cond)
		if err != nil {
			return err
		}
		if !runtime.IsTruthy(cond) {
			return nil
		}
		if err := e.execute(n.Body); err != nil {
			if _, ok := err.(*runtime.BreakSignal); ok {
				return nil
			}
			return err
		}
	}
}

func statementLine(s ast.Stmt) int {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		return n.Keyword.Pos.Line
	case *ast.BreakStmt:
		return n.Keyword.Pos.Line
	default:
		return 0
	}
}
