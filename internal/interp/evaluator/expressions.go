package evaluator

import (
	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/interp/runtime"
	"github.com/glox-lang/glox/pkg/token"
)

func (e *Evaluator) eval(expr ast.Expr) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return literalValue(n), nil
	case *ast.Variable:
		return e.lookupVariable(n.Name, n)
	case *ast.Grouping:
		return e.eval(n.Inner)
	case *ast.Unary:
		return e.evalUnary(n)
	case *ast.Mutate:
		return e.evalMutate(n)
	case *ast.Binary:
		return e.evalBinary(n)
	case *ast.Logical:
		return e.evalLogical(n)
	case *ast.Ternary:
		return e.evalTernary(n)
	case *ast.Assign:
		return e.evalAssign(n)
	case *ast.Call:
		return e.evalCall(n)
	case *ast.Get:
		return e.evalGet(n)
	case *ast.Set:
		return e.evalSet(n)
	case *ast.This:
		return e.lookupVariable(n.Keyword, n)
	case *ast.Super:
		return e.evalSuper(n)
	case *ast.Lambda:
		return &runtime.Function{Decl: n.Decl, Closure: e.environment}, nil
	default:
		return nil, &runtime.TypeError{Kind: runtime.TypePropertyAccess, Name: "unknown expression"}
	}
}

func literalValue(n *ast.Literal) runtime.Value {
	switch n.Kind {
	case token.NumberLiteral:
		return runtime.Number(n.Num)
	case token.StringLiteral:
		return runtime.String(n.Str)
	case token.BoolLiteral:
		return runtime.Bool(n.Bool)
	default:
		return runtime.NilValue
	}
}

// lookupVariable implements spec.md §4.5's Variable/This rule: a resolved
// depth uses GetAt directly; an unresolved one falls back to globals.
func (e *Evaluator) lookupVariable(name token.Token, node ast.Expr) (runtime.Value, error) {
	if dist, ok := e.locals[node]; ok {
		return e.environment.GetAt(dist, name.Lexeme), nil
	}
	v, err := e.Globals.Get(name.Lexeme)
	if err != nil {
		err.Line = name.Pos.Line
		return nil, err
	}
	return v, nil
}

func (e *Evaluator) evalAssign(n *ast.Assign) (runtime.Value, error) {
	value, err := e.eval(n.Value)
	if err != nil {
		return nil, err
	}
	if dist, ok := e.locals[n]; ok {
		e.environment.AssignAt(dist, n.Name.Lexeme, value)
		return value, nil
	}
	if uerr := e.Globals.Assign(n.Name.Lexeme, value); uerr != nil {
		uerr.Line = n.Name.Pos.Line
		return nil, uerr
	}
	return value, nil
}

func (e *Evaluator) evalUnary(n *ast.Unary) (runtime.Value, error) {
	v, err := e.eval(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case token.MINUS:
		num, ok := v.(runtime.Number)
		if !ok {
			return nil, &runtime.ArithmeticError{Kind: runtime.UnaryMinus, Line: n.Op.Pos.Line}
		}
		return -num, nil
	case token.BANG:
		return runtime.Bool(!runtime.IsTruthy(v)), nil
	default:
		return nil, &runtime.ArithmeticError{Kind: runtime.UnaryMinus, Line: n.Op.Pos.Line}
	}
}

// evalMutate implements ++/--: the operand must resolve to a Variable
// (spec.md §3), and its current value must be a Number. Prefix yields the
// post-value, postfix yields the pre-value.
func (e *Evaluator) evalMutate(n *ast.Mutate) (runtime.Value, error) {
	variable, ok := n.Operand.(*ast.Variable)
	if !ok {
		return nil, &runtime.MutationError{Line: n.Op.Pos.Line}
	}
	current, err := e.lookupVariable(variable.Name, variable)
	if err != nil {
		return nil, err
	}
	num, ok := current.(runtime.Number)
	if !ok {
		return nil, &runtime.MutationError{Line: n.Op.Pos.Line}
	}

	delta := runtime.Number(1)
	if n.Op.Kind == token.MINUS_MINUS {
		delta = -1
	}
	updated := num + delta

	if dist, ok := e.locals[variable]; ok {
		e.environment.AssignAt(dist, variable.Name.Lexeme, updated)
	} else if uerr := e.Globals.Assign(variable.Name.Lexeme, updated); uerr != nil {
		uerr.Line = n.Op.Pos.Line
		return nil, uerr
	}

	if n.Postfix {
		return num, nil
	}
	return updated, nil
}

func (e *Evaluator) evalBinary(n *ast.Binary) (runtime.Value, error) {
	if n.Op.Kind == token.COMMA {
		if _, err := e.eval(n.Left); err != nil {
			return nil, err
		}
		return e.eval(n.Right)
	}

	left, err := e.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.PLUS:
		return evalPlus(left, right, n.Op.Pos.Line)
	case token.MINUS:
		return numericBinary(left, right, n.Op.Pos.Line, runtime.BinaryMinus, func(a, b float64) runtime.Value { return runtime.Number(a - b) })
	case token.STAR:
		return numericBinary(left, right, n.Op.Pos.Line, runtime.BinaryMult, func(a, b float64) runtime.Value { return runtime.Number(a * b) })
	case token.SLASH:
		rn, ok1 := right.(runtime.Number)
		if ok1 && rn == 0 {
			if _, ok0 := left.(runtime.Number); ok0 {
				return nil, &runtime.ArithmeticError{Kind: runtime.BinaryDivideByZero, Line: n.Op.Pos.Line}
			}
		}
		return numericBinary(left, right, n.Op.Pos.Line, runtime.BinaryDiv, func(a, b float64) runtime.Value { return runtime.Number(a / b) })
	case token.GREATER:
		return comparisonBinary(left, right, n.Op.Pos.Line, func(a, b float64) bool { return a > b })
	case token.GREATER_EQUAL:
		return comparisonBinary(left, right, n.Op.Pos.Line, func(a, b float64) bool { return a >= b })
	case token.LESS:
		return comparisonBinary(left, right, n.Op.Pos.Line, func(a, b float64) bool { return a < b })
	case token.LESS_EQUAL:
		return comparisonBinary(left, right, n.Op.Pos.Line, func(a, b float64) bool { return a <= b })
	case token.EQUAL_EQUAL:
		return runtime.Bool(runtime.Equal(left, right)), nil
	case token.BANG_EQUAL:
		return runtime.Bool(!runtime.Equal(left, right)), nil
	default:
		return nil, &runtime.ArithmeticError{Kind: runtime.BinaryComparison, Line: n.Op.Pos.Line}
	}
}

// evalPlus implements spec.md §4.5's '+': Number+Number, String+String, or
// mixed Number/String concatenation via decimal formatting.
func evalPlus(left, right runtime.Value, line int) (runtime.Value, error) {
	if ln, ok := left.(runtime.Number); ok {
		if rn, ok := right.(runtime.Number); ok {
			return ln + rn, nil
		}
		if rs, ok := right.(runtime.String); ok {
			return runtime.String(runtime.Stringify(ln) + string(rs)), nil
		}
	}
	if ls, ok := left.(runtime.String); ok {
		if rs, ok := right.(runtime.String); ok {
			return ls + rs, nil
		}
		if rn, ok := right.(runtime.Number); ok {
			return runtime.String(string(ls) + runtime.Stringify(rn)), nil
		}
	}
	return nil, &runtime.ArithmeticError{Kind: runtime.BinaryPlus, Line: line}
}

func numericBinary(left, right runtime.Value, line int, kind runtime.ArithmeticErrorKind, f func(a, b float64) runtime.Value) (runtime.Value, error) {
	ln, ok1 := left.(runtime.Number)
	rn, ok2 := right.(runtime.Number)
	if !ok1 || !ok2 {
		return nil, &runtime.ArithmeticError{Kind: kind, Line: line}
	}
	return f(float64(ln), float64(rn)), nil
}

func comparisonBinary(left, right runtime.Value, line int, f func(a, b float64) bool) (runtime.Value, error) {
	ln, ok1 := left.(runtime.Number)
	rn, ok2 := right.(runtime.Number)
	if !ok1 || !ok2 {
		return nil, &runtime.ArithmeticError{Kind: runtime.BinaryComparison, Line: line}
	}
	return runtime.Bool(f(float64(ln), float64(rn))), nil
}

// evalLogical short-circuits and returns the operand value itself, not a
// coerced bool (spec.md §4.5).
func (e *Evaluator) evalLogical(n *ast.Logical) (runtime.Value, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Op.Kind == token.OR {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !runtime.IsTruthy(left) {
			return left, nil
		}
	}
	return e.eval(n.Right)
}

func (e *Evaluator) evalTernary(n *ast.Ternary) (runtime.Value, error) {
	cond, err := e.eval(n.Cond)
	if err != nil {
		return nil, err
	}
	if runtime.IsTruthy(cond) {
		return e.eval(n.Then)
	}
	return e.eval(n.Else)
}

func (e *Evaluator) evalCall(n *ast.Call) (runtime.Value, error) {
	callee, err := e.eval(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, &runtime.FunctionError{Kind: runtime.NotCallable, Line: n.Paren.Pos.Line}
	}
	if callable.Arity() != len(args) {
		return nil, &runtime.FunctionError{Kind: runtime.ArityMismatch, Expected: callable.Arity(), Got: len(args), Line: n.Paren.Pos.Line}
	}

	if e.tracer != nil {
		e.tracer.Call(callable.CallableName(), n.Paren.Pos.Line)
		defer e.tracer.Return(callable.CallableName())
	}

	return callable.Call(e, args)
}

func (e *Evaluator) evalGet(n *ast.Get) (runtime.Value, error) {
	obj, err := e.eval(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, &runtime.TypeError{Kind: runtime.TypeSetOnNonInstance, Line: n.Name.Pos.Line}
	}
	v, ok := instance.Get(n.Name.Lexeme)
	if !ok {
		return nil, &runtime.TypeError{Kind: runtime.TypePropertyAccess, Name: n.Name.Lexeme, Line: n.Name.Pos.Line}
	}
	return v, nil
}

func (e *Evaluator) evalSet(n *ast.Set) (runtime.Value, error) {
	obj, err := e.eval(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, &runtime.TypeError{Kind: runtime.TypeSetOnNonInstance, Line: n.Name.Pos.Line}
	}
	value, err := e.eval(n.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(n.Name.Lexeme, value)
	return value, nil
}

// evalSuper implements spec.md §4.5's dispatch: `super` sits at the node's
// resolved depth, `this` sits one scope nearer (the synthetic scope the
// resolver pushes for `this` is always directly enclosed by the one for
// `super`).
func (e *Evaluator) evalSuper(n *ast.Super) (runtime.Value, error) {
	dist, ok := e.locals[n]
	if !ok {
		return nil, &runtime.UndefinedVariableError{Name: "super", Line: n.Keyword.Pos.Line}
	}
	superclass, _ := e.environment.GetAt(dist, "super").(*runtime.Class)
	instance, _ := e.environment.GetAt(dist-1, "this").(*runtime.Instance)

	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, &runtime.UndefinedVariableError{Name: n.Method.Lexeme, Line: n.Method.Pos.Line}
	}
	return method.Bind(instance), nil
}
