package runtime

import "github.com/glox-lang/glox/internal/ast"

// Interpreter is the slice of the evaluator that a Callable needs in order
// to run a function body. It lives in runtime (not evaluator) so Callable
// implementations here don't have to import the evaluator package, mirroring
// the teacher's RefCountManager/DestructorCallback split between
// internal/interp/runtime and internal/interp for the same reason: breaking
// a circular import between the value model and the thing that evaluates it.
type Interpreter interface {
	// ExecuteBlock runs stmts under env, propagating any ReturnSignal,
	// BreakSignal, or RuntimeError.
	ExecuteBlock(stmts []ast.Stmt, env *Environment) error
}

// Callable is anything that can appear on the left of a Call expression:
// user functions, lambdas, bound methods, classes (as constructors), and
// native builtins.
type Callable interface {
	Value
	Arity() int
	Call(interp Interpreter, args []Value) (Value, error)
	CallableName() string
}

// Function is a user-defined function, method, or lambda value: a
// declaration paired with the environment live at its definition
// (spec.md §3's "Function runtime object").
type Function struct {
	Decl          *ast.FunctionDecl
	Closure       *Environment
	IsInitializer bool
}

func (*Function) value() {}

// Arity is the declared parameter count.
func (f *Function) Arity() int { return len(f.Decl.Params) }

// CallableName returns the function's declared name, or "<lambda>" for
// anonymous functions.
func (f *Function) CallableName() string {
	if f.Decl.Name != nil {
		return f.Decl.Name.Lexeme
	}
	return "<lambda>"
}

// Call creates a new environment enclosing the closure, binds parameters
// positionally, and runs the body. A ReturnSignal terminates the body early;
// an initializer always yields the bound `this` regardless of what (if
// anything) the body returned (spec.md §4.5, §8 property 6).
func (f *Function) Call(interp Interpreter, args []Value) (Value, error) {
	env := NewEnclosed(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := interp.ExecuteBlock(f.Decl.Body, env)
	if ret, ok := err.(*ReturnSignal); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return NilValue, nil
}

// Bind produces a fresh callable whose closure is a new environment
// enclosing f's closure and defining `this` to instance. This is what
// makes both `this.x` inside a method body and a later call through a
// value returned by `super.m` use the right receiver (spec.md §4.5
// "Method binding").
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosed(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunction wraps a Go function as a glox builtin (spec.md §4.5's
// `clock`).
type NativeFunction struct {
	Name    string
	Params  int
	Fn      func(args []Value) (Value, error)
}

func (*NativeFunction) value() {}

func (n *NativeFunction) Arity() int           { return n.Params }
func (n *NativeFunction) CallableName() string { return n.Name }
func (n *NativeFunction) Call(_ Interpreter, args []Value) (Value, error) {
	return n.Fn(args)
}
