package evaluator

import (
	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/interp/runtime"
)

// executeClass implements spec.md §4.5's "Class" statement: the name is
// bound to nil first so methods may reference the class by name inside
// their own bodies (e.g. a factory method), the superclass expression (if
// any) must evaluate to a Class, and every method closes over the current
// environment -- which holds `super` when there's a superclass to dispatch
// to.
func (e *Evaluator) executeClass(n *ast.ClassStmt) error {
	e.environment.Define(n.Name.Lexeme, runtime.NilValue)

	var superclass *runtime.Class
	if n.Superclass != nil {
		v, err := e.eval(n.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*runtime.Class)
		if !ok {
			return &runtime.TypeError{Kind: runtime.TypeSuperclassNotClass, Line: n.Superclass.Name.Pos.Line}
		}
		superclass = sc

		e.environment = runtime.NewEnclosed(e.environment)
		e.environment.Define("super", superclass)
	}

	methods := make(map[string]*runtime.Function, len(n.Methods))
	for _, m := range n.Methods {
		fn := &runtime.Function{
			Decl:          m.Decl,
			Closure:       e.environment,
			IsInitializer: m.Decl.Name != nil && m.Decl.Name.Lexeme == "init",
		}
		methods[m.Decl.Name.Lexeme] = fn
	}

	class := &runtime.Class{Name: n.Name.Lexeme, Superclass: superclass, Methods: methods}

	if superclass != nil {
		e.environment = e.environment.Enclosing
	}

	if err := e.environment.Assign(n.Name.Lexeme, class); err != nil {
		return err
	}
	return nil
}
