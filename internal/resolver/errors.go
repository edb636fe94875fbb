package resolver

import "fmt"

// ErrorKind discriminates the resolver's error taxonomy (spec.md §7, called
// CompilerError there; here it is resolver.Error, rendered for users by
// internal/diag.Diagnostic).
type ErrorKind int

const (
	LocalVarDecl ErrorKind = iota
	ExistingVar
	IllegalReturn
	ThisOutsideClass
	InitializerReturn
	SelfInheritance
	SuperTypeError
)

// Error reports a single static scope/binding violation. The resolver
// accumulates these across the whole pass rather than stopping at the
// first one (spec.md §4.4).
type Error struct {
	Kind ErrorKind
	Name string
	Line int
}

func (e *Error) Error() string {
	switch e.Kind {
	case LocalVarDecl:
		return fmt.Sprintf("line %d: can't read local variable %q in its own initializer", e.Line, e.Name)
	case ExistingVar:
		return fmt.Sprintf("line %d: variable %q already declared in this scope", e.Line, e.Name)
	case IllegalReturn:
		return fmt.Sprintf("line %d: can't return from top-level code", e.Line)
	case ThisOutsideClass:
		return fmt.Sprintf("line %d: can't use 'this' outside of a class", e.Line)
	case InitializerReturn:
		return fmt.Sprintf("line %d: can't return a value from an initializer", e.Line)
	case SelfInheritance:
		return fmt.Sprintf("line %d: class %q can't inherit from itself", e.Line, e.Name)
	case SuperTypeError:
		return fmt.Sprintf("line %d: can't use 'super' %s", e.Line, e.Name)
	default:
		return fmt.Sprintf("line %d: resolve error", e.Line)
	}
}
