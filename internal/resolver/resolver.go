// Package resolver performs the static scope pass between parsing and
// evaluation: for every identifier-use expression it records how many
// enclosing scopes separate it from its declaration (spec.md §4.4), and it
// enforces the handful of compile-time binding rules (no reading a local in
// its own initializer, no 'this'/'super'/'return' misuse, no self-inheriting
// classes).
package resolver

import (
	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/pkg/token"
)

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope maps a name to whether its declaration has finished resolving its
// initializer. false means "declared but not yet defined."
type scope map[string]bool

// Locals is the depth table the evaluator consults for every identifier
// use: Locals[node] is how many environment links up the declaring scope
// sits relative to wherever that node is evaluated. Absent entries mean
// "look it up in globals."
type Locals map[ast.Expr]int

// Resolver runs once over a parsed program.
type Resolver struct {
	scopes          []scope
	locals          Locals
	errors          []*Error
	currentFunction functionKind
	currentClass    classKind
}

// New creates a Resolver ready to walk a statement sequence.
func New() *Resolver {
	return &Resolver{locals: make(Locals)}
}

// Resolve walks stmts and returns the depth table plus any accumulated
// errors. A non-empty error list means the evaluator must not run
// (spec.md §4.4 "redeclaration protocol").
func (r *Resolver) Resolve(stmts []ast.Stmt) (Locals, []*Error) {
	r.resolveStmts(stmts)
	return r.locals, r.errors
}

func (r *Resolver) addError(kind ErrorKind, name string, line int) {
	r.errors = append(r.errors, &Error{Kind: kind, Name: name, Line: line})
}

// ---- scope stack ----

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, exists := s[name.Lexeme]; exists {
		r.addError(ExistingVar, name.Lexeme, name.Pos.Line)
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) defineSynthetic(name string) {
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) resolveLocal(node ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[node] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any local scope: treated as global, no table entry.
}

// ---- statements ----

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(n.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(n.Expr)
	case *ast.VarStmt:
		r.declare(n.Name)
		if n.Init != nil {
			r.resolveExpr(n.Init)
		}
		r.define(n.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(n.Stmts)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Body)
	case *ast.BreakStmt:
		// nothing to resolve; loop-depth validity was checked by the parser.
	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.addError(IllegalReturn, "", n.Keyword.Pos.Line)
		}
		if n.Value != nil {
			if r.currentFunction == fnInitializer {
				r.addError(InitializerReturn, "", n.Keyword.Pos.Line)
			}
			r.resolveExpr(n.Value)
		}
	case *ast.FunctionStmt:
		if n.Decl.Name != nil {
			r.declare(*n.Decl.Name)
			r.define(*n.Decl.Name)
		}
		r.resolveFunction(n.Decl, fnFunction)
	case *ast.ClassStmt:
		r.resolveClass(n)
	}
}

func (r *Resolver) resolveClass(n *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.addError(SelfInheritance, n.Name.Lexeme, n.Superclass.Name.Pos.Line)
		}
		r.currentClass = classSubclass
		r.resolveExpr(n.Superclass)
		r.beginScope()
		r.defineSynthetic("super")
		defer r.endScope()
	}

	r.beginScope()
	r.defineSynthetic("this")
	defer r.endScope()

	for _, method := range n.Methods {
		kind := fnMethod
		if method.Decl.Name != nil && method.Decl.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method.Decl, kind)
	}
}

func (r *Resolver) resolveFunction(decl *ast.FunctionDecl, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()
	for _, param := range decl.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(decl.Body)
}

// ---- expressions ----

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		// no identifiers
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !defined {
				r.addError(LocalVarDecl, n.Name.Lexeme, n.Name.Pos.Line)
			}
		}
		r.resolveLocal(n, n.Name)
	case *ast.Grouping:
		r.resolveExpr(n.Inner)
	case *ast.Unary:
		r.resolveExpr(n.Operand)
	case *ast.Mutate:
		r.resolveExpr(n.Operand)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Ternary:
		r.resolveExpr(n.Cond)
		r.resolveExpr(n.Then)
		r.resolveExpr(n.Else)
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n, n.Name)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(n.Object)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.addError(ThisOutsideClass, "", n.Keyword.Pos.Line)
			return
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.Super:
		if r.currentClass == classNone {
			r.addError(SuperTypeError, "outside class", n.Keyword.Pos.Line)
			return
		}
		if r.currentClass != classSubclass {
			r.addError(SuperTypeError, "in a class with no superclass", n.Keyword.Pos.Line)
			return
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.Lambda:
		r.resolveFunction(n.Decl, fnFunction)
	}
}
