package runtime

import (
	"testing"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/pkg/token"
)

func initDecl(fieldValue float64) *ast.FunctionDecl {
	return &ast.FunctionDecl{
		Params: paramTokens("v"),
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Literal{Kind: token.NumberLiteral, Num: fieldValue}},
		},
	}
}

func TestClassFindMethodWalksSuperclassChain(t *testing.T) {
	base := &Class{Name: "Animal", Methods: map[string]*Function{
		"speak": {Decl: &ast.FunctionDecl{Name: &token.Token{Lexeme: "speak"}}},
	}}
	derived := &Class{Name: "Dog", Superclass: base, Methods: map[string]*Function{}}

	m, ok := derived.FindMethod("speak")
	if !ok {
		t.Fatal("expected speak to resolve through the superclass chain")
	}
	if m.CallableName() != "speak" {
		t.Errorf("got %q, want speak", m.CallableName())
	}

	if _, ok := derived.FindMethod("missing"); ok {
		t.Error("missing method should not be found anywhere in the chain")
	}
}

func TestClassFindMethodPrefersOwnOverAncestor(t *testing.T) {
	base := &Class{Name: "Animal", Methods: map[string]*Function{
		"speak": {Decl: &ast.FunctionDecl{Name: &token.Token{Lexeme: "speak"}, Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Literal{Kind: token.StringLiteral, Str: "..."}},
		}}},
	}}
	derived := &Class{Name: "Dog", Superclass: base, Methods: map[string]*Function{
		"speak": {Decl: &ast.FunctionDecl{Name: &token.Token{Lexeme: "speak"}, Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Literal{Kind: token.StringLiteral, Str: "woof"}},
		}}},
	}}
	m, _ := derived.FindMethod("speak")
	v, err := m.Call(fakeInterp{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != String("woof") {
		t.Errorf("got %v, want own method to shadow the inherited one", v)
	}
}

func TestClassArityReflectsInit(t *testing.T) {
	withInit := &Class{Name: "Point", Methods: map[string]*Function{
		"init": {Decl: &ast.FunctionDecl{Params: paramTokens("x", "y")}, IsInitializer: true},
	}}
	if withInit.Arity() != 2 {
		t.Errorf("got %d, want 2", withInit.Arity())
	}

	withoutInit := &Class{Name: "Empty", Methods: map[string]*Function{}}
	if withoutInit.Arity() != 0 {
		t.Errorf("got %d, want 0 when no init is declared", withoutInit.Arity())
	}
}

func TestClassCallConstructsAndRunsInit(t *testing.T) {
	class := &Class{Name: "Box", Methods: map[string]*Function{
		"init": {Decl: initDecl(5), IsInitializer: true},
	}}
	v, err := class.Call(fakeInterp{}, []Value{Number(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inst, ok := v.(*Instance)
	if !ok {
		t.Fatalf("got %T, want *Instance", v)
	}
	if inst.Class != class {
		t.Errorf("instance must reference its class")
	}
}

func TestClassCallWithoutInitJustConstructs(t *testing.T) {
	class := &Class{Name: "Empty", Methods: map[string]*Function{}}
	v, err := class.Call(fakeInterp{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(*Instance); !ok {
		t.Fatalf("got %T, want *Instance", v)
	}
}

func TestInstanceGetPrefersFieldOverMethod(t *testing.T) {
	class := &Class{Name: "Foo", Methods: map[string]*Function{
		"x": {Decl: &ast.FunctionDecl{Name: &token.Token{Lexeme: "x"}}},
	}}
	inst := &Instance{Class: class, Fields: map[string]Value{"x": Number(1)}}
	v, ok := inst.Get("x")
	if !ok || v != Number(1) {
		t.Errorf("got (%v, %v), want (1, true); fields must shadow methods", v, ok)
	}
}

func TestInstanceGetBindsMethodToReceiver(t *testing.T) {
	class := &Class{Name: "Foo", Methods: map[string]*Function{
		"getThis": {Decl: &ast.FunctionDecl{Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Variable{Name: token.Token{Kind: token.IDENT, Lexeme: "this"}}},
		}}},
	}}
	inst := &Instance{Class: class, Fields: map[string]Value{}}
	v, ok := inst.Get("getThis")
	if !ok {
		t.Fatal("expected method to be found")
	}
	bound := v.(*Function)
	result, err := bound.Call(fakeInterp{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != Value(inst) {
		t.Errorf("got %v, want the method bound to the receiving instance", result)
	}
}

func TestInstanceGetMissingReturnsFalse(t *testing.T) {
	inst := &Instance{Class: &Class{Name: "Foo", Methods: map[string]*Function{}}, Fields: map[string]Value{}}
	if _, ok := inst.Get("nope"); ok {
		t.Error("expected ok=false for an undeclared field/method")
	}
}

func TestInstanceSetCreatesFieldFreely(t *testing.T) {
	inst := &Instance{Class: &Class{Name: "Foo"}, Fields: map[string]Value{}}
	inst.Set("x", Number(3))
	v, ok := inst.Get("x")
	if !ok || v != Number(3) {
		t.Errorf("got (%v, %v), want (3, true)", v, ok)
	}
}
