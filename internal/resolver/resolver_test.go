package resolver

import (
	"testing"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/lexer"
	"github.com/glox-lang/glox/internal/parser"
)

func resolve(t *testing.T, source string) ([]ast.Stmt, Locals, []*Error) {
	t.Helper()
	l := lexer.New(source)
	tokens := l.ScanTokens()
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected scan errors: %v", l.Errors())
	}
	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	locals, errs := New().Resolve(stmts)
	return stmts, locals, errs
}

func TestResolveRecordsDepthForShadowedLocal(t *testing.T) {
	stmts, locals, errs := resolve(t, `
var a = "global";
{
  var a = "outer";
  {
    var a = "inner";
    print a;
  }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}
	outerBlock := stmts[1].(*ast.BlockStmt)
	innerBlock := outerBlock.Stmts[1].(*ast.BlockStmt)
	printStmt := innerBlock.Stmts[1].(*ast.PrintStmt)
	variable := printStmt.Expr.(*ast.Variable)
	if dist, ok := locals[variable]; !ok || dist != 0 {
		t.Errorf("got depth %d (ok=%v), want 0 for innermost 'a'", dist, ok)
	}
}

func TestResolveLocalVarDeclSelfReferenceIsError(t *testing.T) {
	_, _, errs := resolve(t, "{ var a = a; }")
	if len(errs) != 1 || errs[0].Kind != LocalVarDecl {
		t.Fatalf("got %v, want one LocalVarDecl error", errs)
	}
}

func TestResolveRedeclarationInSameScopeIsError(t *testing.T) {
	_, _, errs := resolve(t, "{ var a = 1; var a = 2; }")
	if len(errs) != 1 || errs[0].Kind != ExistingVar {
		t.Fatalf("got %v, want one ExistingVar error", errs)
	}
}

func TestResolveTopLevelReturnIsError(t *testing.T) {
	_, _, errs := resolve(t, "return 1;")
	if len(errs) != 1 || errs[0].Kind != IllegalReturn {
		t.Fatalf("got %v, want one IllegalReturn error", errs)
	}
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, _, errs := resolve(t, "print this;")
	if len(errs) != 1 || errs[0].Kind != ThisOutsideClass {
		t.Fatalf("got %v, want one ThisOutsideClass error", errs)
	}
}

func TestResolveInitializerReturnWithValueIsError(t *testing.T) {
	_, _, errs := resolve(t, `class Foo { init() { return 1; } }`)
	if len(errs) != 1 || errs[0].Kind != InitializerReturn {
		t.Fatalf("got %v, want one InitializerReturn error", errs)
	}
}

func TestResolveSelfInheritanceIsError(t *testing.T) {
	_, _, errs := resolve(t, "class Foo < Foo {}")
	if len(errs) != 1 || errs[0].Kind != SelfInheritance {
		t.Fatalf("got %v, want one SelfInheritance error", errs)
	}
}

func TestResolveSuperOutsideClassIsError(t *testing.T) {
	_, _, errs := resolve(t, "print super.m;")
	if len(errs) != 1 || errs[0].Kind != SuperTypeError {
		t.Fatalf("got %v, want one SuperTypeError error", errs)
	}
}

func TestResolveSuperWithoutSuperclassIsError(t *testing.T) {
	_, _, errs := resolve(t, `class Foo { m() { print super.m; } }`)
	if len(errs) != 1 || errs[0].Kind != SuperTypeError {
		t.Fatalf("got %v, want one SuperTypeError error", errs)
	}
}

func TestResolveClosureOverCounterHasNoErrors(t *testing.T) {
	_, _, errs := resolve(t, `
fn makeCounter() {
  var count = 0;
  fn increment() {
    count = count + 1;
    return count;
  }
  return increment;
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected resolve errors for closure-over-counter: %v", errs)
	}
}

func TestGlobalNamesListsTopLevelDeclarations(t *testing.T) {
	stmts, _, errs := resolve(t, `
var b = 1;
fn a() {}
class z {}
{ var hidden = 1; }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}
	names := GlobalNames(stmts)
	want := []string{"b", "a", "z"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("got %v, want %v", names, want)
			break
		}
	}
}
