package parser

import (
	"testing"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/lexer"
)

func parse(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	l := lexer.New(source)
	tokens := l.ScanTokens()
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected scan errors: %v", l.Errors())
	}
	p := New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return stmts
}

func TestParseVarDeclaration(t *testing.T) {
	stmts := parse(t, "var x = 1 + 2;")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	v, ok := stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.VarStmt", stmts[0])
	}
	if v.Name.Lexeme != "x" {
		t.Errorf("got name %q, want x", v.Name.Lexeme)
	}
	bin, ok := v.Init.(*ast.Binary)
	if !ok || bin.Op.Lexeme != "+" {
		t.Fatalf("got init %#v, want Binary(+)", v.Init)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok || len(block.Stmts) != 2 {
		t.Fatalf("got %#v, want a two-statement block (init, while)", stmts[0])
	}
	if _, ok := block.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("first desugared statement should be the init VarStmt, got %T", block.Stmts[0])
	}
	while, ok := block.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second desugared statement should be WhileStmt, got %T", block.Stmts[1])
	}
	body, ok := while.Body.(*ast.BlockStmt)
	if !ok || len(body.Stmts) != 2 {
		t.Fatalf("while body should wrap original body plus increment, got %#v", while.Body)
	}
}

func TestParseForWithoutConditionDefaultsTrue(t *testing.T) {
	stmts := parse(t, "for (;;) break;")
	block := stmts[0].(*ast.BlockStmt)
	while, ok := block.Stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %T, want WhileStmt when no init clause", block.Stmts[0])
	}
	lit, ok := while.Cond.(*ast.Literal)
	if !ok || !lit.Bool {
		t.Fatalf("got cond %#v, want literal true", while.Cond)
	}
}

func TestParseTernaryAndComma(t *testing.T) {
	stmts := parse(t, "var x = 1, 2 ? 3 : 4;")
	v := stmts[0].(*ast.VarStmt)
	bin, ok := v.Init.(*ast.Binary)
	if !ok || bin.Op.Lexeme != "," {
		t.Fatalf("got %#v, want top-level comma", v.Init)
	}
	if _, ok := bin.Right.(*ast.Ternary); !ok {
		t.Fatalf("got %#v, want Ternary on comma's right side", bin.Right)
	}
}

func TestParsePrefixAndPostfixMutate(t *testing.T) {
	stmts := parse(t, "x++; ++x; x--; --x;")
	if len(stmts) != 4 {
		t.Fatalf("got %d statements, want 4", len(stmts))
	}
	cases := []struct {
		postfix bool
		op      string
	}{
		{true, "++"}, {false, "++"}, {true, "--"}, {false, "--"},
	}
	for i, want := range cases {
		m := stmts[i].(*ast.ExpressionStmt).Expr.(*ast.Mutate)
		if m.Postfix != want.postfix || m.Op.Lexeme != want.op {
			t.Errorf("statement %d: got (%s postfix=%v), want (%s postfix=%v)", i, m.Op.Lexeme, m.Postfix, want.op, want.postfix)
		}
	}
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts := parse(t, `
class Animal {
  speak() { print "..."; }
}
class Dog < Animal {
  speak() { print "woof"; }
}`)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	dog := stmts[1].(*ast.ClassStmt)
	if dog.Name.Lexeme != "Dog" {
		t.Errorf("got name %q, want Dog", dog.Name.Lexeme)
	}
	if dog.Superclass == nil || dog.Superclass.Name.Lexeme != "Animal" {
		t.Fatalf("got superclass %#v, want Animal", dog.Superclass)
	}
	if len(dog.Methods) != 1 || dog.Methods[0].Decl.Name.Lexeme != "speak" {
		t.Fatalf("got methods %#v, want [speak]", dog.Methods)
	}
}

func TestParseInvalidAssignmentTargetIsAnError(t *testing.T) {
	l := lexer.New("1 + 2 = 3;")
	tokens := l.ScanTokens()
	p := New(tokens)
	p.ParseProgram()
	if len(p.Errors()) != 1 || p.Errors()[0].Kind != InvalidAssignmentTarget {
		t.Fatalf("got %v, want one InvalidAssignmentTarget error", p.Errors())
	}
}

func TestParseBreakOutsideLoopIsAnError(t *testing.T) {
	l := lexer.New("break;")
	tokens := l.ScanTokens()
	p := New(tokens)
	p.ParseProgram()
	if len(p.Errors()) != 1 || p.Errors()[0].Kind != BreakOutsideLoop {
		t.Fatalf("got %v, want one BreakOutsideLoop error", p.Errors())
	}
}

func TestParseSynchronizeRecoversAfterError(t *testing.T) {
	l := lexer.New("var = ; var y = 1;")
	tokens := l.ScanTokens()
	p := New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one parse error for the malformed declaration")
	}
	found := false
	for _, s := range stmts {
		if v, ok := s.(*ast.VarStmt); ok && v.Name.Lexeme == "y" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected parser to recover and still parse 'var y = 1;', got %#v", stmts)
	}
}

func TestParseLambdaExpression(t *testing.T) {
	stmts := parse(t, "var add = fn(a, b) { return a + b; };")
	v := stmts[0].(*ast.VarStmt)
	lambda, ok := v.Init.(*ast.Lambda)
	if !ok {
		t.Fatalf("got %#v, want *ast.Lambda", v.Init)
	}
	if lambda.Decl.Name != nil {
		t.Error("lambda declarations must have a nil Name")
	}
	if len(lambda.Decl.Params) != 2 {
		t.Errorf("got %d params, want 2", len(lambda.Decl.Params))
	}
}

func TestParseSuperMethodCall(t *testing.T) {
	stmts := parse(t, `
class A { greet() { print "a"; } }
class B < A { greet() { super.greet(); } }`)
	b := stmts[1].(*ast.ClassStmt)
	body := b.Methods[0].Decl.Body
	exprStmt := body[0].(*ast.ExpressionStmt)
	call := exprStmt.Expr.(*ast.Call)
	super, ok := call.Callee.(*ast.Super)
	if !ok || super.Method.Lexeme != "greet" {
		t.Fatalf("got %#v, want Super(greet)", call.Callee)
	}
}
