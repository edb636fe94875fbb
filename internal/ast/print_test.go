package ast

import (
	"testing"

	"github.com/glox-lang/glox/pkg/token"
)

func TestPrintLiteralExpressionStatement(t *testing.T) {
	stmts := []Stmt{
		&ExpressionStmt{Expr: &Literal{Kind: token.NumberLiteral, Num: 3}},
	}
	got := Print(stmts)
	want := "(; 3)\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintBinaryAndGrouping(t *testing.T) {
	expr := &Binary{
		Left:  &Grouping{Inner: &Literal{Kind: token.NumberLiteral, Num: 1}},
		Op:    token.Token{Lexeme: "+"},
		Right: &Literal{Kind: token.NumberLiteral, Num: 2},
	}
	got := printExpr(expr)
	want := "(+ (group 1) 2)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintVarDeclWithoutInitializer(t *testing.T) {
	stmts := []Stmt{&VarStmt{Name: token.Token{Lexeme: "x"}}}
	got := Print(stmts)
	want := "(var x)\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintClassWithSuperclassAndMethods(t *testing.T) {
	stmts := []Stmt{
		&ClassStmt{
			Name:       token.Token{Lexeme: "Dog"},
			Superclass: &Variable{Name: token.Token{Lexeme: "Animal"}},
			Methods: []*FunctionStmt{
				{Decl: &FunctionDecl{Name: &token.Token{Lexeme: "speak"}, Body: []Stmt{}}},
			},
		},
	}
	got := Print(stmts)
	want := "(class Dog < Animal (method speak))\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintStringLiteralIsQuoted(t *testing.T) {
	got := printExpr(&Literal{Kind: token.StringLiteral, Str: "hi"})
	want := `"hi"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintLambdaUsesLambdaName(t *testing.T) {
	got := printExpr(&Lambda{Decl: &FunctionDecl{Body: []Stmt{}}})
	want := "(fn lambda)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintMutateDistinguishesPreAndPostfix(t *testing.T) {
	v := &Variable{Name: token.Token{Lexeme: "x"}}
	post := printExpr(&Mutate{Op: token.Token{Lexeme: "++"}, Operand: v, Postfix: true})
	pre := printExpr(&Mutate{Op: token.Token{Lexeme: "++"}, Operand: v, Postfix: false})
	if post != "(++-post x)" || pre != "(++-pre x)" {
		t.Errorf("got post=%q pre=%q", post, pre)
	}
}
