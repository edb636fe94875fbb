package ast

import (
	"fmt"
	"strings"

	"github.com/glox-lang/glox/pkg/token"
)

// Print renders a statement sequence as a parenthesized lisp-style dump,
// used by `glox ast` for human inspection and by tests asserting parser
// shape without depending on node identity.
func Print(stmts []Stmt) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(printStmt(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func printStmt(s Stmt) string {
	switch n := s.(type) {
	case *ExpressionStmt:
		return parens(";", printExpr(n.Expr))
	case *PrintStmt:
		return parens("print", printExpr(n.Expr))
	case *VarStmt:
		if n.Init == nil {
			return parens("var", n.Name.Lexeme)
		}
		return parens("var", n.Name.Lexeme, printExpr(n.Init))
	case *BlockStmt:
		parts := make([]string, len(n.Stmts))
		for i, st := range n.Stmts {
			parts[i] = printStmt(st)
		}
		return parens("block", parts...)
	case *IfStmt:
		if n.Else == nil {
			return parens("if", printExpr(n.Cond), printStmt(n.Then))
		}
		return parens("if", printExpr(n.Cond), printStmt(n.Then), printStmt(n.Else))
	case *WhileStmt:
		return parens("while", printExpr(n.Cond), printStmt(n.Body))
	case *BreakStmt:
		return "(break)"
	case *ReturnStmt:
		if n.Value == nil {
			return "(return)"
		}
		return parens("return", printExpr(n.Value))
	case *FunctionStmt:
		return printFunctionDecl("fn", n.Decl)
	case *ClassStmt:
		header := "class " + n.Name.Lexeme
		if n.Superclass != nil {
			header += " < " + n.Superclass.Name.Lexeme
		}
		parts := make([]string, len(n.Methods))
		for i, m := range n.Methods {
			parts[i] = printFunctionDecl("method", m.Decl)
		}
		return parens(header, parts...)
	default:
		return fmt.Sprintf("(unknown-stmt %T)", s)
	}
}

func printFunctionDecl(tag string, decl *FunctionDecl) string {
	name := "lambda"
	if decl.Name != nil {
		name = decl.Name.Lexeme
	}
	body := make([]string, len(decl.Body))
	for i, st := range decl.Body {
		body[i] = printStmt(st)
	}
	return parens(fmt.Sprintf("%s %s", tag, name), body...)
}

func printExpr(e Expr) string {
	switch n := e.(type) {
	case *Literal:
		return printLiteral(n)
	case *Variable:
		return n.Name.Lexeme
	case *Grouping:
		return parens("group", printExpr(n.Inner))
	case *Unary:
		return parens(n.Op.Lexeme, printExpr(n.Operand))
	case *Mutate:
		if n.Postfix {
			return parens(n.Op.Lexeme+"-post", printExpr(n.Operand))
		}
		return parens(n.Op.Lexeme+"-pre", printExpr(n.Operand))
	case *Binary:
		return parens(n.Op.Lexeme, printExpr(n.Left), printExpr(n.Right))
	case *Logical:
		return parens(n.Op.Lexeme, printExpr(n.Left), printExpr(n.Right))
	case *Ternary:
		return parens("?:", printExpr(n.Cond), printExpr(n.Then), printExpr(n.Else))
	case *Assign:
		return parens("=", n.Name.Lexeme, printExpr(n.Value))
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = printExpr(a)
		}
		return parens("call", append([]string{printExpr(n.Callee)}, args...)...)
	case *Get:
		return parens(".", printExpr(n.Object), n.Name.Lexeme)
	case *Set:
		return parens("set", printExpr(n.Object), n.Name.Lexeme, printExpr(n.Value))
	case *This:
		return "this"
	case *Super:
		return parens("super", n.Method.Lexeme)
	case *Lambda:
		return printFunctionDecl("fn", n.Decl)
	default:
		return fmt.Sprintf("(unknown-expr %T)", e)
	}
}

func printLiteral(l *Literal) string {
	switch l.Kind {
	case token.NilLiteral, token.NoLiteral:
		return "nil"
	case token.StringLiteral:
		return fmt.Sprintf("%q", l.Str)
	case token.BoolLiteral:
		if l.Bool {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%g", l.Num)
	}
}

func parens(tag string, parts ...string) string {
	if len(parts) == 0 {
		return "(" + tag + ")"
	}
	return "(" + tag + " " + strings.Join(parts, " ") + ")"
}
