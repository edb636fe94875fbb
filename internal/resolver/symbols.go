package resolver

import "github.com/glox-lang/glox/internal/ast"

// GlobalNames lists every top-level var/fn/class declaration's name, in
// source order. It backs `glox symbols`, a read-only convenience surface
// on top of the same declarations the resolver already walks
// (SPEC_FULL.md §2.4).
func GlobalNames(stmts []ast.Stmt) []string {
	var names []string
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.VarStmt:
			names = append(names, n.Name.Lexeme)
		case *ast.FunctionStmt:
			if n.Decl.Name != nil {
				names = append(names, n.Decl.Name.Lexeme)
			}
		case *ast.ClassStmt:
			names = append(names, n.Name.Lexeme)
		}
	}
	return names
}
