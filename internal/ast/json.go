package ast

// ToJSON converts a statement sequence into a tree of plain maps/slices
// suitable for json.Marshal. It exists so `glox ast --json` can hand a
// caller a structured document to walk with github.com/tidwall/gjson
// instead of parsing the lisp-style Print output.
func ToJSON(stmts []Stmt) any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = stmtJSON(s)
	}
	return map[string]any{"statements": out}
}

func stmtJSON(s Stmt) any {
	switch n := s.(type) {
	case *ExpressionStmt:
		return node("ExpressionStmt", map[string]any{"expr": exprJSON(n.Expr)})
	case *PrintStmt:
		return node("PrintStmt", map[string]any{"expr": exprJSON(n.Expr)})
	case *VarStmt:
		fields := map[string]any{"name": n.Name.Lexeme}
		if n.Init != nil {
			fields["init"] = exprJSON(n.Init)
		}
		return node("VarStmt", fields)
	case *BlockStmt:
		stmts := make([]any, len(n.Stmts))
		for i, st := range n.Stmts {
			stmts[i] = stmtJSON(st)
		}
		return node("BlockStmt", map[string]any{"stmts": stmts})
	case *IfStmt:
		fields := map[string]any{"cond": exprJSON(n.Cond), "then": stmtJSON(n.Then)}
		if n.Else != nil {
			fields["else"] = stmtJSON(n.Else)
		}
		return node("IfStmt", fields)
	case *WhileStmt:
		return node("WhileStmt", map[string]any{"cond": exprJSON(n.Cond), "body": stmtJSON(n.Body)})
	case *BreakStmt:
		return node("BreakStmt", map[string]any{})
	case *ReturnStmt:
		fields := map[string]any{}
		if n.Value != nil {
			fields["value"] = exprJSON(n.Value)
		}
		return node("ReturnStmt", fields)
	case *FunctionStmt:
		return node("FunctionStmt", functionDeclJSON(n.Decl))
	case *ClassStmt:
		methods := make([]any, len(n.Methods))
		for i, m := range n.Methods {
			methods[i] = node("FunctionStmt", functionDeclJSON(m.Decl))
		}
		fields := map[string]any{"name": n.Name.Lexeme, "methods": methods}
		if n.Superclass != nil {
			fields["superclass"] = n.Superclass.Name.Lexeme
		}
		return node("ClassStmt", fields)
	default:
		return node("Unknown", map[string]any{})
	}
}

func functionDeclJSON(decl *FunctionDecl) map[string]any {
	name := ""
	if decl.Name != nil {
		name = decl.Name.Lexeme
	}
	params := make([]any, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = p.Lexeme
	}
	body := make([]any, len(decl.Body))
	for i, st := range decl.Body {
		body[i] = stmtJSON(st)
	}
	return map[string]any{"name": name, "params": params, "body": body}
}

func exprJSON(e Expr) any {
	switch n := e.(type) {
	case *Literal:
		return node("Literal", map[string]any{"kind": int(n.Kind), "num": n.Num, "str": n.Str, "bool": n.Bool})
	case *Variable:
		return node("Variable", map[string]any{"name": n.Name.Lexeme})
	case *Grouping:
		return node("Grouping", map[string]any{"inner": exprJSON(n.Inner)})
	case *Unary:
		return node("Unary", map[string]any{"op": n.Op.Lexeme, "operand": exprJSON(n.Operand)})
	case *Mutate:
		return node("Mutate", map[string]any{"op": n.Op.Lexeme, "postfix": n.Postfix, "operand": exprJSON(n.Operand)})
	case *Binary:
		return node("Binary", map[string]any{"op": n.Op.Lexeme, "left": exprJSON(n.Left), "right": exprJSON(n.Right)})
	case *Logical:
		return node("Logical", map[string]any{"op": n.Op.Lexeme, "left": exprJSON(n.Left), "right": exprJSON(n.Right)})
	case *Ternary:
		return node("Ternary", map[string]any{"cond": exprJSON(n.Cond), "then": exprJSON(n.Then), "else": exprJSON(n.Else)})
	case *Assign:
		return node("Assign", map[string]any{"name": n.Name.Lexeme, "value": exprJSON(n.Value)})
	case *Call:
		args := make([]any, len(n.Args))
		for i, a := range n.Args {
			args[i] = exprJSON(a)
		}
		return node("Call", map[string]any{"callee": exprJSON(n.Callee), "args": args})
	case *Get:
		return node("Get", map[string]any{"object": exprJSON(n.Object), "name": n.Name.Lexeme})
	case *Set:
		return node("Set", map[string]any{"object": exprJSON(n.Object), "name": n.Name.Lexeme, "value": exprJSON(n.Value)})
	case *This:
		return node("This", map[string]any{})
	case *Super:
		return node("Super", map[string]any{"method": n.Method.Lexeme})
	case *Lambda:
		return node("Lambda", functionDeclJSON(n.Decl))
	default:
		return node("Unknown", map[string]any{})
	}
}

func node(kind string, fields map[string]any) map[string]any {
	fields["type"] = kind
	return fields
}
