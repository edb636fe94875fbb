// Package parser implements glox's recursive-descent parser: tokens in,
// a statement sequence out, with per-declaration error recovery.
package parser

import (
	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/pkg/token"
)

const maxArgs = 255

// Parser consumes a token slice and produces an AST. It never panics on
// malformed input: every parse function returns an *Error that the caller
// threads back to the nearest declaration boundary, where synchronize
// discards tokens until it finds a safe restart point (spec.md §4.2).
type Parser struct {
	tokens    []token.Token
	current   int
	errors    []*Error
	loopDepth int
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every error accumulated during ParseProgram.
func (p *Parser) Errors() []*Error {
	return p.errors
}

// ParseProgram parses the whole token stream into a statement sequence.
// Declarations that fail to parse are dropped; parsing resumes at the next
// statement boundary so later declarations still get a chance (spec.md §8
// property 2: synchronize always advances past at least one token).
func (p *Parser) ParseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// ---- token cursor ----

func (p *Parser) peek() token.Token     { return p.tokens[p.current] }
func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool         { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Type) bool {
	if p.isAtEnd() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Type) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Type, expected string) (token.Token, *Error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, newErrorAt(UnexpectedToken, p.peek(), expected)
}

// synchronize discards tokens until the next statement boundary: just past
// a ';', or at a keyword that starts a new statement. Always advances at
// least once, so a malformed token at EOF-1 can't spin forever.
func (p *Parser) synchronize() {
	if p.isAtEnd() {
		return
	}
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// ---- declarations ----

func (p *Parser) declaration() (ast.Stmt, *Error) {
	switch {
	case p.match(token.VAR):
		return p.varDeclaration()
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FN):
		return p.functionDeclaration("function")
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() (ast.Stmt, *Error) {
	name, err := p.consume(token.IDENT, "variable name")
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.match(token.EQUAL) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Init: init}, nil
}

func (p *Parser) classDeclaration() (ast.Stmt, *Error) {
	name, err := p.consume(token.IDENT, "class name")
	if err != nil {
		return nil, err
	}
	var superclass *ast.Variable
	if p.match(token.LESS) {
		superName, err := p.consume(token.IDENT, "superclass name")
		if err != nil {
			return nil, err
		}
		superclass = &ast.Variable{Name: superName}
	}
	if _, err := p.consume(token.LEFT_BRACE, "'{' before class body"); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		m, err := p.functionDeclaration("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, m.(*ast.FunctionStmt))
	}
	if _, err := p.consume(token.RIGHT_BRACE, "'}' after class body"); err != nil {
		return nil, err
	}
	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}, nil
}

func (p *Parser) functionDeclaration(kind string) (ast.Stmt, *Error) {
	name, err := p.consume(token.IDENT, kind+" name")
	if err != nil {
		return nil, err
	}
	decl, err := p.functionBody(&name, kind)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStmt{Decl: decl}, nil
}

// functionBody parses "(params) { body }", shared by named declarations,
// methods, and lambdas (whose name is nil).
func (p *Parser) functionBody(name *token.Token, kind string) (*ast.FunctionDecl, *Error) {
	if _, err := p.consume(token.LEFT_PAREN, "'(' after "+kind+" name"); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errors = append(p.errors, &Error{Kind: TooManyParams, Line: p.peek().Pos.Line})
			}
			param, err := p.consume(token.IDENT, "parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RIGHT_PAREN, "')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFT_BRACE, "'{' before "+kind+" body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Name: name, Params: params, Body: body}, nil
}

// ---- statements ----

func (p *Parser) statement() (ast.Stmt, *Error) {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LEFT_BRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Stmts: stmts}, nil
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.BREAK):
		return p.breakStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Stmt, *Error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "';' after value"); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expr: value}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, *Error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr}, nil
}

func (p *Parser) block() ([]ast.Stmt, *Error) {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(token.RIGHT_BRACE, "'}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStatement() (ast.Stmt, *Error) {
	if _, err := p.consume(token.LEFT_PAREN, "'(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, "')' after if condition"); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, *Error) {
	if _, err := p.consume(token.LEFT_PAREN, "'(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, "')' after while condition"); err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.statement()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

// forStatement desugars for(init;cond;inc) body into
// Block(init?, While(cond ?? true, Block(body, inc))) at parse time, per
// spec.md §3. The outer Block is always built, even without an init clause;
// the inner Block is built only when there is an increment.
func (p *Parser) forStatement() (ast.Stmt, *Error) {
	if _, err := p.consume(token.LEFT_PAREN, "'(' after 'for'"); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err *Error
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "';' after loop condition"); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RIGHT_PAREN, "')' after for clauses"); err != nil {
		return nil, err
	}

	p.loopDepth++
	body, err := p.statement()
	p.loopDepth--
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}
	if cond == nil {
		cond = &ast.Literal{Kind: token.BoolLiteral, Bool: true}
	}
	loop := &ast.WhileStmt{Cond: cond, Body: body}
	if init == nil {
		return &ast.BlockStmt{Stmts: []ast.Stmt{loop}}, nil
	}
	return &ast.BlockStmt{Stmts: []ast.Stmt{init, loop}}, nil
}

func (p *Parser) returnStatement() (ast.Stmt, *Error) {
	keyword := p.previous()
	var value ast.Expr
	var err *Error
	if !p.check(token.SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "';' after return value"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) breakStatement() (ast.Stmt, *Error) {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.errors = append(p.errors, &Error{Kind: BreakOutsideLoop, Line: keyword.Pos.Line})
	}
	if _, err := p.consume(token.SEMICOLON, "';' after 'break'"); err != nil {
		return nil, err
	}
	return &ast.BreakStmt{Keyword: keyword}, nil
}
