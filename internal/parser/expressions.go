package parser

import (
	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/pkg/token"
)

// expression is the grammar's lowest-precedence entry point: the comma
// operator (spec.md §4.2).
func (p *Parser) expression() (ast.Expr, *Error) {
	return p.comma()
}

func (p *Parser) comma() (ast.Expr, *Error) {
	expr, err := p.assignment()
	if err != nil {
		return nil, err
	}
	for p.match(token.COMMA) {
		op := p.previous()
		right, err := p.assignment()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// assignment parses a general expression, then validates the target if '='
// follows. Only Variable and Get are legal assignment targets
// (spec.md §4.2 "Assignment validation").
func (p *Parser) assignment() (ast.Expr, *Error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.EQUAL) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}, nil
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}, nil
		default:
			return nil, &Error{Kind: InvalidAssignmentTarget, Found: equals.Lexeme, Line: equals.Pos.Line}
		}
	}
	return expr, nil
}

func (p *Parser) logicOr() (ast.Expr, *Error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.OR) {
		op := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicAnd() (ast.Expr, *Error) {
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}
	for p.match(token.AND) {
		op := p.previous()
		right, err := p.ternary()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) ternary() (ast.Expr, *Error) {
	cond, err := p.equality()
	if err != nil {
		return nil, err
	}
	if p.match(token.QUESTION) {
		then, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.COLON, "':' in ternary expression"); err != nil {
			return nil, err
		}
		elseExpr, err := p.ternary()
		if err != nil {
			return nil, err
		}
		return &ast.Ternary{Cond: cond, Then: then, Else: elseExpr}, nil
	}
	return cond, nil
}

func (p *Parser) equality() (ast.Expr, *Error) {
	return p.leftAssocBinary(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

func (p *Parser) comparison() (ast.Expr, *Error) {
	return p.leftAssocBinary(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

func (p *Parser) term() (ast.Expr, *Error) {
	return p.leftAssocBinary(p.factor, token.MINUS, token.PLUS)
}

func (p *Parser) factor() (ast.Expr, *Error) {
	return p.leftAssocBinary(p.unary, token.SLASH, token.STAR)
}

func (p *Parser) leftAssocBinary(next func() (ast.Expr, *Error), kinds ...token.Type) (ast.Expr, *Error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, *Error) {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand}, nil
	}
	if p.match(token.PLUS_PLUS, token.MINUS_MINUS) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Mutate{Op: op, Operand: operand, Postfix: false}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, *Error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.DOT):
			name, err := p.consume(token.IDENT, "property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &ast.Get{Object: expr, Name: name}
		case p.match(token.PLUS_PLUS, token.MINUS_MINUS):
			op := p.previous()
			expr = &ast.Mutate{Op: op, Operand: expr, Postfix: true}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, *Error) {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errors = append(p.errors, &Error{Kind: TooManyArgs, Line: p.peek().Pos.Line})
			}
			arg, err := p.assignment()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(token.RIGHT_PAREN, "')' after arguments")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (ast.Expr, *Error) {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Kind: token.BoolLiteral, Bool: false}, nil
	case p.match(token.TRUE):
		return &ast.Literal{Kind: token.BoolLiteral, Bool: true}, nil
	case p.match(token.NIL):
		return &ast.Literal{Kind: token.NilLiteral}, nil
	case p.match(token.NUMBER):
		lit := p.previous().Literal
		return &ast.Literal{Kind: token.NumberLiteral, Num: lit.Num}, nil
	case p.match(token.STRING):
		lit := p.previous().Literal
		return &ast.Literal{Kind: token.StringLiteral, Str: lit.Str}, nil
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}, nil
	case p.match(token.SUPER):
		keyword := p.previous()
		if _, err := p.consume(token.DOT, "'.' after 'super'"); err != nil {
			return nil, err
		}
		method, err := p.consume(token.IDENT, "superclass method name")
		if err != nil {
			return nil, err
		}
		return &ast.Super{Keyword: keyword, Method: method}, nil
	case p.match(token.IDENT):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHT_PAREN, "')' after expression"); err != nil {
			return nil, &Error{Kind: UnterminatedParen, Line: err.Line}
		}
		return &ast.Grouping{Inner: expr}, nil
	case p.match(token.FN):
		decl, err := p.functionBody(nil, "lambda")
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Decl: decl}, nil
	default:
		return nil, newErrorAt(UnexpectedExpression, p.peek(), "expression")
	}
}
