package lasparser

import (
	"las/internal/lasast"
	"las/internal/lasrr"
	"las/internal/lasvalue"
	"las/internal/lexer"
)

// expr := range, the top of the precedence chain.
func (p *Parser) expression() lasast.Expr {
	return p.rangeExpr()
}

// exprNoStructLiteral parses an expression with struct literals
// suppressed at the top level, for if/while conditions and for
// iterables, where a following '{' starts the block statement instead.
func (p *Parser) exprNoStructLiteral() lasast.Expr {
	prev := p.noStructLiteral
	p.noStructLiteral = true
	expr := p.expression()
	p.noStructLiteral = prev
	return expr
}

// exprStructAllowed parses a nested expression inside parens, brackets,
// or call arguments, where the suppression no longer applies.
func (p *Parser) exprStructAllowed() lasast.Expr {
	prev := p.noStructLiteral
	p.noStructLiteral = false
	expr := p.expression()
	p.noStructLiteral = prev
	return expr
}

func (p *Parser) rangeExpr() lasast.Expr {
	start := p.peek()
	left := p.or()
	if p.check(lexer.DotDot) || p.check(lexer.DotDotEq) {
		inclusive := p.peek().Kind == lexer.DotDotEq
		p.advance()
		right := p.or()
		return &lasast.RangeExpr{Sp: p.spanBetween(start, p.previous()), Start: left, End: right, Inclusive: inclusive}
	}
	return left
}

func (p *Parser) or() lasast.Expr {
	start := p.peek()
	left := p.and()
	for p.matchKeyword("or") {
		right := p.and()
		left = &lasast.BinOp{Sp: p.spanBetween(start, p.previous()), Op: lasvalue.OpOr, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) and() lasast.Expr {
	start := p.peek()
	left := p.equality()
	for p.matchKeyword("and") {
		right := p.equality()
		left = &lasast.BinOp{Sp: p.spanBetween(start, p.previous()), Op: lasvalue.OpAnd, LHS: left, RHS: right}
	}
	return left
}

var equalityOps = map[lexer.Kind]lasvalue.BinOp{lexer.Eq: lasvalue.OpEq, lexer.NotEq: lasvalue.OpNotEq}

func (p *Parser) equality() lasast.Expr {
	start := p.peek()
	left := p.relational()
	for {
		op, ok := equalityOps[p.peek().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.relational()
		left = &lasast.BinOp{Sp: p.spanBetween(start, p.previous()), Op: op, LHS: left, RHS: right}
	}
}

var relationalOps = map[lexer.Kind]lasvalue.BinOp{
	lexer.Lt: lasvalue.OpLt, lexer.Le: lasvalue.OpLe, lexer.Gt: lasvalue.OpGt, lexer.Ge: lasvalue.OpGe,
}

func (p *Parser) relational() lasast.Expr {
	start := p.peek()
	left := p.sum()
	for {
		op, ok := relationalOps[p.peek().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.sum()
		left = &lasast.BinOp{Sp: p.spanBetween(start, p.previous()), Op: op, LHS: left, RHS: right}
	}
}

var sumOps = map[lexer.Kind]lasvalue.BinOp{lexer.Plus: lasvalue.OpAdd, lexer.Minus: lasvalue.OpSub}

func (p *Parser) sum() lasast.Expr {
	start := p.peek()
	left := p.product()
	for {
		op, ok := sumOps[p.peek().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.product()
		left = &lasast.BinOp{Sp: p.spanBetween(start, p.previous()), Op: op, LHS: left, RHS: right}
	}
}

var productOps = map[lexer.Kind]lasvalue.BinOp{lexer.Star: lasvalue.OpMul, lexer.Slash: lasvalue.OpDiv}

func (p *Parser) product() lasast.Expr {
	start := p.peek()
	left := p.unary()
	for {
		if op, ok := productOps[p.peek().Kind]; ok {
			p.advance()
			right := p.unary()
			left = &lasast.BinOp{Sp: p.spanBetween(start, p.previous()), Op: op, LHS: left, RHS: right}
			continue
		}
		if p.checkKeyword("mod") {
			p.advance()
			right := p.unary()
			left = &lasast.BinOp{Sp: p.spanBetween(start, p.previous()), Op: lasvalue.OpMod, LHS: left, RHS: right}
			continue
		}
		return left
	}
}

func (p *Parser) unary() lasast.Expr {
	start := p.peek()
	if p.check(lexer.Plus) || p.check(lexer.Minus) {
		op := p.advance()
		operand := p.postfix()
		sign := byte('+')
		if op.Kind == lexer.Minus {
			sign = '-'
		}
		return &lasast.UnOp{Sp: p.spanBetween(start, p.previous()), Op: sign, Operand: operand}
	}
	return p.postfix()
}

func (p *Parser) postfix() lasast.Expr {
	start := p.peek()
	expr := p.primary()
	for {
		switch {
		case p.match(lexer.LBracket):
			idx := p.exprStructAllowed()
			p.consume(lexer.RBracket, "']'")
			expr = &lasast.Subscript{Sp: p.spanBetween(start, p.previous()), Base: expr, Index: idx}
		case p.match(lexer.LParen):
			var args []lasast.Expr
			for !p.check(lexer.RParen) {
				args = append(args, p.exprStructAllowed())
				if !p.match(lexer.Comma) {
					break
				}
			}
			p.consume(lexer.RParen, "')'")
			expr = &lasast.Call{Sp: p.spanBetween(start, p.previous()), Callee: expr, Args: args}
		case p.match(lexer.Dot):
			name := p.consume(lexer.Identifier, "identifier")
			expr = &lasast.MemberAccess{Sp: p.spanBetween(start, p.previous()), Base: expr, Name: name.Lexeme}
		case p.match(lexer.FatArrow):
			target := p.parseType()
			expr = &lasast.Cast{Sp: p.spanBetween(start, p.previous()), Value: expr, Target: target}
		default:
			return expr
		}
	}
}

func (p *Parser) primary() lasast.Expr {
	tok := p.peek()
	switch {
	case p.match(lexer.IntegerLiteral):
		return &lasast.IntegerLiteral{Sp: p.spanOf(tok), Value: parseInt(tok.Lexeme)}
	case p.match(lexer.StringLiteral):
		return &lasast.StringLiteral{Sp: p.spanOf(tok), Value: tok.Lexeme}
	case p.match(lexer.CharLiteral):
		return &lasast.CharLiteral{Sp: p.spanOf(tok), Value: tok.Lexeme[0]}
	case p.match(lexer.LBracket):
		var elems []lasast.Expr
		for !p.check(lexer.RBracket) {
			elems = append(elems, p.exprStructAllowed())
			if !p.match(lexer.Comma) {
				break
			}
		}
		end := p.consume(lexer.RBracket, "']'")
		return &lasast.ArrayLiteral{Sp: p.spanBetween(tok, end), Elements: elems}
	case p.match(lexer.LParen):
		expr := p.exprStructAllowed()
		p.consume(lexer.RParen, "')'")
		return expr
	case p.matchKeyword("true"):
		return &lasast.BoolLiteral{Sp: p.spanOf(tok), Value: true}
	case p.matchKeyword("false"):
		return &lasast.BoolLiteral{Sp: p.spanOf(tok), Value: false}
	case p.matchKeyword("typeof"):
		p.consume(lexer.LParen, "'('")
		expr := p.exprStructAllowed()
		end := p.consume(lexer.RParen, "')'")
		return &lasast.TypeOf{Sp: p.spanBetween(tok, end), Value: expr}
	case p.check(lexer.Identifier):
		p.advance()
		if p.check(lexer.LBrace) && !lexer.Keywords[tok.Lexeme] && !p.noStructLiteral {
			return p.structLiteral(tok)
		}
		return &lasast.Name{Sp: p.spanOf(tok), Ident: tok.Lexeme}
	default:
		panic(lasrr.Atf(lasrr.UnexpectedToken, p.spanOf(tok), "unexpected token %s", tok.Kind))
	}
}

func (p *Parser) structLiteral(name lexer.Token) lasast.Expr {
	p.consume(lexer.LBrace, "'{'")
	inits := map[string]lasast.Expr{}
	for !p.check(lexer.RBrace) {
		field := p.consume(lexer.Identifier, "identifier")
		p.consume(lexer.Colon, "':'")
		inits[field.Lexeme] = p.exprStructAllowed()
		if !p.match(lexer.Comma) {
			break
		}
	}
	end := p.consume(lexer.RBrace, "'}'")
	return &lasast.StructLiteral{Sp: p.spanBetween(name, end), Name: name.Lexeme, Initializers: inits}
}

func parseInt(lexeme string) int32 {
	var n int32
	for i := 0; i < len(lexeme); i++ {
		n = n*10 + int32(lexeme[i]-'0')
	}
	return n
}
