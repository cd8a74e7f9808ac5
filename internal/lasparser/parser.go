// Package lasparser is a hand-written recursive-descent parser. The whole
// token slice is held immutable with a cursor; consume panics a
// *lasrr.Error on a mismatch, caught once by Parse's recover so the rest
// of the parser reads as if errors could never happen.
package lasparser

import (
	"las/internal/lasast"
	"las/internal/lasrr"
	"las/internal/lastype"
	"las/internal/lasvalue"
	"las/internal/lexer"
)

type Parser struct {
	tokens  []lexer.Token
	current int
	source  string

	// noStructLiteral suppresses the "Name {" struct-literal production
	// while parsing an if/while condition or a for iterable, since the
	// '{' there belongs to the following block statement instead. It is
	// cleared while parsing inside any nested parens/brackets/call args,
	// where a following '{' can no longer be a block.
	noStructLiteral bool
}

func New(tokens []lexer.Token, source string) *Parser {
	return &Parser{tokens: tokens, source: source}
}

// Parse parses a whole program (a statement list up to end-of-input) and
// converts a parse-time panic into a returned error, the single entry
// point through which *lasrr.Error ever becomes an ordinary Go error.
func Parse(tokens []lexer.Token, source string) (stmts []lasast.Stmt, err error) {
	p := New(tokens, source)
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*lasrr.Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	for !p.isAtEnd() {
		stmts = append(stmts, p.statement())
	}
	return stmts, nil
}

func (p *Parser) statement() lasast.Stmt {
	switch {
	case p.check(lexer.LBrace):
		return p.block()
	case p.matchKeyword("function"):
		return p.functionDecl()
	case p.matchKeyword("struct"):
		return p.structDecl()
	case p.matchKeyword("print"):
		return p.printStatement(false)
	case p.matchKeyword("println"):
		return p.printStatement(true)
	case p.matchKeyword("let"):
		return p.letStatement()
	case p.matchKeyword("if"):
		return p.ifStatement()
	case p.matchKeyword("assert"):
		return p.assertStatement()
	case p.matchKeyword("while"):
		return p.whileStatement()
	case p.matchKeyword("break"):
		sp := p.spanOf(p.previous())
		p.consume(lexer.Semicolon, "';'")
		return &lasast.Break{Sp: sp}
	case p.matchKeyword("continue"):
		sp := p.spanOf(p.previous())
		p.consume(lexer.Semicolon, "';'")
		return &lasast.Continue{Sp: sp}
	case p.matchKeyword("return"):
		return p.returnStatement()
	case p.matchKeyword("for"):
		return p.forStatement()
	default:
		return p.expressionOrAssignmentStatement()
	}
}

func (p *Parser) block() *lasast.Block {
	start := p.peek()
	p.consume(lexer.LBrace, "'{'")
	var stmts []lasast.Stmt
	for !p.check(lexer.RBrace) && !p.isAtEnd() {
		stmts = append(stmts, p.statement())
	}
	end := p.consume(lexer.RBrace, "'}'")
	return &lasast.Block{Sp: p.spanBetween(start, end), Stmts: stmts}
}

func (p *Parser) printStatement(newline bool) lasast.Stmt {
	start := p.previous()
	p.consume(lexer.LParen, "'('")
	var expr lasast.Expr
	if !p.check(lexer.RParen) {
		expr = p.expression()
	}
	end := p.consume(lexer.RParen, "')'")
	p.consume(lexer.Semicolon, "';'")
	return &lasast.Print{Sp: p.spanBetween(start, end), Value: expr, Newline: newline}
}

func (p *Parser) letStatement() lasast.Stmt {
	start := p.previous()
	name := p.consume(lexer.Identifier, "identifier")
	p.consume(lexer.Assign, "'='")
	init := p.expression()
	p.consume(lexer.Semicolon, "';'")
	return &lasast.VariableDefinition{Sp: p.spanBetween(start, p.previous()), Name: name.Lexeme, Init: init}
}

func (p *Parser) ifStatement() lasast.Stmt {
	start := p.previous()
	cond := p.exprNoStructLiteral()
	then := p.block()
	var elseBranch lasast.Stmt
	if p.matchKeyword("else") {
		if p.checkKeyword("if") {
			p.advance()
			elseBranch = p.ifStatement()
		} else {
			elseBranch = p.block()
		}
	}
	return &lasast.If{Sp: p.spanBetween(start, p.previous()), Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) assertStatement() lasast.Stmt {
	start := p.previous()
	p.consume(lexer.LParen, "'('")
	cond := p.expression()
	p.consume(lexer.RParen, "')'")
	p.consume(lexer.Semicolon, "';'")
	return &lasast.Assert{Sp: p.spanBetween(start, p.previous()), Cond: cond}
}

func (p *Parser) whileStatement() lasast.Stmt {
	start := p.previous()
	cond := p.exprNoStructLiteral()
	body := p.block()
	return &lasast.While{Sp: p.spanBetween(start, p.previous()), Cond: cond, Body: body}
}

func (p *Parser) returnStatement() lasast.Stmt {
	start := p.previous()
	var value lasast.Expr
	if !p.check(lexer.Semicolon) {
		value = p.expression()
	}
	p.consume(lexer.Semicolon, "';'")
	return &lasast.Return{Sp: p.spanBetween(start, p.previous()), Value: value}
}

func (p *Parser) forStatement() lasast.Stmt {
	start := p.previous()
	name := p.consume(lexer.Identifier, "identifier")
	p.consumeKeyword("in")
	iterable := p.exprNoStructLiteral()
	body := p.block()
	return &lasast.For{Sp: p.spanBetween(start, p.previous()), Var: name.Lexeme, Iterable: iterable, Body: body}
}

var assignOps = map[lexer.Kind]lasast.AssignOp{
	lexer.Assign:      lasast.AssignSet,
	lexer.PlusAssign:  lasast.AssignAdd,
	lexer.MinusAssign: lasast.AssignSub,
	lexer.StarAssign:  lasast.AssignMul,
	lexer.SlashAssign: lasast.AssignDiv,
}

// expressionOrAssignmentStatement decides by trial: parse an expression,
// then check whether an assignment operator follows.
func (p *Parser) expressionOrAssignmentStatement() lasast.Stmt {
	start := p.peek()
	expr := p.expression()
	if op, ok := assignOps[p.peek().Kind]; ok {
		p.advance()
		rhs := p.expression()
		p.consume(lexer.Semicolon, "';'")
		return &lasast.Assignment{Sp: p.spanBetween(start, p.previous()), LHS: expr, Op: op, RHS: rhs}
	}
	p.consume(lexer.Semicolon, "';'")
	return &lasast.ExpressionStatement{Sp: p.spanBetween(start, p.previous()), Expr: expr}
}

func (p *Parser) functionDecl() lasast.Stmt {
	start := p.previous()
	name := p.consume(lexer.Identifier, "identifier")
	p.consume(lexer.LParen, "'('")
	var params []lasvalue.Param
	for !p.check(lexer.RParen) {
		pname := p.consume(lexer.Identifier, "identifier")
		p.consume(lexer.Colon, "':'")
		ptype := p.parseType()
		params = append(params, lasvalue.Param{Name: pname.Lexeme, Type: ptype})
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.consume(lexer.RParen, "')'")
	retType := lastype.Of(lastype.Nothing)
	if p.match(lexer.TildeArrow) {
		retType = p.parseType()
	}
	body := p.block()
	return &lasast.FunctionDeclaration{
		Sp: p.spanBetween(start, p.previous()), Name: name.Lexeme,
		Params: params, ReturnType: retType, Body: body,
	}
}

func (p *Parser) structDecl() lasast.Stmt {
	start := p.previous()
	name := p.consume(lexer.Identifier, "identifier")
	p.consume(lexer.LParen, "'('")
	var members []lasvalue.Param
	for !p.check(lexer.RParen) {
		mname := p.consume(lexer.Identifier, "identifier")
		p.consume(lexer.Colon, "':'")
		mtype := p.parseType()
		members = append(members, lasvalue.Param{Name: mname.Lexeme, Type: mtype})
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.consume(lexer.RParen, "')'")
	p.consume(lexer.Semicolon, "';'")
	return &lasast.StructDefinition{Sp: p.spanBetween(start, p.previous()), Name: name.Lexeme, Members: members}
}

func (p *Parser) parseType() *lastype.Type {
	if p.match(lexer.LBracket) {
		elem := p.parseType()
		p.consume(lexer.RBracket, "']'")
		return lastype.NewArray(elem)
	}
	if p.match(lexer.Question) {
		return lastype.Of(lastype.Unspecified)
	}
	tok := p.consume(lexer.Identifier, "type name")
	switch tok.Lexeme {
	case "I32":
		return lastype.Of(lastype.I32)
	case "Char":
		return lastype.Of(lastype.Char)
	case "Bool":
		return lastype.Of(lastype.Bool)
	case "String":
		return lastype.Of(lastype.String)
	case "Nothing":
		return lastype.Of(lastype.Nothing)
	case "Range":
		return lastype.Of(lastype.Range)
	default:
		panic(lasrr.Atf(lasrr.UnknownType, p.spanOf(tok), "unknown type %q", tok.Lexeme))
	}
}
