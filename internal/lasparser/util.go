package lasparser

import (
	"las/internal/lasrr"
	"las/internal/lasspan"
	"las/internal/lexer"
)

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.EndOfInput
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.tokens[p.current-1]
}

func (p *Parser) check(k lexer.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) match(k lexer.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// checkKeyword reports whether the current token is the identifier
// lexeme word. Keywords are not distinct token kinds, so keyword
// recognition happens here, by lexeme comparison, exactly as the lexer's
// own doc comment promises.
func (p *Parser) checkKeyword(word string) bool {
	return p.check(lexer.Identifier) && p.peek().Lexeme == word
}

func (p *Parser) matchKeyword(word string) bool {
	if p.checkKeyword(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consumeKeyword(word string) lexer.Token {
	if p.checkKeyword(word) {
		return p.advance()
	}
	panic(lasrr.Atf(lasrr.UnexpectedToken, p.spanOf(p.peek()), "expected %q, got %s", word, p.peek().Kind))
}

// consume requires the current token to have kind k, naming what was
// expected in the error otherwise. Like every parser error, the mismatch
// panics without any attempt at recovery.
func (p *Parser) consume(k lexer.Kind, want string) lexer.Token {
	if p.check(k) {
		return p.advance()
	}
	tok := p.peek()
	panic(lasrr.Atf(lasrr.UnexpectedToken, p.spanOf(tok), "expected %s, got %s %q", want, tok.Kind, tok.Lexeme))
}

func (p *Parser) spanOf(tok lexer.Token) lasspan.Span {
	return lasspan.Span{
		File: tok.File, Source: p.source, Offset: tok.Offset, Length: tok.Length,
		Line: tok.Line, Column: tok.Column,
	}
}

func (p *Parser) spanBetween(start, end lexer.Token) lasspan.Span {
	return lasspan.Span{
		File:   start.File,
		Source: p.source,
		Offset: start.Offset,
		Length: (end.Offset + end.Length) - start.Offset,
		Line:   start.Line,
		Column: start.Column,
	}
}
