// Package lasrr is the single error type shared by the lexer, parser, and
// evaluator. It is carried and reported the way internal/errors/errors.go
// carries *SentraError: one struct, one Kind enum, one rendering.
package lasrr

import (
	"fmt"
	"strings"

	"las/internal/lasspan"
)

// Kind is one of the closed error taxonomy: lexer errors, the parser's
// single UnexpectedToken, and the runtime error set.
type Kind string

const (
	// Lexer errors.
	UnexpectedChar                   Kind = "UnexpectedChar"
	UnclosedStringLiteral            Kind = "UnclosedStringLiteral"
	UnclosedCharLiteral              Kind = "UnclosedCharLiteral"
	InvalidEscapeSequence            Kind = "InvalidEscapeSequence"
	InvalidCharLiteral               Kind = "InvalidCharLiteral"
	ForbiddenCharacterInStringLiteral Kind = "ForbiddenCharacterInStringLiteral"

	// Parser error.
	UnexpectedToken Kind = "UnexpectedToken"

	// Runtime errors.
	OperationNotSupportedByType Kind = "OperationNotSupportedByType"
	IntegerOverflow             Kind = "IntegerOverflow" // reserved, never raised
	CastError                   Kind = "CastError"
	SymbolRedefinition          Kind = "SymbolRedefinition"
	UndefinedReference          Kind = "UndefinedReference"
	UnknownType                 Kind = "UnknownType"
	TypeMismatch                Kind = "TypeMismatch"
	ReturnTypeMismatch          Kind = "ReturnTypeMismatch"
	FailedAssertion             Kind = "FailedAssertion"
	UnableToSubscript           Kind = "UnableToSubscript"
	IndexOutOfBounds            Kind = "IndexOutOfBounds"
	InvalidValueCast            Kind = "InvalidValueCast"
	LvalueRequired              Kind = "LvalueRequired"
	WrongNumberOfArguments      Kind = "WrongNumberOfArguments"
	WrongArgumentType           Kind = "WrongArgumentType"
	NoSuchMember                Kind = "NoSuchMember"
	InvalidIntegerValue         Kind = "InvalidIntegerValue"
	DivisionByZero              Kind = "DivisionByZero"
	IOFailure                   Kind = "IOFailure"

	// Control-flow signal escapes, reported only when break/continue/return
	// are used outside their enclosing construct.
	BreakOutsideLoop    Kind = "BreakOutsideLoop"
	ContinueOutsideLoop Kind = "ContinueOutsideLoop"
	ReturnOutsideFn     Kind = "ReturnOutsideFn"
)

// Error is the one error type every stage of the pipeline raises.
type Error struct {
	Kind     Kind
	Message  string
	Span     lasspan.Span
	hasSpan  bool
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func At(kind Kind, span lasspan.Span, message string) *Error {
	return &Error{Kind: kind, Message: message, Span: span, hasSpan: true}
}

func Atf(kind Kind, span lasspan.Span, format string, args ...any) *Error {
	return At(kind, span, fmt.Sprintf(format, args...))
}

// Error implements the error interface, rendering the single stderr line
// the CLI prints: "<file>:<line>:<col>: <kind>: <message>", or
// "<kind>: <message>" when there is no located span.
func (e *Error) Error() string {
	if !e.hasSpan || e.Span.File == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Span.Locator(), e.Kind, e.Message)
}

// Report renders the full diagnostic, including the offending source line,
// for callers that want more than the one-line form. The CLI and the REPL
// print the one-line Error form.
func (e *Error) Report() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.hasSpan && e.Span.Source != "" {
		line := e.Span.SourceLine()
		if line != "" {
			sb.WriteString("\n  ")
			sb.WriteString(line)
			sb.WriteString("\n  ")
			col := e.Span.Column
			if col < 1 {
				col = 1
			}
			sb.WriteString(strings.Repeat(" ", col-1))
			sb.WriteString("^")
		}
	}
	return sb.String()
}
