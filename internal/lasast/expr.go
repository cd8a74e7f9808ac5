// Package lasast defines the AST: expression and statement nodes that
// each implement their own evaluation/execution method directly, a
// tagged-variant dispatch per operation, rather than a separate visitor
// hierarchy.
package lasast

import (
	"las/internal/lasrr"
	"las/internal/lasspan"
	"las/internal/lastype"
	"las/internal/lasvalue"
	"las/internal/scope"
)

// Expr is satisfied by every expression node.
type Expr interface {
	Eval(s *scope.Stack) (*lasvalue.Value, error)
	Span() lasspan.Span
}

// IntegerLiteral is a decimal integer literal.
type IntegerLiteral struct {
	Sp    lasspan.Span
	Value int32
}

func (n *IntegerLiteral) Span() lasspan.Span { return n.Sp }
func (n *IntegerLiteral) Eval(*scope.Stack) (*lasvalue.Value, error) {
	return lasvalue.NewInteger(n.Value), nil
}

// StringLiteral is a `"…"` literal.
type StringLiteral struct {
	Sp    lasspan.Span
	Value string
}

func (n *StringLiteral) Span() lasspan.Span { return n.Sp }
func (n *StringLiteral) Eval(*scope.Stack) (*lasvalue.Value, error) {
	return lasvalue.NewString(n.Value), nil
}

// CharLiteral is a `'x'` or `'\e'` literal.
type CharLiteral struct {
	Sp    lasspan.Span
	Value byte
}

func (n *CharLiteral) Span() lasspan.Span { return n.Sp }
func (n *CharLiteral) Eval(*scope.Stack) (*lasvalue.Value, error) {
	return lasvalue.NewChar(n.Value), nil
}

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	Sp    lasspan.Span
	Value bool
}

func (n *BoolLiteral) Span() lasspan.Span { return n.Sp }
func (n *BoolLiteral) Eval(*scope.Stack) (*lasvalue.Value, error) {
	return lasvalue.NewBool(n.Value), nil
}

// ArrayLiteral is `[e1, …, en]`.
type ArrayLiteral struct {
	Sp       lasspan.Span
	Elements []Expr
}

func (n *ArrayLiteral) Span() lasspan.Span { return n.Sp }
func (n *ArrayLiteral) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	elems := make([]*lasvalue.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := e.Eval(s)
		if err != nil {
			return nil, err
		}
		if v.IsLvalue() {
			elems[i] = v.Clone()
		} else {
			elems[i] = v
		}
		elems[i].PromoteToLvalue()
	}
	return lasvalue.NewArray(elems), nil
}

// Name is a bare identifier reference.
type Name struct {
	Sp    lasspan.Span
	Ident string
}

func (n *Name) Span() lasspan.Span { return n.Sp }
func (n *Name) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	v, ok := s.Lookup(n.Ident)
	if !ok {
		return nil, lasrr.Atf(lasrr.UndefinedReference, n.Sp, "undefined reference %q", n.Ident)
	}
	return v, nil
}

// UnOp is `+`/`-` prefixed onto operand.
type UnOp struct {
	Sp      lasspan.Span
	Op      byte // '+' or '-'
	Operand Expr
}

func (n *UnOp) Span() lasspan.Span { return n.Sp }
func (n *UnOp) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	v, err := n.Operand.Eval(s)
	if err != nil {
		return nil, err
	}
	if n.Op == '-' {
		return lasvalue.UnaryMinus(n.Sp, v)
	}
	return lasvalue.UnaryPlus(n.Sp, v)
}

// BinOp is a binary expression.
type BinOp struct {
	Sp  lasspan.Span
	Op  lasvalue.BinOp
	LHS Expr
	RHS Expr
}

func (n *BinOp) Span() lasspan.Span { return n.Sp }
func (n *BinOp) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	lhs, err := n.LHS.Eval(s)
	if err != nil {
		return nil, err
	}
	rhs, err := n.RHS.Eval(s)
	if err != nil {
		return nil, err
	}
	return lasvalue.Binary(n.Sp, n.Op, lhs, rhs)
}

// RangeExpr is `start..end` / `start..=end`.
type RangeExpr struct {
	Sp        lasspan.Span
	Start     Expr
	End       Expr
	Inclusive bool
}

func (n *RangeExpr) Span() lasspan.Span { return n.Sp }
func (n *RangeExpr) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	start, err := n.Start.Eval(s)
	if err != nil {
		return nil, err
	}
	end, err := n.End.Eval(s)
	if err != nil {
		return nil, err
	}
	if start.Kind != lasvalue.Integer || end.Kind != lasvalue.Integer {
		return nil, lasrr.At(lasrr.OperationNotSupportedByType, n.Sp, "range bounds must be I32")
	}
	return lasvalue.NewRange(start.Int, end.Int, n.Inclusive), nil
}

// Subscript is `base[index]`.
type Subscript struct {
	Sp    lasspan.Span
	Base  Expr
	Index Expr
}

func (n *Subscript) Span() lasspan.Span { return n.Sp }
func (n *Subscript) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	base, err := n.Base.Eval(s)
	if err != nil {
		return nil, err
	}
	idx, err := n.Index.Eval(s)
	if err != nil {
		return nil, err
	}
	return lasvalue.Subscript(n.Sp, base, idx)
}

// Call is `callee(args…)`. Arguments are passed unevaluated so a callee
// (user function or built-in) can evaluate them against its own arity and
// type rules with accurate spans.
type Call struct {
	Sp     lasspan.Span
	Callee Expr
	Args   []Expr
}

func (n *Call) Span() lasspan.Span { return n.Sp }
func (n *Call) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	callee, err := n.Callee.Eval(s)
	if err != nil {
		return nil, err
	}
	return CallValue(n.Sp, s, callee, n.Args)
}

// MemberAccess is `base.name`.
type MemberAccess struct {
	Sp   lasspan.Span
	Base Expr
	Name string
}

func (n *MemberAccess) Span() lasspan.Span { return n.Sp }
func (n *MemberAccess) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	base, err := n.Base.Eval(s)
	if err != nil {
		return nil, err
	}
	return lasvalue.Member(n.Sp, base, n.Name)
}

// Cast is `expr => type`.
type Cast struct {
	Sp     lasspan.Span
	Value  Expr
	Target *lastype.Type
}

func (n *Cast) Span() lasspan.Span { return n.Sp }
func (n *Cast) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	v, err := n.Value.Eval(s)
	if err != nil {
		return nil, err
	}
	return lasvalue.Cast(n.Sp, v, targetKind(n.Target))
}

func targetKind(t *lastype.Type) lasvalue.Kind {
	switch t.Variant {
	case lastype.I32:
		return lasvalue.Integer
	case lastype.Char:
		return lasvalue.Char
	case lastype.Bool:
		return lasvalue.Bool
	case lastype.String:
		return lasvalue.String
	default:
		return lasvalue.Nothing
	}
}

// TypeOf is `typeof(expr)`, evaluated to the structural type rendered as
// a String value.
type TypeOf struct {
	Sp    lasspan.Span
	Value Expr
}

func (n *TypeOf) Span() lasspan.Span { return n.Sp }
func (n *TypeOf) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	v, err := n.Value.Eval(s)
	if err != nil {
		return nil, err
	}
	return lasvalue.NewString(v.Type().String()), nil
}

// StructLiteral is `Name { field: expr, … }`.
type StructLiteral struct {
	Sp           lasspan.Span
	Name         string
	Initializers map[string]Expr
}

func (n *StructLiteral) Span() lasspan.Span { return n.Sp }
func (n *StructLiteral) Eval(s *scope.Stack) (*lasvalue.Value, error) {
	defVal, ok := s.Lookup(n.Name)
	if !ok || defVal.Kind != lasvalue.StructType {
		return nil, lasrr.Atf(lasrr.UndefinedReference, n.Sp, "undefined struct type %q", n.Name)
	}
	def := defVal.StructDefRef
	members := make(map[string]*lasvalue.Value, len(def.Members))
	seen := make(map[string]bool, len(n.Initializers))
	for _, m := range def.Members {
		init, ok := n.Initializers[m.Name]
		if !ok {
			return nil, lasrr.Atf(lasrr.TypeMismatch, n.Sp, "missing initializer for member %q", m.Name)
		}
		v, err := init.Eval(s)
		if err != nil {
			return nil, err
		}
		if !lastype.CanBeCreatedFrom(m.Type, v.Type()) {
			return nil, lasrr.Atf(lasrr.TypeMismatch, n.Sp, "member %q expects %s, got %s", m.Name, m.Type, v.Type())
		}
		c := v.Clone()
		c.PromoteToLvalue()
		members[m.Name] = c
		seen[m.Name] = true
	}
	for name := range n.Initializers {
		if !seen[name] {
			return nil, lasrr.Atf(lasrr.TypeMismatch, n.Sp, "struct %q has no member %q", n.Name, name)
		}
	}
	return lasvalue.NewStruct(def, members), nil
}
