package lasvalue

import (
	"strconv"

	"las/internal/lasrr"
	"las/internal/lasspan"
)

// BinOp is the closed set of binary operators the grammar produces.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

func kindName(v *Value) string {
	names := [...]string{
		"Integer", "Char", "Bool", "String", "Array", "Range", "RangeIterator",
		"ArrayIterator", "StringIterator", "Sentinel", "Nothing", "Function",
		"BuiltinFunction", "Struct", "StructType",
	}
	if int(v.Kind) < len(names) {
		return names[v.Kind]
	}
	return "?"
}

func unsupported(span lasspan.Span, op string, operands ...*Value) error {
	names := make([]string, len(operands))
	for i, v := range operands {
		names[i] = kindName(v)
	}
	joined := names[0]
	for _, n := range names[1:] {
		joined += ", " + n
	}
	return lasrr.Atf(lasrr.OperationNotSupportedByType, span, "operator %q is not supported by type(s) %s", op, joined)
}

// Binary dispatches a binary operator over two already-evaluated operands
// via a per-variant table.
func Binary(span lasspan.Span, op BinOp, lhs, rhs *Value) (*Value, error) {
	switch lhs.Kind {
	case Integer:
		return binaryInteger(span, op, lhs, rhs)
	case Char:
		return binaryChar(span, op, lhs, rhs)
	case String:
		return binaryString(span, op, lhs, rhs)
	case Bool:
		return binaryBool(span, op, lhs, rhs)
	case Array:
		return binaryArray(span, op, lhs, rhs)
	default:
		return nil, unsupported(span, opSymbol(op), lhs, rhs)
	}
}

func opSymbol(op BinOp) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "mod"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

func binaryInteger(span lasspan.Span, op BinOp, lhs, rhs *Value) (*Value, error) {
	switch op {
	case OpAdd:
		if rhs.Kind == String {
			return NewString(strconv.FormatInt(int64(lhs.Int), 10) + rhs.GoString()), nil
		}
		if rhs.Kind != Integer {
			return nil, unsupported(span, "+", lhs, rhs)
		}
		return NewInteger(lhs.Int + rhs.Int), nil
	case OpSub:
		if rhs.Kind != Integer {
			return nil, unsupported(span, "-", lhs, rhs)
		}
		return NewInteger(lhs.Int - rhs.Int), nil
	case OpMul:
		if rhs.Kind == String {
			return NewString(repeatString(rhs.GoString(), int(lhs.Int))), nil
		}
		if rhs.Kind != Integer {
			return nil, unsupported(span, "*", lhs, rhs)
		}
		return NewInteger(lhs.Int * rhs.Int), nil
	case OpDiv:
		if rhs.Kind != Integer {
			return nil, unsupported(span, "/", lhs, rhs)
		}
		if rhs.Int == 0 {
			return nil, lasrr.At(lasrr.DivisionByZero, span, "division by zero")
		}
		return NewInteger(lhs.Int / rhs.Int), nil
	case OpMod:
		if rhs.Kind != Integer {
			return nil, unsupported(span, "mod", lhs, rhs)
		}
		if rhs.Int == 0 {
			return nil, lasrr.At(lasrr.DivisionByZero, span, "division by zero")
		}
		return NewInteger(lhs.Int % rhs.Int), nil
	case OpEq, OpNotEq, OpLt, OpLe, OpGt, OpGe:
		if rhs.Kind != Integer {
			return nil, unsupported(span, opSymbol(op), lhs, rhs)
		}
		return NewBool(compareOrdered(op, int64(lhs.Int), int64(rhs.Int))), nil
	default:
		return nil, unsupported(span, opSymbol(op), lhs, rhs)
	}
}

func binaryChar(span lasspan.Span, op BinOp, lhs, rhs *Value) (*Value, error) {
	switch op {
	case OpAdd:
		switch rhs.Kind {
		case Integer:
			return NewChar(byte(int32(lhs.Ch) + rhs.Int)), nil
		case String:
			return NewString(string(lhs.Ch) + rhs.GoString()), nil
		default:
			return nil, unsupported(span, "+", lhs, rhs)
		}
	case OpSub:
		if rhs.Kind != Char {
			return nil, unsupported(span, "-", lhs, rhs)
		}
		return NewInteger(int32(lhs.Ch) - int32(rhs.Ch)), nil
	case OpEq, OpNotEq, OpLt, OpLe, OpGt, OpGe:
		if rhs.Kind != Char {
			return nil, unsupported(span, opSymbol(op), lhs, rhs)
		}
		return NewBool(compareOrdered(op, int64(lhs.Ch), int64(rhs.Ch))), nil
	default:
		return nil, unsupported(span, opSymbol(op), lhs, rhs)
	}
}

func binaryString(span lasspan.Span, op BinOp, lhs, rhs *Value) (*Value, error) {
	switch op {
	case OpAdd:
		return NewString(lhs.GoString() + rhs.StringRepresentation()), nil
	case OpMul:
		if rhs.Kind != Integer {
			return nil, unsupported(span, "*", lhs, rhs)
		}
		return NewString(repeatString(lhs.GoString(), int(rhs.Int))), nil
	case OpEq, OpNotEq:
		if rhs.Kind != String {
			return nil, unsupported(span, opSymbol(op), lhs, rhs)
		}
		eq := lhs.GoString() == rhs.GoString()
		if op == OpNotEq {
			eq = !eq
		}
		return NewBool(eq), nil
	default:
		return nil, unsupported(span, opSymbol(op), lhs, rhs)
	}
}

func binaryBool(span lasspan.Span, op BinOp, lhs, rhs *Value) (*Value, error) {
	switch op {
	case OpAnd:
		if rhs.Kind != Bool {
			return nil, unsupported(span, "and", lhs, rhs)
		}
		return NewBool(lhs.B && rhs.B), nil
	case OpOr:
		if rhs.Kind != Bool {
			return nil, unsupported(span, "or", lhs, rhs)
		}
		return NewBool(lhs.B || rhs.B), nil
	case OpEq, OpNotEq:
		if rhs.Kind != Bool {
			return nil, unsupported(span, opSymbol(op), lhs, rhs)
		}
		eq := lhs.B == rhs.B
		if op == OpNotEq {
			eq = !eq
		}
		return NewBool(eq), nil
	case OpAdd:
		if rhs.Kind != String {
			return nil, unsupported(span, "+", lhs, rhs)
		}
		return NewString(lhs.StringRepresentation() + rhs.GoString()), nil
	default:
		return nil, unsupported(span, opSymbol(op), lhs, rhs)
	}
}

func binaryArray(span lasspan.Span, op BinOp, lhs, rhs *Value) (*Value, error) {
	switch op {
	case OpAdd:
		if rhs.Kind != Array {
			return nil, unsupported(span, "+", lhs, rhs)
		}
		combined := make([]*Value, 0, len(lhs.Elems)+len(rhs.Elems))
		for _, e := range lhs.Elems {
			c := e.Clone()
			c.PromoteToLvalue()
			combined = append(combined, c)
		}
		for _, e := range rhs.Elems {
			c := e.Clone()
			c.PromoteToLvalue()
			combined = append(combined, c)
		}
		return NewArray(combined), nil
	case OpEq, OpNotEq:
		if rhs.Kind != Array {
			return nil, unsupported(span, opSymbol(op), lhs, rhs)
		}
		eq := arraysEqual(lhs, rhs)
		if op == OpNotEq {
			eq = !eq
		}
		return NewBool(eq), nil
	default:
		return nil, unsupported(span, opSymbol(op), lhs, rhs)
	}
}

func arraysEqual(a, b *Value) bool {
	if len(a.Elems) != len(b.Elems) {
		return false
	}
	for i := range a.Elems {
		if !elementsEqual(a.Elems[i], b.Elems[i]) {
			return false
		}
	}
	return true
}

func elementsEqual(a, b *Value) bool {
	v, err := Binary(lasspan.Span{}, OpEq, a, b)
	return err == nil && v.B
}

func compareOrdered(op BinOp, lhs, rhs int64) bool {
	switch op {
	case OpEq:
		return lhs == rhs
	case OpNotEq:
		return lhs != rhs
	case OpLt:
		return lhs < rhs
	case OpLe:
		return lhs <= rhs
	case OpGt:
		return lhs > rhs
	case OpGe:
		return lhs >= rhs
	default:
		return false
	}
}

func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// UnaryMinus and UnaryPlus implement the unary ± operators, defined only
// for Integer.
func UnaryMinus(span lasspan.Span, v *Value) (*Value, error) {
	if v.Kind != Integer {
		return nil, unsupported(span, "-", v)
	}
	return NewInteger(-v.Int), nil
}

func UnaryPlus(span lasspan.Span, v *Value) (*Value, error) {
	if v.Kind != Integer {
		return nil, unsupported(span, "+", v)
	}
	return NewInteger(v.Int), nil
}

// Cast implements the "=>" operator's supported conversions.
func Cast(span lasspan.Span, v *Value, target Kind) (*Value, error) {
	switch {
	case v.Kind == Integer && target == Char:
		return NewChar(byte(v.Int)), nil
	case v.Kind == Integer && target == Bool:
		return NewBool(v.Int != 0), nil
	case v.Kind == Integer && target == String:
		return NewString(strconv.FormatInt(int64(v.Int), 10)), nil
	case v.Kind == String && target == Integer:
		n, err := strconv.ParseInt(v.GoString(), 10, 32)
		if err != nil {
			return nil, lasrr.Atf(lasrr.CastError, span, "cannot cast %q to I32", v.GoString())
		}
		return NewInteger(int32(n)), nil
	case v.Kind == target:
		return v.Clone(), nil
	default:
		return nil, lasrr.Atf(lasrr.CastError, span, "cannot cast %s to the requested type", kindName(v))
	}
}
