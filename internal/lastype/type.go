// Package lastype implements the structural type descriptors used to
// type-check declarations, casts, and calls: a closed variant set compared
// by structure rather than by identity (the one exception being Struct,
// compared by definition identity).
package lastype

import (
	"fmt"
	"strings"
)

// Variant is the closed tag set from the data model.
type Variant int

const (
	I32 Variant = iota
	Char
	Bool
	String
	Nothing
	Range
	Array
	ArrayIterator
	StringIterator
	RangeIterator
	Sentinel
	Unspecified
	Function
	BuiltinFunction
	StructType
)

// Type is a structural descriptor. Array and ArrayIterator carry a single
// Elem; Function carries Params/Return; StructType carries a Def identity
// pointer. The zero value is not a valid Type; use the constructors below.
type Type struct {
	Variant Variant
	Elem    *Type   // Array, ArrayIterator
	Params  []*Type // Function
	Return  *Type   // Function
	Which   string  // BuiltinFunction: the builtin's name
	Def     any     // StructType: pointer identity of the struct definition
}

func Of(v Variant) *Type { return &Type{Variant: v} }

func NewArray(elem *Type) *Type         { return &Type{Variant: Array, Elem: elem} }
func NewArrayIterator(elem *Type) *Type { return &Type{Variant: ArrayIterator, Elem: elem} }
func NewFunction(params []*Type, ret *Type) *Type {
	return &Type{Variant: Function, Params: params, Return: ret}
}
func NewBuiltinFunction(which string) *Type { return &Type{Variant: BuiltinFunction, Which: which} }
func NewStructType(def any) *Type           { return &Type{Variant: StructType, Def: def} }

// String renders the type the way the language's diagnostics show it.
func (t *Type) String() string {
	switch t.Variant {
	case I32:
		return "I32"
	case Char:
		return "Char"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case Nothing:
		return "Nothing"
	case Range:
		return "Range"
	case Array:
		return fmt.Sprintf("[%s]", t.Elem.String())
	case ArrayIterator:
		return fmt.Sprintf("ArrayIterator(%s)", t.Elem.String())
	case StringIterator:
		return "StringIterator"
	case RangeIterator:
		return "RangeIterator"
	case Sentinel:
		return "Sentinel"
	case Unspecified:
		return "?"
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("function(%s) ~> %s", strings.Join(parts, ", "), t.Return.String())
	case BuiltinFunction:
		return fmt.Sprintf("builtin(%s)", t.Which)
	case StructType:
		return "struct"
	default:
		return "<unknown type>"
	}
}

// Equal implements the structural equality invariant: Array/ArrayIterator
// compare their element type, Function compares parameters pointwise and
// the return type, BuiltinFunction compares which builtin it is,
// StructType compares definition identity, everything else is equal iff
// the variant matches.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Variant != b.Variant {
		return false
	}
	switch a.Variant {
	case Array, ArrayIterator:
		return Equal(a.Elem, b.Elem)
	case Function:
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(a.Return, b.Return)
	case BuiltinFunction:
		return a.Which == b.Which
	case StructType:
		return a.Def == b.Def
	default:
		return true
	}
}

// CanBeCreatedFrom is the reflexive compatibility relation used for call
// arguments, function return values, and struct-literal members: target
// accepts a value of type source if this returns true.
func CanBeCreatedFrom(target, source *Type) bool {
	if target == nil || source == nil {
		return false
	}
	if target.Variant == Unspecified {
		return true
	}
	if target.Variant != source.Variant {
		return false
	}
	switch target.Variant {
	case Array:
		return CanBeCreatedFrom(target.Elem, source.Elem)
	case ArrayIterator:
		return Equal(target.Elem, source.Elem)
	case Function:
		if len(target.Params) != len(source.Params) {
			return false
		}
		for i := range target.Params {
			if !CanBeCreatedFrom(target.Params[i], source.Params[i]) {
				return false
			}
		}
		return CanBeCreatedFrom(target.Return, source.Return)
	case BuiltinFunction:
		return target.Which == source.Which
	case StructType:
		return target.Def == source.Def
	default:
		return true
	}
}
