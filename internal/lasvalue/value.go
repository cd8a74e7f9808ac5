// Package lasvalue implements the runtime value model: a closed,
// Kind-tagged variant together with an Lvalue/Rvalue category. Values are
// held behind a pointer so that sharing one (assigning, storing in an
// array, capturing a loop variable) aliases the same storage cell.
// Mutating through one alias is visible through every other, backed by
// Go's own garbage collector instead of manual refcounting.
package lasvalue

import (
	"fmt"
	"strconv"
	"strings"

	"las/internal/lastype"
)

// Kind is the closed value variant set from the data model.
type Kind int

const (
	Integer Kind = iota
	Char
	Bool
	String
	Array
	Range
	RangeIterator
	ArrayIterator
	StringIterator
	Sentinel
	Nothing
	Function
	BuiltinFunction
	Struct
	StructType
)

// Category distinguishes an addressable binding (Lvalue) from a transient
// result (Rvalue). Only lvalues may be the target of assign().
type Category int

const (
	Rvalue Category = iota
	Lvalue
)

// Param is one declared function parameter.
type Param struct {
	Name string
	Type *lastype.Type
}

// FunctionBody is satisfied by the AST statement type that backs a
// user-defined function; lasvalue only needs to hold it opaquely and hand
// it back to the evaluator that knows how to execute it.
type FunctionBody any

// StructDef identifies one struct declaration. Two StructType or Struct
// values belong to the same definition iff their Def pointers are equal;
// this is exactly lastype's StructType identity comparison.
type StructDef struct {
	Name    string
	Members []Param
}

// Value is the single runtime value handle. Every field is variant-
// specific except Kind and Category; see the Kind constants for which
// fields are meaningful for each.
type Value struct {
	Kind     Kind
	Category Category

	Int  int32
	Ch   byte
	B    bool
	Str  []*Value // String: ordered Char lvalues

	Elems []*Value // Array: ordered element aliases

	RangeStart     int32
	RangeEnd       int32
	RangeInclusive bool
	IterCurrent    int32 // RangeIterator cursor

	IterBase  *Value // ArrayIterator/StringIterator: the array or string
	IterIndex int     // ArrayIterator/StringIterator cursor

	FnName   string
	FnParams []Param
	FnReturn *lastype.Type
	FnBody   FunctionBody

	Builtin string // BuiltinFunction: which built-in

	StructDefRef *StructDef
	Members      map[string]*Value // Struct: name -> member value
}

func New(k Kind, cat Category) *Value { return &Value{Kind: k, Category: cat} }

func NewInteger(n int32) *Value { return &Value{Kind: Integer, Int: n} }
func NewChar(c byte) *Value     { return &Value{Kind: Char, Ch: c} }
func NewBool(b bool) *Value     { return &Value{Kind: Bool, B: b} }
func NewNothing() *Value        { return &Value{Kind: Nothing} }
func NewSentinel() *Value       { return &Value{Kind: Sentinel} }

// NewString builds a String value from a Go string, promoting each byte
// to its own lvalue Char cell per the data model's "ordered sequence of
// Char values" rule.
func NewString(s string) *Value {
	chars := make([]*Value, len(s))
	for i := 0; i < len(s); i++ {
		chars[i] = &Value{Kind: Char, Ch: s[i], Category: Lvalue}
	}
	return &Value{Kind: String, Str: chars}
}

func NewArray(elems []*Value) *Value { return &Value{Kind: Array, Elems: elems} }

func NewRange(start, end int32, inclusive bool) *Value {
	return &Value{Kind: Range, RangeStart: start, RangeEnd: end, RangeInclusive: inclusive}
}

func NewFunction(name string, params []Param, ret *lastype.Type, body FunctionBody) *Value {
	return &Value{Kind: Function, FnName: name, FnParams: params, FnReturn: ret, FnBody: body}
}

func NewBuiltinFunction(name string) *Value {
	return &Value{Kind: BuiltinFunction, Builtin: name}
}

func NewStructType(def *StructDef) *Value {
	return &Value{Kind: StructType, StructDefRef: def}
}

func NewStruct(def *StructDef, members map[string]*Value) *Value {
	return &Value{Kind: Struct, StructDefRef: def, Members: members}
}

// Type returns the structural type descriptor for this value.
func (v *Value) Type() *lastype.Type {
	switch v.Kind {
	case Integer:
		return lastype.Of(lastype.I32)
	case Char:
		return lastype.Of(lastype.Char)
	case Bool:
		return lastype.Of(lastype.Bool)
	case String:
		return lastype.Of(lastype.String)
	case Array:
		if len(v.Elems) == 0 {
			return lastype.NewArray(lastype.Of(lastype.Unspecified))
		}
		return lastype.NewArray(v.Elems[0].Type())
	case Range:
		return lastype.Of(lastype.Range)
	case RangeIterator:
		return lastype.Of(lastype.RangeIterator)
	case ArrayIterator:
		return lastype.NewArrayIterator(v.IterBase.Type())
	case StringIterator:
		return lastype.Of(lastype.StringIterator)
	case Sentinel:
		return lastype.Of(lastype.Sentinel)
	case Nothing:
		return lastype.Of(lastype.Nothing)
	case Function:
		params := make([]*lastype.Type, len(v.FnParams))
		for i, p := range v.FnParams {
			params[i] = p.Type
		}
		return lastype.NewFunction(params, v.FnReturn)
	case BuiltinFunction:
		return lastype.NewBuiltinFunction(v.Builtin)
	case Struct, StructType:
		return lastype.NewStructType(v.StructDefRef)
	default:
		return lastype.Of(lastype.Unspecified)
	}
}

// IsLvalue reports whether this value is addressable, i.e. a valid
// assignment target.
func (v *Value) IsLvalue() bool { return v.Category == Lvalue }

// IsSentinel reports iterator exhaustion, per the data model's
// "distinguished Sentinel value" contract.
func (v *Value) IsSentinel() bool { return v.Kind == Sentinel }

// Clone performs a deep copy, preserving the value category. Array and
// String elements are recursively cloned so the copy shares no storage
// with the original (the one way to break aliasing deliberately).
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := *v
	if v.Str != nil {
		c.Str = make([]*Value, len(v.Str))
		for i, ch := range v.Str {
			c.Str[i] = ch.Clone()
		}
	}
	if v.Elems != nil {
		c.Elems = make([]*Value, len(v.Elems))
		for i, e := range v.Elems {
			c.Elems[i] = e.Clone()
		}
	}
	if v.Members != nil {
		c.Members = make(map[string]*Value, len(v.Members))
		for k, m := range v.Members {
			c.Members[k] = m.Clone()
		}
	}
	return &c
}

// AsRvalue returns a fresh rvalue clone of v.
func (v *Value) AsRvalue() *Value {
	c := v.Clone()
	c.Category = Rvalue
	return c
}

// PromoteToLvalue upgrades v to an lvalue in place.
func (v *Value) PromoteToLvalue() { v.Category = Lvalue }

// StringRepresentation renders the value the way print/println do.
func (v *Value) StringRepresentation() string {
	switch v.Kind {
	case Integer:
		return strconv.FormatInt(int64(v.Int), 10)
	case Char:
		return string(v.Ch)
	case Bool:
		return strconv.FormatBool(v.B)
	case String:
		return v.GoString()
	case Array:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.StringRepresentation()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Range:
		op := ".."
		if v.RangeInclusive {
			op = "..="
		}
		return fmt.Sprintf("%d%s%d", v.RangeStart, op, v.RangeEnd)
	case Sentinel:
		return "<sentinel>"
	case Nothing:
		return "Nothing"
	case Function:
		return fmt.Sprintf("<function %s>", v.FnName)
	case BuiltinFunction:
		return fmt.Sprintf("<builtin %s>", v.Builtin)
	case Struct:
		parts := make([]string, 0, len(v.Members))
		for name, m := range v.Members {
			parts = append(parts, fmt.Sprintf("%s: %s", name, m.StringRepresentation()))
		}
		return fmt.Sprintf("%s { %s }", v.StructDefRef.Name, strings.Join(parts, ", "))
	case StructType:
		return fmt.Sprintf("<struct type %s>", v.StructDefRef.Name)
	default:
		return "<iterator>"
	}
}

// GoString returns the value's underlying String payload as a native Go
// string, for callers (built-ins, casts) that need raw bytes rather than
// the Char-lvalue sequence.
func (v *Value) GoString() string {
	var sb strings.Builder
	for _, ch := range v.Str {
		sb.WriteByte(ch.Ch)
	}
	return sb.String()
}

// Len reports element count for String and Array, backing the
// `.size`/`.length` members.
func (v *Value) Len() int {
	switch v.Kind {
	case String:
		return len(v.Str)
	case Array:
		return len(v.Elems)
	default:
		return 0
	}
}
