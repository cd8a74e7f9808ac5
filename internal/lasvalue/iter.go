package lasvalue

import (
	"las/internal/lasrr"
	"las/internal/lasspan"
)

// Iterator produces the cursor value used by `for`, per the per-variant
// iterator table in the data model: Range yields a RangeIterator, Array an
// ArrayIterator, String a StringIterator.
func (v *Value) Iterator() (*Value, error) {
	switch v.Kind {
	case Range:
		return &Value{
			Kind:           RangeIterator,
			RangeStart:     v.RangeStart,
			RangeEnd:       v.RangeEnd,
			RangeInclusive: v.RangeInclusive,
			IterCurrent:    v.RangeStart,
		}, nil
	case Array, String:
		iterKind := ArrayIterator
		if v.Kind == String {
			iterKind = StringIterator
		}
		return &Value{Kind: iterKind, IterBase: v, IterIndex: 0}, nil
	default:
		return nil, lasrr.At(lasrr.OperationNotSupportedByType, lasspan.Span{}, "value has no iterator")
	}
}

// Next advances an iterator and returns the produced element, or the
// Sentinel value at exhaustion.
func (v *Value) Next() *Value {
	switch v.Kind {
	case RangeIterator:
		if v.RangeStart <= v.RangeEnd {
			limit := v.RangeEnd
			if !v.RangeInclusive {
				limit--
			}
			if v.IterCurrent > limit {
				return NewSentinel()
			}
			cur := v.IterCurrent
			v.IterCurrent++
			return NewInteger(cur)
		}
		limit := v.RangeEnd
		if !v.RangeInclusive {
			limit++
		}
		if v.IterCurrent < limit {
			return NewSentinel()
		}
		cur := v.IterCurrent
		v.IterCurrent--
		return NewInteger(cur)
	case ArrayIterator:
		if v.IterIndex >= len(v.IterBase.Elems) {
			return NewSentinel()
		}
		elem := v.IterBase.Elems[v.IterIndex]
		v.IterIndex++
		return elem
	case StringIterator:
		if v.IterIndex >= len(v.IterBase.Str) {
			return NewSentinel()
		}
		elem := v.IterBase.Str[v.IterIndex]
		v.IterIndex++
		return elem
	default:
		return NewSentinel()
	}
}

// Subscript implements `a[i]`, returning the stored element by alias for
// Array and String; any other base type is `UnableToSubscript`.
func Subscript(span lasspan.Span, base, index *Value) (*Value, error) {
	if index.Kind != Integer {
		return nil, lasrr.At(lasrr.TypeMismatch, span, "subscript index must be I32")
	}
	i := int(index.Int)
	switch base.Kind {
	case Array:
		if i < 0 || i >= len(base.Elems) {
			return nil, lasrr.Atf(lasrr.IndexOutOfBounds, span, "index %d out of bounds (size %d)", i, len(base.Elems))
		}
		return base.Elems[i], nil
	case String:
		if i < 0 || i >= len(base.Str) {
			return nil, lasrr.Atf(lasrr.IndexOutOfBounds, span, "index %d out of bounds (size %d)", i, len(base.Str))
		}
		return base.Str[i], nil
	default:
		return nil, lasrr.Atf(lasrr.UnableToSubscript, span, "%s is not subscriptable", kindName(base))
	}
}

// Member implements `.size`/`.length` and struct field access.
func Member(span lasspan.Span, base *Value, name string) (*Value, error) {
	switch base.Kind {
	case Array, String:
		if name == "size" || name == "length" {
			return NewInteger(int32(base.Len())), nil
		}
	case Struct:
		if m, ok := base.Members[name]; ok {
			return m, nil
		}
	}
	return nil, lasrr.Atf(lasrr.NoSuchMember, span, "no member %q on %s", name, kindName(base))
}

// Delete removes the element at index from an Array or String in place,
// backing the `delete` built-in.
func Delete(span lasspan.Span, base, index *Value) error {
	if index.Kind != Integer {
		return lasrr.At(lasrr.TypeMismatch, span, "delete index must be I32")
	}
	i := int(index.Int)
	switch base.Kind {
	case Array:
		if i < 0 || i >= len(base.Elems) {
			return lasrr.Atf(lasrr.IndexOutOfBounds, span, "index %d out of bounds (size %d)", i, len(base.Elems))
		}
		base.Elems = append(base.Elems[:i], base.Elems[i+1:]...)
		return nil
	case String:
		if i < 0 || i >= len(base.Str) {
			return lasrr.Atf(lasrr.IndexOutOfBounds, span, "index %d out of bounds (size %d)", i, len(base.Str))
		}
		base.Str = append(base.Str[:i], base.Str[i+1:]...)
		return nil
	default:
		return lasrr.Atf(lasrr.UnableToSubscript, span, "%s does not support delete", kindName(base))
	}
}

// Assign implements the lvalue write-through that makes aliasing visible:
// it copies rhs's payload fields into lhs's storage cell rather than
// rebinding the pointer, so every alias of lhs observes the new value.
func Assign(span lasspan.Span, lhs, rhs *Value) error {
	if !lhs.IsLvalue() {
		return lasrr.At(lasrr.LvalueRequired, span, "assignment target is not an lvalue")
	}
	if lhs.Kind != rhs.Kind {
		return lasrr.Atf(lasrr.OperationNotSupportedByType, span, "cannot assign %s to %s", kindName(rhs), kindName(lhs))
	}
	cat := lhs.Category
	*lhs = *rhs.Clone()
	lhs.Category = cat
	return nil
}
