// Package builtin registers the six built-in callables every Las program
// can reach without importing anything: split, join, delete, read, write,
// trim. Each is installed into the shared lasast builtin registry through
// the same RegisterBuiltin entry point optional domain extensions
// (lasdb, lasnet, lasid) use.
package builtin

import (
	"os"
	"strings"

	"las/internal/lasast"
	"las/internal/lasrr"
	"las/internal/lasspan"
	"las/internal/lasvalue"
)

func init() {
	lasast.RegisterBuiltin("split", split)
	lasast.RegisterBuiltin("join", join)
	lasast.RegisterBuiltin("delete", deleteBuiltin)
	lasast.RegisterBuiltin("read", read)
	lasast.RegisterBuiltin("write", write)
	lasast.RegisterBuiltin("trim", trim)
}

func wrongArgType(span lasspan.Span, fn, want string) error {
	return lasrr.Atf(lasrr.WrongArgumentType, span, "%s: expected %s", fn, want)
}

func wrongArgCount(span lasspan.Span, fn string, want, got int) error {
	return lasrr.Atf(lasrr.WrongNumberOfArguments, span, "%s expects %d argument(s), got %d", fn, want, got)
}

// split(s: String, sep: Char [, discard_empty: Bool]) → Array[String]
func split(span lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, lasrr.Atf(lasrr.WrongNumberOfArguments, span, "split expects 2 or 3 arguments, got %d", len(args))
	}
	if args[0].Kind != lasvalue.String {
		return nil, wrongArgType(span, "split", "String")
	}
	if args[1].Kind != lasvalue.Char {
		return nil, wrongArgType(span, "split", "Char")
	}
	discardEmpty := false
	if len(args) == 3 {
		if args[2].Kind != lasvalue.Bool {
			return nil, wrongArgType(span, "split", "Bool")
		}
		discardEmpty = args[2].B
	}
	parts := strings.Split(args[0].GoString(), string(args[1].Ch))
	elems := make([]*lasvalue.Value, 0, len(parts))
	for _, p := range parts {
		if discardEmpty && p == "" {
			continue
		}
		v := lasvalue.NewString(p)
		v.PromoteToLvalue()
		elems = append(elems, v)
	}
	return lasvalue.NewArray(elems), nil
}

// join(iter, sep: String|Char) → String
func join(span lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 2 {
		return nil, wrongArgCount(span, "join", 2, len(args))
	}
	if args[0].Kind != lasvalue.Array {
		return nil, wrongArgType(span, "join", "Array")
	}
	var sep string
	switch args[1].Kind {
	case lasvalue.String:
		sep = args[1].GoString()
	case lasvalue.Char:
		sep = string(args[1].Ch)
	default:
		return nil, wrongArgType(span, "join", "String or Char")
	}
	parts := make([]string, len(args[0].Elems))
	for i, e := range args[0].Elems {
		parts[i] = e.StringRepresentation()
	}
	return lasvalue.NewString(strings.Join(parts, sep)), nil
}

// delete(container: Array|String, index: Integer) → Nothing
func deleteBuiltin(span lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 2 {
		return nil, wrongArgCount(span, "delete", 2, len(args))
	}
	if args[0].Kind != lasvalue.Array && args[0].Kind != lasvalue.String {
		return nil, wrongArgType(span, "delete", "Array or String")
	}
	if args[1].Kind != lasvalue.Integer {
		return nil, wrongArgType(span, "delete", "I32")
	}
	if err := lasvalue.Delete(span, args[0], args[1]); err != nil {
		return nil, err
	}
	return lasvalue.NewNothing(), nil
}

// read(path: String) → String
func read(span lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 1 {
		return nil, wrongArgCount(span, "read", 1, len(args))
	}
	if args[0].Kind != lasvalue.String {
		return nil, wrongArgType(span, "read", "String")
	}
	path := args[0].GoString()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lasrr.Atf(lasrr.IOFailure, span, "read %q: %v", path, err)
	}
	return lasvalue.NewString(string(data)), nil
}

// write(data: String, path: String) → Nothing
func write(span lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 2 {
		return nil, wrongArgCount(span, "write", 2, len(args))
	}
	if args[0].Kind != lasvalue.String || args[1].Kind != lasvalue.String {
		return nil, wrongArgType(span, "write", "String")
	}
	path := args[1].GoString()
	if err := os.WriteFile(path, []byte(args[0].GoString()), 0o644); err != nil {
		return nil, lasrr.Atf(lasrr.IOFailure, span, "write %q: %v", path, err)
	}
	return lasvalue.NewNothing(), nil
}

// trim(s: String) → String. Removes ASCII whitespace from both ends.
func trim(span lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 1 {
		return nil, wrongArgCount(span, "trim", 1, len(args))
	}
	if args[0].Kind != lasvalue.String {
		return nil, wrongArgType(span, "trim", "String")
	}
	return lasvalue.NewString(strings.TrimFunc(args[0].GoString(), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
	})), nil
}
