package lasid

import (
	"testing"

	"las/internal/lasspan"
	"las/internal/lasvalue"
)

func TestUUIDReturnsDistinctStrings(t *testing.T) {
	a, err := uuidBuiltin(lasspan.Span{}, nil)
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	b, err := uuidBuiltin(lasspan.Span{}, nil)
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	if a.GoString() == b.GoString() {
		t.Fatal("two calls to uuid returned the same value")
	}
	if len(a.GoString()) != 36 {
		t.Fatalf("uuid length = %d, want 36", len(a.GoString()))
	}
}

func TestUUIDRejectsArguments(t *testing.T) {
	if _, err := uuidBuiltin(lasspan.Span{}, []*lasvalue.Value{lasvalue.NewInteger(1)}); err == nil {
		t.Fatal("expected WrongNumberOfArguments")
	}
}
