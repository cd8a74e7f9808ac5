package scope

import (
	"testing"

	"las/internal/lasvalue"
)

func TestLookupWalksTopToBottom(t *testing.T) {
	s := New()
	s.DefineGlobal("x", lasvalue.NewInteger(1))
	s.Push()
	s.Define("x", lasvalue.NewInteger(2))
	v, ok := s.Lookup("x")
	if !ok || v.Int != 2 {
		t.Fatalf("Lookup = %v, %v, want shadowed value 2", v, ok)
	}
}

func TestLookupFallsThroughToGlobal(t *testing.T) {
	s := New()
	s.DefineGlobal("x", lasvalue.NewInteger(1))
	s.Push()
	v, ok := s.Lookup("x")
	if !ok || v.Int != 1 {
		t.Fatalf("Lookup = %v, %v, want global value 1", v, ok)
	}
}

func TestTruncateRestoresDepth(t *testing.T) {
	s := New()
	depth := s.Depth()
	s.Push()
	s.Define("x", lasvalue.NewInteger(1))
	s.Truncate(depth)
	if _, ok := s.Lookup("x"); ok {
		t.Fatal("x should not be visible after truncation")
	}
}

func TestDefineDetectsRedefinition(t *testing.T) {
	s := New()
	if redefined := s.Define("x", lasvalue.NewInteger(1)); redefined {
		t.Fatal("first definition should not report redefinition")
	}
	if redefined := s.Define("x", lasvalue.NewInteger(2)); !redefined {
		t.Fatal("second definition in the same scope should report redefinition")
	}
}

func TestDefineDiscardsWildcard(t *testing.T) {
	s := New()
	s.Define("_", lasvalue.NewInteger(1))
	if _, ok := s.Lookup("_"); ok {
		t.Fatal("_ should never be bound")
	}
}
