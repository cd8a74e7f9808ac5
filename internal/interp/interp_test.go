package interp

import (
	"testing"

	"las/internal/lasast"
)

func TestRunExecutesTopLevelStatements(t *testing.T) {
	s := New()
	stmts := []lasast.Stmt{
		&lasast.VariableDefinition{Name: "x", Init: &lasast.IntegerLiteral{Value: 41}},
		&lasast.Assignment{
			LHS: &lasast.Name{Ident: "x"},
			Op:  lasast.AssignAdd,
			RHS: &lasast.IntegerLiteral{Value: 1},
		},
	}
	if err := Run(stmts, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	v, ok := s.Lookup("x")
	if !ok || v.Int != 42 {
		t.Fatalf("x = %v, %v, want 42", v, ok)
	}
}

func TestRunReportsBreakOutsideLoop(t *testing.T) {
	s := New()
	stmts := []lasast.Stmt{&lasast.Break{}}
	if err := Run(stmts, s); err == nil {
		t.Fatal("expected BreakOutsideLoop error")
	}
}

func TestRunReportsReturnOutsideFunction(t *testing.T) {
	s := New()
	stmts := []lasast.Stmt{&lasast.Return{Value: &lasast.IntegerLiteral{Value: 1}}}
	if err := Run(stmts, s); err == nil {
		t.Fatal("expected ReturnOutsideFn error")
	}
}

func TestRunPropagatesRuntimeErrors(t *testing.T) {
	s := New()
	stmts := []lasast.Stmt{
		&lasast.ExpressionStatement{Expr: &lasast.Name{Ident: "undefined"}},
	}
	if err := Run(stmts, s); err == nil {
		t.Fatal("expected UndefinedReference error")
	}
}
